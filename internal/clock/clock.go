package clock

import "time"

// NowFunc returns the time stamped on prepared runs; tests replace it.
var NowFunc = func() time.Time { return time.Now().UTC() }

// Now returns NowFunc().
func Now() time.Time { return NowFunc() }
