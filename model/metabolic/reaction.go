package metabolic

// Kinetic identifies an optional per-reaction kinetic parameter.
type Kinetic int

const (
	Vmax Kinetic = iota
	Km
	Hill
)

// Kinetics lists all kinetic parameter kinds in emission order.
var Kinetics = []Kinetic{Vmax, Km, Hill}

// Keyword returns the native block keyword for the kinetic kind.
func (k Kinetic) Keyword() string {
	switch k {
	case Km:
		return "KM_VALUES"
	case Hill:
		return "HILL_COEFFICIENTS"
	}
	return "VMAX_VALUES"
}

// Reaction is identified by its 1-based declaration position.
type Reaction struct {
	ID            int      `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Lower         float64  `json:"lower" yaml:"lower"`
	Upper         float64  `json:"upper" yaml:"upper"`
	Exchange      bool     `json:"exchange,omitempty" yaml:"exchange,omitempty"`
	ExchangeIndex int      `json:"exchangeIndex,omitempty" yaml:"exchangeIndex,omitempty"`
	Vmax          *float64 `json:"vmax,omitempty" yaml:"vmax,omitempty"`
	Km            *float64 `json:"km,omitempty" yaml:"km,omitempty"`
	Hill          *float64 `json:"hill,omitempty" yaml:"hill,omitempty"`
}

// Bounds returns the reaction flux bounds.
func (r *Reaction) Bounds() Bounds {
	return Bounds{Lower: r.Lower, Upper: r.Upper}
}

// Kinetic returns the kinetic value of kind or nil when unset.
func (r *Reaction) Kinetic(kind Kinetic) *float64 {
	switch kind {
	case Km:
		return r.Km
	case Hill:
		return r.Hill
	}
	return r.Vmax
}

// SetKinetic sets the kinetic value of kind.
func (r *Reaction) SetKinetic(kind Kinetic, value float64) {
	switch kind {
	case Vmax:
		r.Vmax = &value
	case Km:
		r.Km = &value
	case Hill:
		r.Hill = &value
	}
}
