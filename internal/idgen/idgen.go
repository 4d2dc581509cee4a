package idgen

import (
	"strings"

	"github.com/google/uuid"
)

// NewFunc returns a new run identifier.
var NewFunc = func() string { return strings.ReplaceAll(uuid.New().String(), "-", "")[:12] }

// New returns a new run identifier.
func New() string { return NewFunc() }
