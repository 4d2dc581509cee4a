package params

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/viant/comets/model/types"
)

// Table is the flat engine parameter set.
type Table struct {
	values map[string]interface{}
}

// New returns a table seeded with engine defaults and the supplied overrides.
func New(overrides map[string]interface{}) *Table {
	ret := &Table{values: make(map[string]interface{}, len(definitions))}
	for name, def := range definitions {
		if def.value != nil {
			ret.values[name] = def.value
		}
	}
	for name, value := range overrides {
		ret.Set(name, value)
	}
	ret.Normalize()
	return ret
}

// Get returns the value of name.
func (t *Table) Get(name string) (interface{}, bool) {
	value, ok := t.values[name]
	return value, ok
}

// Bool returns the boolean value of name, false when unset or not boolean.
func (t *Table) Bool(name string) bool {
	value, _ := t.values[name].(bool)
	return value
}

// String returns the rendered value of name.
func (t *Table) String(name string) string {
	value, ok := t.values[name]
	if !ok {
		return ""
	}
	return Format(value)
}

// Set assigns value; strings are coerced with Infer.
func (t *Table) Set(name string, value interface{}) {
	if text, ok := value.(string); ok {
		value = Infer(text)
	}
	t.values[name] = value
}

// SetText assigns a raw textual value.
func (t *Table) SetText(name, text string) {
	t.values[name] = Infer(text)
}

// SetString assigns text verbatim, without type inference.
func (t *Table) SetString(name, text string) {
	t.values[name] = text
}

// Scope returns the scope used when writing name; unknown names go to the
// package file.
func (t *Table) Scope(name string) Scope {
	if scope, ok := ScopeOf(name); ok {
		return scope
	}
	return ScopePackage
}

// Known reports whether name is a known engine parameter.
func (t *Table) Known(name string) bool {
	_, ok := ScopeOf(name)
	return ok
}

// Names returns all parameter names sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.values))
	for name := range t.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Normalize applies cross-field rules: an evolution run never writes the
// total biomass log.
func (t *Table) Normalize() {
	if t.Bool(Evolution) {
		t.values[WriteTotalBiomassLog] = false
	}
}

// Infer coerces text to bool, int, float64 or string, in that order.
func Infer(text string) interface{} {
	text = strings.TrimSpace(text)
	switch text {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.Atoi(text); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f
	}
	return text
}

// Format renders a value the way the engine parameter files expect.
func Format(value interface{}) string {
	switch actual := value.(type) {
	case bool:
		return strconv.FormatBool(actual)
	case int:
		return strconv.Itoa(actual)
	case int64:
		return strconv.FormatInt(actual, 10)
	case float64:
		return types.FormatFloat(actual)
	case float32:
		return types.FormatFloat(float64(actual))
	case string:
		return actual
	case nil:
		return ""
	}
	return fmt.Sprint(value)
}
