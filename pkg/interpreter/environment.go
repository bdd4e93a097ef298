package interpreter

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// Environment maps variable names to their current values for one
// program run. Bindings are never removed.
type Environment struct {
	values map[string]float64
	names  []string
}

func NewEnvironment() *Environment {
	return &Environment{
		values: make(map[string]float64),
	}
}

// Put binds name to value, creating the binding if needed, and returns value.
func (e *Environment) Put(name string, value float64) float64 {
	if _, ok := e.values[name]; !ok {
		e.names = append(e.names, name)
	}

	e.values[name] = value
	return value
}

// Get returns the value bound to name. pos is the position of the reference
// and is reported in the error when name is unbound.
func (e *Environment) Get(pos int, name string) (float64, error) {
	value, ok := e.values[name]
	if !ok {
		return 0, errorf(pos, "undefined variable: %s", name)
	}

	return value, nil
}

// Lookup is Get without an error.
func (e *Environment) Lookup(name string) (float64, bool) {
	value, ok := e.values[name]
	return value, ok
}

// Names returns the bound names in the order they were first bound.
func (e *Environment) Names() []string {
	return append([]string(nil), e.names...)
}

func (e *Environment) Len() int {
	return len(e.names)
}

// Declarations renders C declarations for every bound variable, each
// initialized to its current value. Names in extra that are not bound are
// declared too and initialized to zero.
func (e *Environment) Declarations(extra ...string) string {
	names := e.Names()
	var unbound []string
	for _, name := range extra {
		if _, ok := e.values[name]; !ok && !slices.Contains(unbound, name) {
			unbound = append(unbound, name)
		}
	}
	names = append(names, unbound...)

	if len(names) == 0 {
		return ""
	}

	cnames := make([]string, len(names))
	for i, name := range names {
		cnames[i] = CName(name)
	}

	var b strings.Builder
	b.WriteString("double ")
	b.WriteString(strings.Join(cnames, ", "))
	b.WriteString(";\n")

	for i, name := range names {
		b.WriteString(cnames[i])
		b.WriteString(" = ")
		b.WriteString(CLiteral(e.values[name]))
		b.WriteString(";\n")
	}

	return b.String()
}

// CName returns the C identifier of a variable. Source names are letters and
// digits only, so the prefixed name never meets a C keyword or macro.
func CName(name string) string {
	return "v_" + name
}

// CLiteral renders v as a C double expression that reproduces it exactly.
func CLiteral(v float64) string {
	switch {
	case math.IsNaN(v):
		return "(0.0/0.0)"
	case math.IsInf(v, 1):
		return "(1.0/0.0)"
	case math.IsInf(v, -1):
		return "(-1.0/0.0)"
	}

	s := strconv.FormatFloat(v, 'g', 17, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
