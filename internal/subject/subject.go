package subject

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownSubject is returned when a subject name is not registered
var ErrUnknownSubject = errors.New("unknown subject")

// BinaryFunc is a two-operand integer function
type BinaryFunc func(a, b int64) int64

// Subject describes a function under test together with the native
// computation it must agree with
type Subject struct {
	Name        string
	Description string
	Bound       int64 // operands are drawn from [0, Bound)
	Func        BinaryFunc
	Reference   BinaryFunc
}

// Plus is the addition primitive under test
func Plus(a, b int64) int64 {
	return a + b
}

// Add is the native reference computation
func Add(a, b int64) int64 {
	return a + b
}

var registry = map[string]Subject{
	"plus": {
		Name:        "plus",
		Description: "addition with operands below one million",
		Bound:       1_000_000,
		Func:        Plus,
		Reference:   Add,
	},
	"plus-wide": {
		Name:        "plus-wide",
		Description: "addition with operands below 1000000007",
		Bound:       1_000_000_007,
		Func:        Plus,
		Reference:   Add,
	},
}

// Lookup returns the registered subject with the given name
func Lookup(name string) (Subject, error) {
	s, ok := registry[name]
	if !ok {
		return Subject{}, fmt.Errorf("%w: %q", ErrUnknownSubject, name)
	}
	return s, nil
}

// All returns every registered subject sorted by name
func All() []Subject {
	subjects := make([]Subject, 0, len(registry))
	for _, s := range registry {
		subjects = append(subjects, s)
	}
	sort.Slice(subjects, func(i, j int) bool {
		return subjects[i].Name < subjects[j].Name
	})
	return subjects
}

// Names returns the registered subject names sorted
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Name
	}
	return names
}
