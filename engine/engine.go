// Package engine holds the interchangeable one-generation Life engines.
//
// All engines compute the same function: given the alive cells of one
// generation they return the alive cells of the next. They differ only in how
// neighbor counts are obtained.
package engine

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/sparse-gol/model"
)

// ErrUnknownEngine is returned for engine names outside the supported set
var ErrUnknownEngine = errors.New("unrecognized engine identifier")

// Engine advances an alive-set by exactly one generation.
//
// Advance must not mutate or retain its argument. A single Engine is not safe
// for concurrent calls.
type Engine interface {
	Advance(cells model.AliveSet) model.AliveSet
	Duplicate() Engine
	Kind() Kind
}

// Kind identifies one of the engine implementations
type Kind int

const (
	// Counting accumulates neighbor counts in a hash map
	Counting Kind = iota
	// Sorting counts neighbors by sorting candidates and collapsing runs
	Sorting
	// Quadtree steps a hash-consed quadtree per spatial cluster
	Quadtree
)

var kindNames = [...]string{
	Counting: "counting",
	Sorting:  "sorting",
	Quadtree: "quadtree",
}

// String returns the lower-case engine name
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Kinds lists every supported engine
func Kinds() []Kind {
	return []Kind{Counting, Sorting, Quadtree}
}

// ParseKind resolves a case-insensitive engine name
func ParseKind(name string) (Kind, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == lower {
			return Kind(k), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownEngine,
		"[ParseKind] %q, valid options: %s", name, strings.Join(kindNames[:], ", "))
}

// New creates an engine of the given kind
func New(kind Kind, opts ...Option) Engine {
	o := applyOptions(opts)
	switch kind {
	case Sorting:
		return newSortingEngine(o)
	case Quadtree:
		return newQuadtreeEngine(o)
	default:
		return newCountingEngine(o)
	}
}

// NewByName creates an engine from its case-insensitive name
func NewByName(name string, opts ...Option) (Engine, error) {
	kind, err := ParseKind(name)
	if err != nil {
		return nil, err
	}
	return New(kind, opts...), nil
}
