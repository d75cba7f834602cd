package catalogue

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cpdeck/internal/config"
	"cpdeck/internal/domain"
)

// ErrBadResponse reports a catalogue endpoint that answered but with
// something other than a usable problem set.
var ErrBadResponse = errors.New("catalogue: bad response")

// Source supplies an ordered problem catalogue on demand. Implementations
// return contests and problems already sorted; the UI never re-sorts.
type Source interface {
	// Name is the display name of the source, e.g. "Codeforces".
	Name() string

	// Fetch retrieves the full problem catalogue.
	Fetch(ctx context.Context) (domain.Catalogue, error)

	// LogIn authenticates against the source. Sources that need no
	// authentication return nil.
	LogIn(ctx context.Context) error

	// ProblemURL returns the human-facing page for a problem.
	ProblemURL(p domain.Problem) string

	// Submit uploads a solution file for a problem.
	Submit(ctx context.Context, p domain.Problem, solutionPath string) error
}

// Constructor builds a source from configuration. Constructors are
// registered once at startup under a fixed identifier; sources are never
// selected by matching display names against live values.
type Constructor func(cfg *config.Config) (Source, error)

// Registry maps source identifiers to constructors.
type Registry struct {
	ctors map[string]Constructor
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Register adds a constructor under id. Registering the same id twice is a
// programming error.
func (r *Registry) Register(id string, ctor Constructor) {
	if _, dup := r.ctors[id]; dup {
		panic(fmt.Sprintf("catalogue: source %q registered twice", id))
	}
	r.ctors[id] = ctor
	r.order = append(r.order, id)
	sort.Strings(r.order)
}

// New resolves id to a source.
func (r *Registry) New(id string, cfg *config.Config) (Source, error) {
	ctor, ok := r.ctors[id]
	if !ok {
		return nil, fmt.Errorf("catalogue: unknown source %q", id)
	}
	return ctor(cfg)
}

// IDs returns the registered identifiers in sorted order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}
