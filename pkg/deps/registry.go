package deps

import (
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

// Registry is the ordered set of available backends.
// It is built once at startup and not modified afterwards.
type Registry struct {
	backends []Backend
}

// NewRegistry creates a registry holding backends in the given order.
func NewRegistry(backends ...Backend) *Registry {
	return &Registry{backends: slices.Clone(backends)}
}

// Backends returns all registered backends in registration order.
func (r *Registry) Backends() []Backend {
	return slices.Clone(r.backends)
}

// Len returns the number of registered backends.
func (r *Registry) Len() int { return len(r.backends) }

// Filter returns the backends whose type is in types, preserving
// registration order. An empty types list returns every backend.
// A non-empty list that matches no registered backend yields an empty
// slice, not an error.
func (r *Registry) Filter(types []Type) []Backend {
	if len(types) == 0 {
		return r.Backends()
	}
	var out []Backend
	for _, b := range r.backends {
		if slices.Contains(types, b.Type()) {
			out = append(out, b)
		}
	}
	return out
}

// ParseTypes parses a comma-separated type override. Pieces are trimmed,
// empty pieces dropped and the rest matched case-sensitively against
// [Types]. Unknown pieces are logged as warnings on logger (if non-nil) and
// skipped. The result holds each type once, in first-seen order.
func ParseTypes(override string, logger *log.Logger) []Type {
	var types []Type
	for _, piece := range strings.Split(override, ",") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		t, ok := LookupType(piece)
		if !ok {
			if logger != nil {
				logger.Warn("invalid package manager type in override", "type", piece, "available", TypeNames())
			}
			continue
		}
		if !slices.Contains(types, t) {
			types = append(types, t)
		}
	}
	return types
}
