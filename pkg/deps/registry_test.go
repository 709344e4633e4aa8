package deps

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

var _ Backend = (*stubBackend)(nil)

type stubBackend struct {
	typ Type
}

func (s *stubBackend) Type() Type { return s.typ }
func (s *stubBackend) Applicable(ctx context.Context, path string) (bool, error) {
	return false, nil
}
func (s *stubBackend) Extract(ctx context.Context, path string) ([]*Node, error) {
	return nil, nil
}

func testRegistry() *Registry {
	return NewRegistry(
		&stubBackend{TypeNPM},
		&stubBackend{TypePIP},
		&stubBackend{TypeGoMod},
		&stubBackend{TypeCargo},
	)
}

func backendTypes(bs []Backend) []Type {
	out := make([]Type, len(bs))
	for i, b := range bs {
		out[i] = b.Type()
	}
	return out
}

func TestParseTypes(t *testing.T) {
	tests := []struct {
		name     string
		override string
		want     []Type
		warns    int
	}{
		{"empty", "", nil, 0},
		{"only commas", " , ,, ", nil, 0},
		{"single", "NPM", []Type{TypeNPM}, 0},
		{"trimmed", "  CARGO ,  PIP ", []Type{TypeCargo, TypePIP}, 0},
		{"duplicates collapse", "NPM,NPM, NPM", []Type{TypeNPM}, 0},
		{"case sensitive", "npm", nil, 1},
		{"invalid skipped", "MAVEN,NPM,gradle", []Type{TypeNPM}, 2},
		{"all invalid", "MAVEN,GRADLE", nil, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			got := ParseTypes(tt.override, log.New(&buf))
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParseTypes(%q) = %v, want %v", tt.override, got, tt.want)
			}
			if n := strings.Count(buf.String(), "invalid package manager type"); n != tt.warns {
				t.Errorf("warnings = %d, want %d\n%s", n, tt.warns, buf.String())
			}
		})
	}
}

func TestParseTypesNilLogger(t *testing.T) {
	if got := ParseTypes("BOGUS,PIP", nil); !slices.Equal(got, []Type{TypePIP}) {
		t.Errorf("ParseTypes() = %v, want [PIP]", got)
	}
}

func TestRegistryFilter(t *testing.T) {
	reg := testRegistry()
	all := []Type{TypeNPM, TypePIP, TypeGoMod, TypeCargo}

	tests := []struct {
		name     string
		override string
		want     []Type
	}{
		{"no override", "", all},
		{"all invalid", "MAVEN, ,nuget", all},
		{"subset keeps registry order", "CARGO,NPM", []Type{TypeNPM, TypeCargo}},
		{"duplicates and reorder", "GO_MOD, PIP, GO_MOD", []Type{TypePIP, TypeGoMod}},
		{"valid but unregistered", "RUBYGEMS", nil},
		{"mixed valid and invalid", "bogus,PIP", []Type{TypePIP}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := backendTypes(reg.Filter(ParseTypes(tt.override, nil)))
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Filter(%q) = %v, want %v", tt.override, got, tt.want)
			}
		})
	}
}

func TestRegistryBackendsIsCopy(t *testing.T) {
	reg := testRegistry()
	bs := reg.Backends()
	bs[0] = &stubBackend{TypePackagist}

	if got := reg.Backends()[0].Type(); got != TypeNPM {
		t.Errorf("registry mutated through Backends(): first = %v", got)
	}
	if reg.Len() != 4 {
		t.Errorf("Len() = %d, want 4", reg.Len())
	}
}
