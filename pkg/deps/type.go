package deps

import "strings"

// Type identifies a package-manager kind. The string value is the canonical
// name used in type overrides and output file names.
type Type string

// Supported package-manager types, in canonical order.
const (
	TypeNPM       Type = "NPM"
	TypePIP       Type = "PIP"
	TypeGoMod     Type = "GO_MOD"
	TypeCargo     Type = "CARGO"
	TypeRubyGems  Type = "RUBYGEMS"
	TypePackagist Type = "PACKAGIST"
)

// Types lists every supported package-manager type.
var Types = []Type{TypeNPM, TypePIP, TypeGoMod, TypeCargo, TypeRubyGems, TypePackagist}

// forges maps a type to the external-identifier namespace used in BOMs.
var forges = map[Type]string{
	TypeNPM:       "npmjs",
	TypePIP:       "pypi",
	TypeGoMod:     "golang",
	TypeCargo:     "crates",
	TypeRubyGems:  "rubygems",
	TypePackagist: "packagist",
}

// String returns the canonical type name.
func (t Type) String() string { return string(t) }

// Label returns the lowercase name used in log messages.
func (t Type) Label() string { return strings.ToLower(string(t)) }

// Forge returns the external-identifier namespace for components of this
// type, or the lowercase type name for unknown types.
func (t Type) Forge() string {
	if f, ok := forges[t]; ok {
		return f
	}
	return t.Label()
}

// Valid reports whether t is one of the supported types.
func (t Type) Valid() bool {
	_, ok := forges[t]
	return ok
}

// LookupType matches name case-sensitively against the supported types.
func LookupType(name string) (Type, bool) {
	t := Type(name)
	return t, t.Valid()
}

// TypeNames returns the supported type names joined by ", ".
func TypeNames() string {
	names := make([]string, len(Types))
	for i, t := range Types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
