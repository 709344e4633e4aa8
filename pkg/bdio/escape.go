package bdio

import (
	"fmt"
	"net/url"

	"github.com/matzehuels/packman/pkg/deps"
)

// FileExtension is the extension of BDIO output files.
const FileExtension = ".jsonld"

// EscapeForURI makes s safe for use in a URI component and a file name.
// Everything outside [A-Za-z0-9-_.~] is percent-encoded, except spaces,
// which become '+'. The result never contains a path separator.
func EscapeForURI(s string) string {
	return url.QueryEscape(s)
}

// BaseName returns the file name without extension for a project:
// <TYPE>_<name>_<version>_bdio.
func BaseName(t deps.Type, name, version string) string {
	return fmt.Sprintf("%s_%s_%s_bdio", t, EscapeForURI(name), EscapeForURI(version))
}

// FileName returns the BDIO file name for a project.
func FileName(t deps.Type, name, version string) string {
	return BaseName(t, name, version) + FileExtension
}

// ExternalID returns the external identifier of a node within its forge.
func ExternalID(n *deps.Node) ExternalIdentifier {
	return ExternalIdentifier{
		SystemTypeID: n.Type.Forge(),
		ID:           n.Name + "/" + n.Version,
	}
}

// EntryID returns the document-wide identifier of a node.
func EntryID(n *deps.Node) string {
	return fmt.Sprintf("http:%s/%s/%s", n.Type.Forge(), EscapeForURI(n.Name), EscapeForURI(n.Version))
}
