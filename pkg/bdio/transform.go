package bdio

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/packman/pkg/deps"
)

// TransformOptions carries the values of a document that do not come from
// the graph itself.
type TransformOptions struct {
	// Creator is recorded as "Tool: <Creator>" when non-empty.
	Creator string
	// Created is the document timestamp. The zero time omits it.
	Created time.Time
}

// DefaultTitle returns the spdx:name used when no overrides are configured.
func DefaultTitle(name, version string) string {
	return fmt.Sprintf("%s/%s Black Duck I/O Export", name, version)
}

// OverrideTitle returns the spdx:name used when both project overrides are set.
func OverrideTitle(name, version string, t deps.Type) string {
	return fmt.Sprintf("%s/%s/%s Black Duck I/O Export", name, version, t)
}

// Transform converts a project root and everything reachable from it into
// a document. It has no side effects and the same input always yields the
// same document.
//
// Nodes are visited depth-first in child order. Components sharing an
// identifier are merged into one entry; every distinct edge is kept.
// Cycles terminate because each node is expanded once.
func Transform(root *deps.Node, opts TransformOptions) *Document {
	projectID := EntryID(root)
	doc := &Document{
		BillOfMaterials: BillOfMaterials{
			ID:          "uuid:" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(projectID)).String(),
			Type:        TypeBillOfMaterials,
			SpecVersion: SpecVersion,
			SpdxName:    DefaultTitle(root.Name, root.Version),
		},
		Project: newEntry(root, TypeProject),
	}
	if opts.Creator != "" || !opts.Created.IsZero() {
		info := &CreationInfo{}
		if opts.Creator != "" {
			info.Creator = []string{"Tool: " + opts.Creator}
		}
		if !opts.Created.IsZero() {
			info.Created = opts.Created.UTC().Format(time.RFC3339)
		}
		doc.BillOfMaterials.CreationInfo = info
	}

	t := &transformer{
		doc:      doc,
		index:    make(map[string]int),
		edges:    make(map[[2]string]bool),
		expanded: map[*deps.Node]bool{root: true},
	}
	t.expand(projectID, root)
	return doc
}

func newEntry(n *deps.Node, typ string) Entry {
	return Entry{
		ID:                 EntryID(n),
		Type:               typ,
		Name:               n.Name,
		Revision:           n.Version,
		ExternalIdentifier: ExternalID(n),
		Relationships:      []Relationship{},
	}
}

type transformer struct {
	doc      *Document
	index    map[string]int // component ID -> position in doc.Components
	edges    map[[2]string]bool
	expanded map[*deps.Node]bool
}

func (t *transformer) expand(fromID string, n *deps.Node) {
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		id := EntryID(c)
		if id != t.doc.Project.ID {
			if _, ok := t.index[id]; !ok {
				t.index[id] = len(t.doc.Components)
				t.doc.Components = append(t.doc.Components, newEntry(c, TypeComponent))
			}
		}
		t.relate(fromID, id)
		if t.expanded[c] {
			continue
		}
		t.expanded[c] = true
		t.expand(id, c)
	}
}

func (t *transformer) relate(fromID, toID string) {
	key := [2]string{fromID, toID}
	if t.edges[key] {
		return
	}
	t.edges[key] = true
	e := t.entry(fromID)
	e.Relationships = append(e.Relationships, Relationship{Related: toID, Type: RelationshipDynamicLink})
}

func (t *transformer) entry(id string) *Entry {
	if id == t.doc.Project.ID {
		return &t.doc.Project
	}
	return &t.doc.Components[t.index[id]]
}
