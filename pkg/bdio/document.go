package bdio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Entry types used in BDIO documents.
const (
	TypeBillOfMaterials = "BillOfMaterials"
	TypeProject         = "Project"
	TypeComponent       = "Component"
)

// SpecVersion is the BDIO specification version written into documents.
const SpecVersion = "1.1.0"

// RelationshipDynamicLink is the relationship type used for dependency edges.
const RelationshipDynamicLink = "DYNAMIC_LINK"

// Document is a BDIO document for one project.
type Document struct {
	BillOfMaterials BillOfMaterials
	Project         Entry
	Components      []Entry
}

// BillOfMaterials is the document header.
type BillOfMaterials struct {
	ID           string        `json:"@id"`
	Type         string        `json:"@type"`
	SpecVersion  string        `json:"specVersion"`
	SpdxName     string        `json:"spdx:name"`
	CreationInfo *CreationInfo `json:"creationInfo,omitempty"`
}

// CreationInfo records which tool produced the document and when.
type CreationInfo struct {
	Creator []string `json:"spdx:creator,omitempty"`
	Created string   `json:"spdx:created,omitempty"`
}

// Entry is a project or component node.
type Entry struct {
	ID                 string             `json:"@id"`
	Type               string             `json:"@type"`
	Name               string             `json:"name"`
	Revision           string             `json:"revision"`
	ExternalIdentifier ExternalIdentifier `json:"bdioExternalIdentifier"`
	Relationships      []Relationship     `json:"relationship"`
}

// ExternalIdentifier locates a component in its package ecosystem.
type ExternalIdentifier struct {
	SystemTypeID string `json:"externalSystemTypeId"`
	ID           string `json:"externalId"`
}

// Relationship is a directed dependency edge to another entry.
type Relationship struct {
	Related string `json:"related"`
	Type    string `json:"relationshipType"`
}

// Entries returns the project followed by all components.
func (d *Document) Entries() []Entry {
	out := make([]Entry, 0, len(d.Components)+1)
	out = append(out, d.Project)
	return append(out, d.Components...)
}

// MarshalJSON encodes the document as a JSON-LD array.
func (d *Document) MarshalJSON() ([]byte, error) {
	nodes := make([]any, 0, len(d.Components)+2)
	nodes = append(nodes, d.BillOfMaterials, d.Project)
	for _, c := range d.Components {
		nodes = append(nodes, c)
	}
	return json.Marshal(nodes)
}

// UnmarshalJSON decodes a JSON-LD array produced by MarshalJSON.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = Document{}
	for i, r := range raw {
		var head struct {
			Type string `json:"@type"`
		}
		if err := json.Unmarshal(r, &head); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		switch head.Type {
		case TypeBillOfMaterials:
			if err := json.Unmarshal(r, &d.BillOfMaterials); err != nil {
				return fmt.Errorf("entry %d: %w", i, err)
			}
		case TypeProject:
			if err := json.Unmarshal(r, &d.Project); err != nil {
				return fmt.Errorf("entry %d: %w", i, err)
			}
		case TypeComponent:
			var e Entry
			if err := json.Unmarshal(r, &e); err != nil {
				return fmt.Errorf("entry %d: %w", i, err)
			}
			d.Components = append(d.Components, e)
		default:
			return fmt.Errorf("entry %d: unknown @type %q", i, head.Type)
		}
	}
	return nil
}

// WriteJSON encodes doc as indented JSON and writes it to w.
func WriteJSON(doc *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes doc to a new file at path. The file is closed on every
// return path; a failed close is reported when encoding succeeded.
func ExportJSON(doc *Document, path string) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return WriteJSON(doc, f)
}

// ReadJSON decodes a document from r.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &doc, nil
}

// ImportJSON reads the document stored at path.
func ImportJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
