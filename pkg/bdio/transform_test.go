package bdio

import (
	"bytes"
	"reflect"
	"testing"
	"time"

	"github.com/matzehuels/packman/pkg/deps"
)

func npm(name, version string) *deps.Node {
	return deps.NewNode(deps.TypeNPM, name, version)
}

func relatedIDs(e Entry) []string {
	var ids []string
	for _, r := range e.Relationships {
		ids = append(ids, r.Related)
	}
	return ids
}

func TestTransformSingleProject(t *testing.T) {
	doc := Transform(npm("app", "1.0.0"), TransformOptions{})

	if doc.Project.Name != "app" || doc.Project.Revision != "1.0.0" {
		t.Errorf("project = %s@%s, want app@1.0.0", doc.Project.Name, doc.Project.Revision)
	}
	if doc.Project.Type != TypeProject {
		t.Errorf("project @type = %q", doc.Project.Type)
	}
	if doc.BillOfMaterials.SpdxName != "app/1.0.0 Black Duck I/O Export" {
		t.Errorf("spdx:name = %q", doc.BillOfMaterials.SpdxName)
	}
	if doc.BillOfMaterials.CreationInfo != nil {
		t.Errorf("creationInfo = %+v, want nil without options", doc.BillOfMaterials.CreationInfo)
	}
	if len(doc.Components) != 0 {
		t.Errorf("components = %d, want 0", len(doc.Components))
	}
	if doc.Project.ExternalIdentifier.SystemTypeID != "npmjs" {
		t.Errorf("forge = %q, want npmjs", doc.Project.ExternalIdentifier.SystemTypeID)
	}
}

func TestTransformPreservesEdges(t *testing.T) {
	lodash := npm("lodash", "4.17.21")
	express := npm("express", "4.18.2").AddChild(npm("debug", "2.6.9"), lodash)
	root := npm("app", "1.0.0").AddChild(express, lodash)

	doc := Transform(root, TransformOptions{})

	var names []string
	for _, c := range doc.Components {
		names = append(names, c.Name)
	}
	if want := []string{"express", "debug", "lodash"}; !reflect.DeepEqual(names, want) {
		t.Errorf("components = %v, want %v", names, want)
	}

	if got, want := relatedIDs(doc.Project), []string{"http:npmjs/express/4.18.2", "http:npmjs/lodash/4.17.21"}; !reflect.DeepEqual(got, want) {
		t.Errorf("project relationships = %v, want %v", got, want)
	}
	if got, want := relatedIDs(doc.Components[0]), []string{"http:npmjs/debug/2.6.9", "http:npmjs/lodash/4.17.21"}; !reflect.DeepEqual(got, want) {
		t.Errorf("express relationships = %v, want %v", got, want)
	}
}

func TestTransformMergesEqualComponents(t *testing.T) {
	// Two distinct node values describing the same package with different children.
	a := npm("shared", "1.0.0").AddChild(npm("x", "1"))
	b := npm("shared", "1.0.0").AddChild(npm("y", "1"))
	root := npm("app", "1.0.0").AddChild(npm("left", "1").AddChild(a), npm("right", "1").AddChild(b))

	doc := Transform(root, TransformOptions{})

	var shared *Entry
	count := 0
	for i := range doc.Components {
		if doc.Components[i].Name == "shared" {
			shared = &doc.Components[i]
			count++
		}
	}
	if count != 1 {
		t.Fatalf("shared listed %d times, want 1", count)
	}
	if got := relatedIDs(*shared); len(got) != 2 {
		t.Errorf("shared relationships = %v, want edges to x and y", got)
	}
}

func TestTransformCycle(t *testing.T) {
	a := npm("a", "1")
	b := npm("b", "1")
	a.AddChild(b)
	b.AddChild(a)
	root := npm("app", "1.0.0").AddChild(a)

	doc := Transform(root, TransformOptions{})
	if len(doc.Components) != 2 {
		t.Fatalf("components = %d, want 2", len(doc.Components))
	}
	if got := relatedIDs(doc.Components[1]); !reflect.DeepEqual(got, []string{"http:npmjs/a/1"}) {
		t.Errorf("b relationships = %v, want back edge to a", got)
	}
}

func TestTransformEdgeBackToProject(t *testing.T) {
	root := npm("app", "1.0.0")
	root.AddChild(npm("plugin", "1").AddChild(root))

	doc := Transform(root, TransformOptions{})
	if len(doc.Components) != 1 {
		t.Fatalf("components = %d, want 1 (project is not repeated)", len(doc.Components))
	}
	if got := relatedIDs(doc.Components[0]); !reflect.DeepEqual(got, []string{doc.Project.ID}) {
		t.Errorf("plugin relationships = %v, want edge to project", got)
	}
}

func TestTransformIsDeterministic(t *testing.T) {
	build := func() *deps.Node {
		return npm("app", "1.0.0").AddChild(npm("b", "2").AddChild(npm("c", "3")), npm("a", "1"))
	}
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	opts := TransformOptions{Creator: "packman-test", Created: created}

	var first, second bytes.Buffer
	if err := WriteJSON(Transform(build(), opts), &first); err != nil {
		t.Fatal(err)
	}
	if err := WriteJSON(Transform(build(), opts), &second); err != nil {
		t.Fatal(err)
	}
	if first.String() != second.String() {
		t.Errorf("Transform output differs between runs:\n%s\n---\n%s", first.String(), second.String())
	}

	doc := Transform(build(), opts)
	if doc.BillOfMaterials.CreationInfo == nil || doc.BillOfMaterials.CreationInfo.Created != "2024-01-02T03:04:05Z" {
		t.Errorf("creationInfo = %+v", doc.BillOfMaterials.CreationInfo)
	}
	if got := doc.BillOfMaterials.CreationInfo.Creator; !reflect.DeepEqual(got, []string{"Tool: packman-test"}) {
		t.Errorf("creator = %v", got)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := Transform(npm("app", "1.0.0").AddChild(npm("lodash", "4.17.21")), TransformOptions{})

	var buf bytes.Buffer
	if err := WriteJSON(doc, &buf); err != nil {
		t.Fatal(err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, doc)
	}
}

func TestReadJSONRejectsUnknownType(t *testing.T) {
	_, err := ReadJSON(bytes.NewBufferString(`[{"@type": "Mystery"}]`))
	if err == nil {
		t.Error("ReadJSON() expected error for unknown @type")
	}
}
