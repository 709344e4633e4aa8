package bdio_test

import (
	"fmt"

	"github.com/matzehuels/packman/pkg/bdio"
	"github.com/matzehuels/packman/pkg/deps"
)

func ExampleFileName() {
	fmt.Println(bdio.FileName(deps.TypeNPM, "app", "1.0.0"))
	fmt.Println(bdio.FileName(deps.TypePIP, "My App", "1.0/beta"))
	// Output:
	// NPM_app_1.0.0_bdio.jsonld
	// PIP_My+App_1.0%2Fbeta_bdio.jsonld
}

func ExampleTransform() {
	lodash := deps.NewNode(deps.TypeNPM, "lodash", "4.17.21")
	app := deps.NewNode(deps.TypeNPM, "app", "1.0.0").AddChild(
		deps.NewNode(deps.TypeNPM, "express", "4.18.2").AddChild(lodash),
		lodash,
	)

	doc := bdio.Transform(app, bdio.TransformOptions{})
	fmt.Println(doc.BillOfMaterials.SpdxName)
	for _, e := range doc.Entries() {
		fmt.Printf("%s %s -> %d\n", e.Type, e.Name, len(e.Relationships))
	}
	// Output:
	// app/1.0.0 Black Duck I/O Export
	// Project app -> 2
	// Component express -> 1
	// Component lodash -> 0
}
