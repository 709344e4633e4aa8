package deps_test

import (
	"fmt"

	"github.com/matzehuels/packman/pkg/deps"
)

func ExampleParseTypes() {
	types := deps.ParseTypes(" CARGO, npm, NPM, ,CARGO", nil)
	fmt.Println(types)
	// Output:
	// [CARGO NPM]
}

func ExampleWalk() {
	lodash := deps.NewNode(deps.TypeNPM, "lodash", "4.17.21")
	app := deps.NewNode(deps.TypeNPM, "app", "1.0.0").AddChild(
		deps.NewNode(deps.TypeNPM, "express", "4.18.2").AddChild(lodash),
		lodash,
	)

	deps.Walk(app, func(n *deps.Node, depth int) bool {
		fmt.Printf("%*s%s@%s\n", depth*2, "", n.Name, n.Version)
		return true
	})
	// Output:
	// app@1.0.0
	//   express@4.18.2
	//     lodash@4.17.21
}
