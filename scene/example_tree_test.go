package scene_test

import (
	"fmt"
	"strings"

	"github.com/plus3/retained/scene"
)

// ExampleTree_Descendants prints a nested widget hierarchy in the order
// layout visits it: depth-first, children in insertion order.
func ExampleTree_Descendants() {
	g := scene.NewGraph()

	window := g.Spawn(&scene.Text{Content: "window"})
	toolbar, _ := g.SpawnChild(window, &scene.Text{Content: "toolbar"})
	g.SpawnChild(toolbar, &scene.Text{Content: "save"})
	g.SpawnChild(toolbar, &scene.Text{Content: "open"})
	body, _ := g.SpawnChild(window, &scene.Text{Content: "body"})
	g.SpawnChild(body, &scene.Text{Content: "canvas"})

	tree := g.Tree()
	for e := range tree.Descendants(window) {
		txt, _ := scene.Get[scene.Text](g.Visuals(), e)
		fmt.Printf("%s%s\n", strings.Repeat("  ", tree.Depth(e)), txt.Content)
	}

	// Output:
	//   toolbar
	//     save
	//     open
	//   body
	//     canvas
}

// ExampleTree_Reparent moves a subtree to a new parent. The moved node joins
// the destination's children at the tail, and moving a node under its own
// descendant is rejected.
func ExampleTree_Reparent() {
	g := scene.NewGraph()

	root := g.Spawn()
	left, _ := g.SpawnChild(root)
	right, _ := g.SpawnChild(root)
	item, _ := g.SpawnChild(left)

	g.Reparent(item, right)
	parent, _ := g.Tree().Parent(item)
	fmt.Printf("item now under right: %v\n", parent == right)

	err := g.Reparent(root, item)
	fmt.Printf("moving root under its descendant: %v\n", err != nil)

	// Output:
	// item now under right: true
	// moving root under its descendant: true
}
