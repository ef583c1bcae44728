// Package skeleton defines the fixed joint topology and the per-import
// binding of joints to marker data.
//
// The tree follows the OpenPose body_25b convention: joint names are the
// marker labels plus a trailing "J". Adapting the importer to another
// skeleton only requires supplying a different tree; no other package
// hardcodes joint names.
package skeleton

import (
	"strings"

	"github.com/MineClever/Maya-Mocap/internal/util"
)

// Synthesis declares how to derive a joint position when no direct marker
// exists: the componentwise average of the named markers.
type Synthesis struct {
	Average []string
}

// Node is one joint of the skeletal hierarchy. The tree is immutable after
// construction: exactly one root, no cycles, every non-root node has one
// parent.
type Node struct {
	Name      string
	Children  []*Node
	Synthesis *Synthesis

	parent *Node
}

// Parent returns the node's parent, nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// NewNode builds a joint node and wires the parent links of its children.
// Custom skeletons are assembled from nested NewNode calls.
func NewNode(name string, children ...*Node) *Node {
	n := &Node{Name: name, Children: children}
	for _, c := range children {
		c.parent = n
	}
	return n
}

// The pelvis has no marker in most OpenPose exports; it is synthesized from
// the hip midpoint.
var body25b = func() *Node {
	root := NewNode("CHipJ",
		NewNode("RHipJ",
			NewNode("RKneeJ",
				NewNode("RAnkleJ",
					NewNode("RBigToeJ",
						NewNode("RSmallToeJ"),
					),
					NewNode("RHeelJ"),
				),
			),
		),
		NewNode("LHipJ",
			NewNode("LKneeJ",
				NewNode("LAnkleJ",
					NewNode("LBigToeJ",
						NewNode("LSmallToeJ"),
					),
					NewNode("LHeelJ"),
				),
			),
		),
		NewNode("NeckJ",
			NewNode("HeadJ",
				NewNode("NoseJ"),
			),
			NewNode("RShoulderJ",
				NewNode("RElbowJ",
					NewNode("RWristJ"),
				),
			),
			NewNode("LShoulderJ",
				NewNode("LElbowJ",
					NewNode("LWristJ"),
				),
			),
		),
	)
	root.Synthesis = &Synthesis{Average: []string{"RHip", "LHip"}}
	return root
}()

// Body25B returns the root of the OpenPose body_25b joint tree. The tree is
// shared and must not be mutated.
func Body25B() *Node {
	return body25b
}

// PreOrder returns the tree in depth-first pre-order: the root first, every
// node after its parent. Joint creation and the orientation pass both rely
// on this order.
func PreOrder(root *Node) []*Node {
	var nodes []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		nodes = append(nodes, n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return nodes
}

// MarkerLabel normalizes a joint name to its marker label: any instance
// counter digits are stripped, then the joint suffix "J".
func MarkerLabel(jointName string) string {
	return strings.TrimSuffix(util.StripDigits(jointName), "J")
}
