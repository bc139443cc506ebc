package obj

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/thirdperson/prefabs"
)

// Node is a named transform in a scene tree. Position is relative to the
// parent and rotated by the parent's world rotation.
type Node struct {
	Name     string
	Position mgl32.Vec3

	yaw   float32
	pitch float32

	parent   *Node
	children []*Node
}

func NewNode(name string) *Node {
	return &Node{Name: name}
}

// BuildScene instantiates a node tree from its spec.
func BuildScene(spec prefabs.NodeSpec) *Node {
	n := NewNode(spec.Name)
	n.Position = mgl32.Vec3(spec.Position)
	n.yaw = spec.Yaw
	n.pitch = spec.Pitch
	for _, child := range spec.Children {
		n.AddChild(BuildScene(child))
	}
	return n
}

func (n *Node) AddChild(c *Node) *Node {
	c.parent = n
	n.children = append(n.children, c)
	return c
}

func (n *Node) Yaw() float32   { return n.yaw }
func (n *Node) Pitch() float32 { return n.pitch }

func (n *Node) SetYaw(yaw float32)     { n.yaw = yaw }
func (n *Node) SetPitch(pitch float32) { n.pitch = pitch }

// Find walks a "/" separated path of child names. "." and empty segments
// stay on the current node, ".." moves to the parent.
func (n *Node) Find(path string) *Node {
	cur := n
	for _, part := range strings.Split(path, "/") {
		if cur == nil {
			return nil
		}
		switch part {
		case "", ".":
			continue
		case "..":
			cur = cur.parent
			continue
		}
		var next *Node
		for _, c := range cur.children {
			if c.Name == part {
				next = c
				break
			}
		}
		cur = next
	}
	return cur
}

// Lookup is Find in the shape system.SceneLookup wants.
func (n *Node) Lookup(path string) (any, bool) {
	found := n.Find(path)
	if found == nil {
		return nil, false
	}
	return found, true
}

func (n *Node) localRotation() mgl32.Mat3 {
	return mgl32.Rotate3DY(n.yaw).Mul3(mgl32.Rotate3DX(n.pitch))
}

func (n *Node) WorldRotation() mgl32.Mat3 {
	if n.parent == nil {
		return n.localRotation()
	}
	return n.parent.WorldRotation().Mul3(n.localRotation())
}

func (n *Node) WorldPosition() mgl32.Vec3 {
	if n.parent == nil {
		return n.Position
	}
	return n.parent.WorldPosition().Add(n.parent.WorldRotation().Mul3x1(n.Position))
}

// Forward is the node's -Z axis in world space.
func (n *Node) Forward() mgl32.Vec3 {
	return n.WorldRotation().Mul3x1(mgl32.Vec3{0, 0, -1})
}
