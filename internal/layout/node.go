// Package layout turns an arrangement of logical regions into concrete screen
// rectangles. It performs no I/O: callers bind the resulting placements to
// surfaces once every size is known.
package layout

// Orientation is the axis along which siblings divide space.
type Orientation int

const (
	// Vertical stacks siblings top to bottom.
	Vertical Orientation = iota
	// Horizontal places siblings left to right.
	Horizontal
)

// Flip returns the other orientation.
func (o Orientation) Flip() Orientation {
	if o == Vertical {
		return Horizontal
	}
	return Vertical
}

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Rect is a screen rectangle.
type Rect struct {
	Top    int
	Left   int
	Height int
	Width  int
}

// Sizer is the part of a region the engine needs: its option name and the
// size it wants given the space it is offered.
type Sizer interface {
	Name() string
	Height(avail int) int
	Width(avail int) int
}

// Limits supplies configured maximum sizes. Zero means unbounded.
type Limits interface {
	MaxHeight(name string) int
	MaxWidth(name string) int
}

// Node is either a leaf holding one region or a branch holding an ordered list
// of nodes. Branch orientation alternates with depth.
type Node struct {
	region   Sizer
	children []Node
}

// Leaf wraps a region.
func Leaf(s Sizer) Node {
	return Node{region: s}
}

// Branch groups nodes one level deeper.
func Branch(children ...Node) Node {
	return Node{children: children}
}

// IsLeaf reports whether n holds a region.
func (n Node) IsLeaf() bool {
	return n.region != nil
}

// Region returns the leaf's region, or nil for branches.
func (n Node) Region() Sizer {
	return n.region
}

// Children returns the branch's nodes.
func (n Node) Children() []Node {
	return n.children
}

// Placement is the rectangle assigned to one region.
type Placement struct {
	Region Sizer
	Rect   Rect
}

type noLimits struct{}

func (noLimits) MaxHeight(string) int { return 0 }
func (noLimits) MaxWidth(string) int  { return 0 }
