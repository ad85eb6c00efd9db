package layout

import "strings"

// Layout kinds.
const (
	KindDefault = "default"
	KindHStack  = "hstack"
	KindVStack  = "vstack"
)

// Alignment buckets for the default layout.
const (
	AlignTop     = "top"
	AlignBottom  = "bottom"
	AlignLeft    = "left"
	AlignRight   = "right"
	AlignNeutral = "neutral"
)

// Primary is the option name of the main listing region. The default layout
// nests it deeper than its siblings so it absorbs any leftover space.
const Primary = "taglist"

// Aligner supplies the configured alignment tag of a region.
type Aligner interface {
	Align(name string) string
}

// Fill builds the layout tree for the tiled regions. The tree is rebuilt from
// scratch on every change and is arranged starting with Vertical orientation.
//
// "hstack" puts every region in one row and "vstack" puts every region in one
// column. Any other kind groups regions by alignment: top regions, then one
// row of left+neutral+right regions, then bottom regions. The row is a nested
// branch, so it gets whatever height the top and bottom regions leave.
func Fill(kind string, regions []Sizer, al Aligner) Node {
	switch kind {
	case KindHStack:
		return Branch(Branch(leaves(regions)...))
	case KindVStack:
		return Branch(leaves(regions)...)
	}

	buckets := map[string][]Node{}
	for _, r := range regions {
		align := AlignNeutral
		if al != nil {
			align = normalizeAlign(al.Align(r.Name()))
		}
		node := Leaf(r)
		if r.Name() == Primary {
			node = Branch(Branch(node))
		}
		buckets[align] = append(buckets[align], node)
	}

	var row []Node
	row = append(row, buckets[AlignLeft]...)
	row = append(row, buckets[AlignNeutral]...)
	row = append(row, buckets[AlignRight]...)

	var root []Node
	root = append(root, buckets[AlignTop]...)
	root = append(root, Branch(row...))
	root = append(root, buckets[AlignBottom]...)
	return Branch(root...)
}

func leaves(regions []Sizer) []Node {
	out := make([]Node, 0, len(regions))
	for _, r := range regions {
		out = append(out, Leaf(r))
	}
	return out
}

func normalizeAlign(align string) string {
	switch strings.TrimSpace(strings.ToLower(align)) {
	case AlignTop:
		return AlignTop
	case AlignBottom:
		return AlignBottom
	case AlignLeft:
		return AlignLeft
	case AlignRight:
		return AlignRight
	default:
		return AlignNeutral
	}
}
