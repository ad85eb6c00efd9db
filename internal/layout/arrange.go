package layout

// Arrange assigns a rectangle to every leaf under root, dividing r along o at
// the top level and flipping orientation at each nested branch.
//
// At each level the leaves ("immediates") are sized first, in order: each gets
// min(configured max, requested size, remaining space / remaining units), so a
// small early request leaves more for the ones after it. Whatever space is
// left is then split evenly among the nested branches, and each branch
// consumes only the extent its own arrangement actually used.
func Arrange(root Node, r Rect, o Orientation, lim Limits) []Placement {
	if lim == nil {
		lim = noLimits{}
	}
	if root.IsLeaf() {
		root = Branch(root)
	}
	return arrange(root.children, r, o, lim)
}

func arrange(children []Node, r Rect, o Orientation, lim Limits) []Placement {
	extent := r.Height
	if o == Horizontal {
		extent = r.Width
	}

	sizes := make([]int, len(children))
	nested := make(map[int][]Placement)
	used := 0

	units := len(children)
	for i, child := range children {
		if !child.IsLeaf() {
			continue
		}
		share := (extent - used) / units
		sizes[i] = leafSize(child.region, share, o, lim)
		used += sizes[i]
		units--
	}

	units = len(children) - countLeaves(children)
	for i, child := range children {
		if child.IsLeaf() {
			continue
		}
		share := (extent - used) / units
		sub := subRect(r, o, offset(sizes, i), share)
		placements := arrange(child.children, sub, o.Flip(), lim)
		nested[i] = placements
		sizes[i] = span(placements, sub, o)
		used += sizes[i]
		units--
	}

	var out []Placement
	for i, child := range children {
		if !child.IsLeaf() {
			out = append(out, nested[i]...)
			continue
		}
		out = append(out, Placement{
			Region: child.region,
			Rect:   subRect(r, o, offset(sizes, i), sizes[i]),
		})
	}
	return out
}

// span is how far placements reach along o, measured from the start of r.
func span(placements []Placement, r Rect, o Orientation) int {
	far := 0
	for _, p := range placements {
		var end int
		if o == Horizontal {
			end = p.Rect.Left + p.Rect.Width - r.Left
		} else {
			end = p.Rect.Top + p.Rect.Height - r.Top
		}
		far = max(far, end)
	}
	return far
}

// leafSize is min(max, requested, share) with a zero max read as unbounded.
func leafSize(s Sizer, share int, o Orientation, lim Limits) int {
	if share <= 0 {
		return 0
	}
	var limit, req int
	if o == Horizontal {
		limit = lim.MaxWidth(s.Name())
		req = s.Width(share)
	} else {
		limit = lim.MaxHeight(s.Name())
		req = s.Height(share)
	}
	if limit <= 0 {
		limit = share
	}
	size := min(share, limit, req)
	if size < 0 {
		return 0
	}
	return size
}

// subRect returns the slice of r starting offset cells along o with the given
// size; the cross axis is inherited whole.
func subRect(r Rect, o Orientation, offset, size int) Rect {
	if o == Horizontal {
		return Rect{Top: r.Top, Left: r.Left + offset, Height: r.Height, Width: size}
	}
	return Rect{Top: r.Top + offset, Left: r.Left, Height: size, Width: r.Width}
}

func offset(sizes []int, i int) int {
	total := 0
	for _, s := range sizes[:i] {
		total += s
	}
	return total
}

func countLeaves(children []Node) int {
	n := 0
	for _, c := range children {
		if c.IsLeaf() {
			n++
		}
	}
	return n
}
