package layout

import "strings"

// PlaceFloat sizes a floating region against the whole screen and anchors it
// by an alignment such as "bottom-right". Floats never affect tiled layout.
func PlaceFloat(s Sizer, screen Rect, align string, lim Limits) Rect {
	if lim == nil {
		lim = noLimits{}
	}
	height := floatSize(s.Height(screen.Height), lim.MaxHeight(s.Name()), screen.Height)
	width := floatSize(s.Width(screen.Width), lim.MaxWidth(s.Name()), screen.Width)

	align = strings.ToLower(strings.TrimSpace(align))
	r := Rect{Top: screen.Top, Left: screen.Left, Height: height, Width: width}
	if strings.HasPrefix(align, AlignBottom) {
		r.Top = screen.Top + screen.Height - height
	}
	if strings.HasSuffix(align, AlignRight) {
		r.Left = screen.Left + screen.Width - width
	}
	return r
}

func floatSize(req, limit, avail int) int {
	if limit <= 0 {
		limit = avail
	}
	size := min(avail, limit, req)
	if size < 0 {
		return 0
	}
	return size
}
