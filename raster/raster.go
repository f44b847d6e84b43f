// Package raster rasterizes lines, rectangles, circles and triangles onto a
// monochrome pixel surface.
//
// All functions are stateless. They only light pixels and rely on the
// Plotter to drop coordinates outside its bounds, so shapes clip silently at
// the surface edge.
package raster

// Plotter is a pixel surface. SetPixel must ignore out of range coordinates.
type Plotter interface {
	SetPixel(x, y int, on bool)
}

// Pixel lights the pixel at (x, y).
func Pixel(p Plotter, x, y int) {
	p.SetPixel(x, y, true)
}

// HLine draws a horizontal run of w pixels starting at (x, y).
func HLine(p Plotter, x, y, w int) {
	for i := 0; i < w; i++ {
		p.SetPixel(x+i, y, true)
	}
}

// VLine draws a vertical run of h pixels starting at (x, y).
func VLine(p Plotter, x, y, h int) {
	for i := 0; i < h; i++ {
		p.SetPixel(x, y+i, true)
	}
}

// Line draws a line from (x0, y0) to (x1, y1), both ends included.
// Axis aligned lines are drawn as straight runs.
func Line(p Plotter, x0, y0, x1, y1 int) {
	switch {
	case x0 == x1:
		if y0 > y1 {
			y0, y1 = y1, y0
		}
		VLine(p, x0, y0, y1-y0+1)
	case y0 == y1:
		if x0 > x1 {
			x0, x1 = x1, x0
		}
		HLine(p, x0, y0, x1-x0+1)
	default:
		bresenham(p, x0, y0, x1, y1)
	}
}

// bresenham draws a line with the integer Bresenham stepper.
func bresenham(p Plotter, x0, y0, x1, y1 int) {
	steep := abs(y1-y0) > abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := abs(y1 - y0)
	err := dx / 2
	ystep := -1
	if y0 < y1 {
		ystep = 1
	}

	for ; x0 <= x1; x0++ {
		if steep {
			p.SetPixel(y0, x0, true)
		} else {
			p.SetPixel(x0, y0, true)
		}
		err -= dy
		if err < 0 {
			y0 += ystep
			err += dx
		}
	}
}

// Rect draws the outline of the w by h rectangle at (x, y).
func Rect(p Plotter, x, y, w, h int) {
	if w < 1 || h < 1 {
		return
	}
	HLine(p, x, y, w)
	HLine(p, x, y+h-1, w)
	VLine(p, x, y, h)
	VLine(p, x+w-1, y, h)
}

// FillRect fills the w by h rectangle at (x, y).
func FillRect(p Plotter, x, y, w, h int) {
	for i := x; i < x+w; i++ {
		VLine(p, i, y, h)
	}
}

// RoundRect draws the outline of a rectangle with corners of radius r.
func RoundRect(p Plotter, x, y, w, h, r int) {
	if w < 1 || h < 1 {
		return
	}
	r = clampRadius(w, h, r)

	HLine(p, x+r, y, w-2*r)     // top
	HLine(p, x+r, y+h-1, w-2*r) // bottom
	VLine(p, x, y+r, h-2*r)     // left
	VLine(p, x+w-1, y+r, h-2*r) // right
	arc(p, x+r, y+r, r, TopLeft)
	arc(p, x+w-r-1, y+r, r, TopRight)
	arc(p, x+w-r-1, y+h-r-1, r, BottomRight)
	arc(p, x+r, y+h-r-1, r, BottomLeft)
}

// FillRoundRect fills a rectangle with corners of radius r.
func FillRoundRect(p Plotter, x, y, w, h, r int) {
	if w < 1 || h < 1 {
		return
	}
	r = clampRadius(w, h, r)

	FillRect(p, x+r, y, w-2*r, h)
	fillArc(p, x+w-r-1, y+r, r, RightHalf, h-2*r-1)
	fillArc(p, x+r, y+r, r, LeftHalf, h-2*r-1)
}

// clampRadius keeps opposite corners from overlapping.
func clampRadius(w, h, r int) int {
	if r < 0 {
		return 0
	}
	if m := min(w, h) / 2; r > m {
		return m
	}
	return r
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
