package raster

// Quadrant selects the corners plotted by the circle helpers.
type Quadrant uint8

const (
	TopLeft     Quadrant = 0x1
	TopRight    Quadrant = 0x2
	BottomRight Quadrant = 0x4
	BottomLeft  Quadrant = 0x8

	AllCorners = TopLeft | TopRight | BottomRight | BottomLeft
)

// Halves selected by the fill helper.
const (
	RightHalf Quadrant = 0x1
	LeftHalf  Quadrant = 0x2
)

// Circle draws the outline of the circle of radius r centered on (x0, y0).
func Circle(p Plotter, x0, y0, r int) {
	if r < 0 {
		return
	}
	p.SetPixel(x0, y0+r, true)
	p.SetPixel(x0, y0-r, true)
	p.SetPixel(x0+r, y0, true)
	p.SetPixel(x0-r, y0, true)
	arc(p, x0, y0, r, AllCorners)
}

// FillCircle fills the circle of radius r centered on (x0, y0).
func FillCircle(p Plotter, x0, y0, r int) {
	if r < 0 {
		return
	}
	VLine(p, x0, y0-r, 2*r+1)
	fillArc(p, x0, y0, r, RightHalf|LeftHalf, 0)
}

// Arc draws the quarter circles of radius r around (x0, y0) selected by q.
func Arc(p Plotter, x0, y0, r int, q Quadrant) {
	arc(p, x0, y0, r, q)
}

// arc walks one octant with the midpoint circle algorithm and mirrors each
// step into the corners selected by q. The axis points are not plotted.
func arc(p Plotter, x0, y0, r int, q Quadrant) {
	f := 1 - r
	ddFx := 1
	ddFy := -2 * r
	x, y := 0, r

	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx

		if q&BottomRight != 0 {
			p.SetPixel(x0+x, y0+y, true)
			p.SetPixel(x0+y, y0+x, true)
		}
		if q&TopRight != 0 {
			p.SetPixel(x0+x, y0-y, true)
			p.SetPixel(x0+y, y0-x, true)
		}
		if q&BottomLeft != 0 {
			p.SetPixel(x0-y, y0+x, true)
			p.SetPixel(x0-x, y0+y, true)
		}
		if q&TopLeft != 0 {
			p.SetPixel(x0-y, y0-x, true)
			p.SetPixel(x0-x, y0-y, true)
		}
	}
}

// fillArc fills the halves of the circle selected by q with vertical runs.
// delta stretches every run downwards to bridge the straight edge of a
// rounded rectangle.
func fillArc(p Plotter, x0, y0, r int, q Quadrant, delta int) {
	f := 1 - r
	ddFx := 1
	ddFy := -2 * r
	x, y := 0, r

	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx

		if q&RightHalf != 0 {
			VLine(p, x0+x, y0-y, 2*y+1+delta)
			VLine(p, x0+y, y0-x, 2*x+1+delta)
		}
		if q&LeftHalf != 0 {
			VLine(p, x0-x, y0-y, 2*y+1+delta)
			VLine(p, x0-y, y0-x, 2*x+1+delta)
		}
	}
}
