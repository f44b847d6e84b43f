package raster

// Triangle draws the outline of the triangle (x0, y0), (x1, y1), (x2, y2).
func Triangle(p Plotter, x0, y0, x1, y1, x2, y2 int) {
	Line(p, x0, y0, x1, y1)
	Line(p, x1, y1, x2, y2)
	Line(p, x2, y2, x0, y0)
}

// FillTriangle fills the triangle (x0, y0), (x1, y1), (x2, y2) one
// horizontal span per scanline.
func FillTriangle(p Plotter, x0, y0, x1, y1, x2, y2 int) {
	// Sort vertices by y: y0 <= y1 <= y2.
	if y0 > y1 {
		y0, y1 = y1, y0
		x0, x1 = x1, x0
	}
	if y1 > y2 {
		y1, y2 = y2, y1
		x1, x2 = x2, x1
	}
	if y0 > y1 {
		y0, y1 = y1, y0
		x0, x1 = x1, x0
	}

	if y0 == y2 {
		a, b := x0, x0
		if x1 < a {
			a = x1
		} else if x1 > b {
			b = x1
		}
		if x2 < a {
			a = x2
		} else if x2 > b {
			b = x2
		}
		HLine(p, a, y0, b-a+1)
		return
	}

	dx01, dy01 := x1-x0, y1-y0
	dx02, dy02 := x2-x0, y2-y0
	dx12, dy12 := x2-x1, y2-y1

	// A flat bottom includes scanline y1 in the upper pass, otherwise the
	// lower pass owns it and dy01 may be zero.
	last := y1 - 1
	if y1 == y2 {
		last = y1
	}

	sa, sb := 0, 0
	y := y0
	for ; y <= last; y++ {
		a := x0 + sa/dy01
		b := x0 + sb/dy02
		sa += dx01
		sb += dx02
		if a > b {
			a, b = b, a
		}
		HLine(p, a, y, b-a+1)
	}

	sa = dx12 * (y - y1)
	sb = dx02 * (y - y0)
	for ; y <= y2; y++ {
		a := x1 + sa/dy12
		b := x0 + sb/dy02
		sa += dx12
		sb += dx02
		if a > b {
			a, b = b, a
		}
		HLine(p, a, y, b-a+1)
	}
}
