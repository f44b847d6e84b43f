package image1bit

// BufferSize is the length of a serialized frame in bytes.
const BufferSize = Width * Pages

// PageBuffer is a frame in the controller's horizontal addressing order:
// pages outer, columns inner, one byte per page column.
type PageBuffer [BufferSize]byte

// Serialize packs f into b.
//
// Each byte is built by walking the page rows bottom to top, shifting the
// accumulator left and OR-ing in the pixel, so row r of a page ends up in
// bit r. The output order is part of the wire contract with the controller.
func (b *PageBuffer) Serialize(f *Framebuffer) {
	i := 0
	for page := 0; page < Pages; page++ {
		top := page * PageHeight
		for x := 0; x < Width; x++ {
			var v byte
			for row := PageHeight - 1; row >= 0; row-- {
				v <<= 1
				if f.pix[x][top+row] {
					v |= 0x01
				}
			}
			b[i] = v
			i++
		}
	}
}

// Pixel decodes the pixel at (x, y) from b. Out of range coordinates read as dark.
func (b *PageBuffer) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return b[(y/PageHeight)*Width+x]&(1<<uint(y%PageHeight)) != 0
}

// Load copies a serialized frame into b. Short input leaves the tail untouched.
// It returns the number of bytes copied.
func (b *PageBuffer) Load(p []byte) int {
	return copy(b[:], p)
}
