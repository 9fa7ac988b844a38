package chip8

// FrameBuffer is the monochrome pixel grid of the machine, stored row-major.
// It is only mutated by the clear and draw instructions, every mutation sets
// the dirty flag which the frame consumer clears after rendering.
type FrameBuffer struct {
	pixels [ScreenWidth * ScreenHeight]bool
	dirty  bool
}

// Pixel returns whether the pixel at the given position is lit.
// Positions outside of the screen are reported as not lit.
func (f *FrameBuffer) Pixel(x, y int) bool {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return false
	}
	return f.pixels[y*ScreenWidth+x]
}

// Pixels returns a copy of all pixels in row-major order.
func (f *FrameBuffer) Pixels() [ScreenWidth * ScreenHeight]bool {
	return f.pixels
}

// Dirty returns whether the frame buffer changed since the dirty flag was last cleared.
func (f *FrameBuffer) Dirty() bool {
	return f.dirty
}

// ClearDirty marks the current content as consumed.
func (f *FrameBuffer) ClearDirty() {
	f.dirty = false
}

// clear turns all pixels off.
func (f *FrameBuffer) clear() {
	f.pixels = [ScreenWidth * ScreenHeight]bool{}
	f.dirty = true
}

// drawRow XORs the 8 bits of a sprite row into the frame buffer starting at the
// given position, wrapping around both screen edges. It returns whether any lit
// pixel was turned off.
func (f *FrameBuffer) drawRow(x, y int, row byte) bool {
	collision := false
	offset := (y % ScreenHeight) * ScreenWidth

	for bit := range 8 {
		if (row>>(7-bit))&1 == 0 {
			continue
		}

		index := offset + (x+bit)%ScreenWidth
		if f.pixels[index] {
			collision = true
		}
		f.pixels[index] = !f.pixels[index]
	}
	return collision
}
