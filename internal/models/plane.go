package models

import "fmt"

// Plane is one channel's worth of 8-bit samples. Rows are Stride bytes
// apart; only the first Width bytes of each row are meaningful. The backing
// buffer is owned by whoever built the plane, never by the curve engine.
type Plane struct {
	Pix    []uint8
	Width  int
	Height int
	Stride int
}

// NewPlane allocates a packed plane (stride == width).
func NewPlane(width, height int) Plane {
	return Plane{
		Pix:    make([]uint8, width*height),
		Width:  width,
		Height: height,
		Stride: width,
	}
}

func (p Plane) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("invalid plane dimensions: %dx%d", p.Width, p.Height)
	}
	if p.Stride < p.Width {
		return fmt.Errorf("plane stride %d smaller than width %d", p.Stride, p.Width)
	}
	if len(p.Pix) < (p.Height-1)*p.Stride+p.Width {
		return fmt.Errorf("plane buffer too small: have %d, need %d",
			len(p.Pix), (p.Height-1)*p.Stride+p.Width)
	}
	return nil
}

// Row returns the samples of row y, excluding stride padding.
func (p Plane) Row(y int) []uint8 {
	off := y * p.Stride
	return p.Pix[off : off+p.Width]
}

// Fill sets every sample to value, leaving stride padding untouched.
func (p Plane) Fill(value uint8) {
	p.FillRegion(p.Width, p.Height, value)
}

// FillRegion sets the top-left width x height region to value. The region
// is clipped to the plane.
func (p Plane) FillRegion(width, height int, value uint8) {
	if width > p.Width {
		width = p.Width
	}
	if height > p.Height {
		height = p.Height
	}
	for y := 0; y < height; y++ {
		row := p.Row(y)[:width]
		for x := range row {
			row[x] = value
		}
	}
}

// CopyFrom copies the sample region of src into p. Both planes must have
// the same dimensions; strides may differ.
func (p Plane) CopyFrom(src Plane) error {
	if p.Width != src.Width || p.Height != src.Height {
		return fmt.Errorf("plane size mismatch: %dx%d vs %dx%d",
			p.Width, p.Height, src.Width, src.Height)
	}
	for y := 0; y < p.Height; y++ {
		copy(p.Row(y), src.Row(y))
	}
	return nil
}

// Compact returns the samples as a packed buffer with no stride padding.
// Packed planes return their backing buffer directly.
func (p Plane) Compact() []uint8 {
	if p.Stride == p.Width {
		return p.Pix[:p.Width*p.Height]
	}
	out := make([]uint8, p.Width*p.Height)
	for y := 0; y < p.Height; y++ {
		copy(out[y*p.Width:], p.Row(y))
	}
	return out
}
