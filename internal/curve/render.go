package curve

import "match-histogram/internal/models"

// Rendering uses a coordinate system where x is the input value and y grows
// upward: output value v lands on row 255-v. The destination plane must be
// at least 256x256; callers pre-fill the background.

// Overlay draws the curve as a one-pixel trace in the given marker
// intensity, one pixel per column.
func Overlay(c Curve, dst models.Plane, color uint8) {
	for i := 0; i < 256; i++ {
		dst.Pix[(255-int(c.table[i]))*dst.Stride+i] = color
	}
}

// RenderDebug draws the curve as a bar chart: each column is filled from
// the bottom up to the curve's height with the grey level of the curve
// value itself, then the curve's own pixel is forced to full intensity so
// a bright trace sits on top of the bars.
func RenderDebug(c Curve, dst models.Plane) {
	for i := 0; i < 256; i++ {
		v := int(c.table[i])
		for j := 0; j <= v; j++ {
			dst.Pix[(255-j)*dst.Stride+i] = c.table[i]
		}
	}

	for i := 0; i < 256; i++ {
		if c.table[i] > 0 {
			dst.Pix[(255-int(c.table[i]))*dst.Stride+i] = 255
		}
	}
}
