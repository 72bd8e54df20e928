package curve

import "match-histogram/internal/models"

// Apply remaps every sample of src through the curve into dst. The planes
// must have identical dimensions; src and dst may share backing memory for
// in-place operation.
func Apply(c Curve, src, dst models.Plane) {
	for y := 0; y < src.Height; y++ {
		srcRow := src.Row(y)
		dstRow := dst.Row(y)
		for x, v := range srcRow {
			dstRow[x] = c.table[v]
		}
	}
}
