// Package curve derives, applies, and renders histogram-matching lookup
// tables. A curve maps each of the 256 possible sample values of a key
// plane to the mean of the value-plane samples found at the same positions,
// refined into a fully-defined smooth mapping unless raw mode is requested.
package curve

import (
	"match-histogram/internal/models"
)

// Curve is a finished 256-entry lookup table. After a non-raw Build every
// index is defined; in raw mode indices that never occurred in the key
// plane stay undefined and map to 0.
type Curve struct {
	table   [256]uint8
	defined [256]bool
}

// BuildOptions controls curve construction. Raw skips all postprocessing.
// SmoothingWindow is the half-width of the box filter applied as the final
// postprocessing stage; 0 disables smoothing.
type BuildOptions struct {
	Raw             bool
	SmoothingWindow int
}

// At returns the mapped value for an input sample.
func (c Curve) At(v uint8) uint8 {
	return c.table[v]
}

// Defined reports whether index v was anchored by data or postprocessing.
func (c Curve) Defined(v uint8) bool {
	return c.defined[v]
}

// Table returns a copy of the lookup table.
func (c Curve) Table() [256]uint8 {
	return c.table
}

// accumulator holds the per-value sums and counts gathered from one pass
// over the two planes. int64 keeps width*height*255 exact for any frame.
type accumulator struct {
	sum [256]int64
	div [256]int64
}

// roundDiv divides rounding to nearest, ties away from zero.
// Truncating division would bias the curve toward zero.
func roundDiv(x, y int64) int64 {
	if (x < 0) != (y < 0) {
		return (x - y/2) / y
	}
	return (x + y/2) / y
}

func clampByte(v int64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Build computes the matching curve for a pair of aligned planes: for every
// key-plane sample value, the rounded mean of the value-plane samples at
// the same positions. The planes must have identical dimensions.
func Build(key, value models.Plane, opts BuildOptions) Curve {
	var acc accumulator
	var c Curve

	for y := 0; y < key.Height; y++ {
		keyRow := key.Row(y)
		valueRow := value.Row(y)
		for x, k := range keyRow {
			acc.sum[k] += int64(valueRow[x])
			acc.div[k]++
		}
	}

	for i := 0; i < 256; i++ {
		if acc.div[i] != 0 {
			c.table[i] = uint8(roundDiv(acc.sum[i], acc.div[i]))
			c.defined[i] = true
		}
	}

	if !opts.Raw {
		postprocess(&c, &acc, opts.SmoothingWindow)
	}

	return c
}
