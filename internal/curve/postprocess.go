package curve

// maxExtendPasses bounds the boundary-extrapolation loop. Gap interpolation
// leaves the defined span contiguous, so every pass anchors at least one
// new index and 256 passes can never be reached; the cap turns a broken
// invariant into a truncated extension instead of a hang.
const maxExtendPasses = 256

// postprocess refines the raw conditional-mean curve into a mapping that is
// defined for every index: collapse to a constant when the key plane was
// uniform, interpolate interior gaps, extrapolate past the defined span by
// reflection, then box-smooth.
func postprocess(c *Curve, acc *accumulator, window int) {
	if flat := uniformIndex(acc); flat >= 0 {
		constant := c.table[flat]
		for i := 0; i < 256; i++ {
			c.table[i] = constant
			c.defined[i] = true
		}
		return
	}

	interpolateGaps(c, acc)
	extendEnds(c, acc)

	if window > 0 {
		smooth(c, window)
	}
}

// uniformIndex returns the single index with samples when every key pixel
// had the same value, -1 otherwise.
func uniformIndex(acc *accumulator) int {
	flat := -1
	for i := 0; i < 256; i++ {
		if acc.div[i] != 0 {
			if flat != -1 {
				return -1
			}
			flat = i
		}
	}
	return flat
}

// interpolateGaps linearly fills every undefined index that has a defined
// neighbor on both sides, anchoring it for subsequent lookups. Indices
// outside the span of all defined data are left for extendEnds.
func interpolateGaps(c *Curve, acc *accumulator) {
	for i := 0; i < 256; i++ {
		if acc.div[i] != 0 {
			continue
		}

		prev := -1
		for p := i - 1; p >= 0; p-- {
			if acc.div[p] != 0 {
				prev = p
				break
			}
		}

		next := -1
		for n := i + 1; n < 256; n++ {
			if acc.div[n] != 0 {
				next = n
				break
			}
		}

		if prev != -1 && next != -1 {
			delta := roundDiv(int64(i-prev)*(int64(c.table[next])-int64(c.table[prev])), int64(next-prev))
			c.table[i] = clampByte(int64(c.table[prev]) + delta)
			c.defined[i] = true
			acc.sum[i] = int64(c.table[i])
			acc.div[i] = 1
		}
	}
}

// extendEnds extrapolates the curve to indices 0 and 255 by reflecting
// about the first and last defined indices: the value at first+k mirrors to
// first-k with the curve value reflected about curve[first].
func extendEnds(c *Curve, acc *accumulator) {
	for pass := 0; pass < maxExtendPasses; pass++ {
		if acc.div[0] != 0 && acc.div[255] != 0 {
			return
		}

		if acc.div[0] == 0 {
			first := -1
			for f := 0; f < 256; f++ {
				if acc.div[f] != 0 {
					first = f
					break
				}
			}

			for i := 0; i < first; i++ {
				mirror := first*2 - i
				if mirror <= 255 && acc.div[mirror] != 0 {
					c.table[i] = clampByte(int64(c.table[first])*2 - int64(c.table[mirror]))
					c.defined[i] = true
					acc.sum[i] = int64(c.table[i])
					acc.div[i] = 1
				}
			}
		}

		if acc.div[255] == 0 {
			last := -1
			for l := 255; l >= 0; l-- {
				if acc.div[l] != 0 {
					last = l
					break
				}
			}

			for i := 255; i > last; i-- {
				mirror := last*2 - i
				if mirror >= 0 && acc.div[mirror] != 0 {
					c.table[i] = clampByte(int64(c.table[last])*2 - int64(c.table[mirror]))
					c.defined[i] = true
					acc.sum[i] = int64(c.table[i])
					acc.div[i] = 1
				}
			}
		}
	}
}

// smooth replaces each entry with the rounded mean of its neighbors in the
// half-open window [i-w, i+w) clipped to the table, matching the slightly
// asymmetric filter of the reference behavior.
func smooth(c *Curve, window int) {
	var smoothed [256]uint8

	for i := 0; i < 256; i++ {
		var sum, count int64
		for j := -window; j < window; j++ {
			if i+j >= 0 && i+j < 256 {
				sum += int64(c.table[i+j])
				count++
			}
		}
		smoothed[i] = uint8(roundDiv(sum, count))
	}

	c.table = smoothed
}
