package filter

// DefaultSmoothingWindow is the curve smoothing half-width applied when no
// window is configured.
const DefaultSmoothingWindow = 8

// Options configures one filter unit. Channels lists the planar channels to
// process (0 = luma, 1 and 2 = chroma); an empty list means channel 0 only.
// Debug is mutually exclusive with Show and wins when both are set.
type Options struct {
	Raw             bool
	Show            bool
	Debug           bool
	SmoothingWindow int
	Channels        []int
}

// DefaultOptions returns the options used when nothing is configured:
// postprocessed curve, smoothing window 8, channel 0 only, no rendering.
func DefaultOptions() Options {
	return Options{SmoothingWindow: DefaultSmoothingWindow}
}
