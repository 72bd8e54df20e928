// Package filter hosts the curve engine for whole frames: per-channel
// curve construction and application, curve overlays, and the standalone
// debug visualization. A Filter is configured once, with every structural
// error rejected up front; after that ProcessFrame is total over its input
// domain and safe to call concurrently for independent frames.
package filter

import (
	"errors"
	"fmt"

	"match-histogram/internal/curve"
	"match-histogram/internal/models"
)

// DebugSize is the edge length of the luma plane of debug-mode output.
const DebugSize = 256

// Marker intensities for curve overlays, one per channel, chosen to be
// distinguishable against the neutral show background.
var showColors = [models.MaxChannels]uint8{235, 160, 96}

// Filter derives a matching curve from a source and a reference frame each
// call and applies it to a base frame. It holds configuration only; no
// state survives between frames.
type Filter struct {
	opts     Options
	channels models.ChannelSet
	src      models.Geometry
	base     models.Geometry
}

// New validates the configuration against the constant geometry of the
// three frame sources and builds the filter. Every violation produces a
// distinct error before any frame is touched.
func New(opts Options, src, ref, base models.Geometry) (*Filter, error) {
	if opts.Debug {
		opts.Show = false
	}

	if opts.SmoothingWindow < 0 {
		return nil, errors.New("smoothing window must not be negative")
	}

	if src.Width == 0 || src.Height == 0 || ref.Width == 0 || ref.Height == 0 ||
		base.Width == 0 || base.Height == 0 || src.Format.Channels == 0 {
		return nil, errors.New("the inputs must have constant format and dimensions")
	}

	if !src.Format.Equal(ref.Format) || !src.Format.Equal(base.Format) {
		return nil, errors.New("the inputs must have the same format")
	}

	if src.Width != ref.Width || src.Height != ref.Height {
		return nil, errors.New("the source and reference inputs must have the same dimensions")
	}

	if src.Format.RGB || src.Format.BitDepth > 8 {
		return nil, errors.New("the inputs must have 8 bits per sample and must not be RGB")
	}

	channels, err := models.NewChannelSet(opts.Channels, src.Format.Channels)
	if err != nil {
		return nil, err
	}

	if opts.Show && (src.Width < 256 || src.Height < 256 || base.Width < 256 || base.Height < 256) {
		return nil, errors.New("the inputs must be at least 256x256 pixels when show is enabled")
	}

	if opts.Debug && channels.Count() > 1 {
		return nil, errors.New("only one channel can be processed at a time when debug is enabled")
	}

	return &Filter{
		opts:     opts,
		channels: channels,
		src:      src,
		base:     base,
	}, nil
}

// Options returns the configuration the filter was built with, after the
// debug/show exclusion was resolved.
func (f *Filter) Options() Options {
	return f.opts
}

// OutputGeometry reports the shape of frames ProcessFrame will produce.
func (f *Filter) OutputGeometry() models.Geometry {
	if f.opts.Debug {
		return models.Geometry{Width: DebugSize, Height: DebugSize, Format: f.src.Format}
	}
	return f.base
}

// ProcessFrame runs one frame: the curve for each selected channel is built
// from src against ref and applied to base; unselected channels pass
// through from base. A nil base aliases src. In debug mode the result is
// instead the standalone 256x256 curve visualization.
func (f *Filter) ProcessFrame(src, ref, base *models.Frame) (*models.Frame, error) {
	if base == nil {
		base = src
	}

	if err := f.checkFrames(src, ref, base); err != nil {
		return nil, err
	}

	if f.opts.Debug {
		return f.debugFrame(src, ref), nil
	}

	buildOpts := curve.BuildOptions{Raw: f.opts.Raw, SmoothingWindow: f.opts.SmoothingWindow}
	dst := models.NewFrameLike(base)

	for ch := range dst.Planes {
		processed := f.channels.Contains(ch)

		var c curve.Curve
		if processed {
			c = curve.Build(src.Planes[ch], ref.Planes[ch], buildOpts)
			curve.Apply(c, base.Planes[ch], dst.Planes[ch])
		} else {
			if err := dst.Planes[ch].CopyFrom(base.Planes[ch]); err != nil {
				return nil, err
			}
		}

		if f.opts.Show {
			f.fillShowBackground(dst, ch)
			if processed {
				curve.Overlay(c, dst.Planes[0], showColors[ch])
			}
		}
	}

	return dst, nil
}

// debugFrame renders the single selected channel's curve into a fresh
// 256x256 frame: neutral background, bar chart plus trace on the luma
// plane.
func (f *Filter) debugFrame(src, ref *models.Frame) *models.Frame {
	out := models.NewFrame(DebugSize, DebugSize, f.src.Format)

	for ch := range out.Planes {
		if ch == 0 {
			out.Planes[ch].Fill(0)
		} else {
			out.Planes[ch].Fill(128)
		}
	}

	buildOpts := curve.BuildOptions{Raw: f.opts.Raw, SmoothingWindow: f.opts.SmoothingWindow}
	for ch := range src.Planes {
		if f.channels.Contains(ch) {
			c := curve.Build(src.Planes[ch], ref.Planes[ch], buildOpts)
			curve.RenderDebug(c, out.Planes[0])
		}
	}

	return out
}

// fillShowBackground flattens the curve display region of the given channel
// to its neutral level: 16 for luma, 128 for chroma. Chroma regions shrink
// with the format's subsampling.
func (f *Filter) fillShowBackground(dst *models.Frame, ch int) {
	width, height := 256, 256
	value := uint8(16)
	if ch > 0 {
		width >>= f.src.Format.SubSampW
		height >>= f.src.Format.SubSampH
		value = 128
	}
	dst.Planes[ch].FillRegion(width, height, value)
}

// checkFrames verifies that the frames handed in match the geometry the
// filter was configured with.
func (f *Filter) checkFrames(src, ref, base *models.Frame) error {
	for _, frame := range []*models.Frame{src, ref, base} {
		if frame == nil {
			return errors.New("frame is nil")
		}
		if err := frame.Validate(); err != nil {
			return err
		}
		if len(frame.Planes) != f.src.Format.Channels {
			return fmt.Errorf("frame has %d planes, configured for %d",
				len(frame.Planes), f.src.Format.Channels)
		}
	}

	if g := src.Geometry(); g.Width != f.src.Width || g.Height != f.src.Height {
		return fmt.Errorf("source frame is %dx%d, configured for %dx%d",
			g.Width, g.Height, f.src.Width, f.src.Height)
	}
	if g := base.Geometry(); g.Width != f.base.Width || g.Height != f.base.Height {
		return fmt.Errorf("base frame is %dx%d, configured for %dx%d",
			g.Width, g.Height, f.base.Width, f.base.Height)
	}

	for ch := range src.Planes {
		s, r := src.Planes[ch], ref.Planes[ch]
		if s.Width != r.Width || s.Height != r.Height {
			return fmt.Errorf("source and reference plane %d differ in size: %dx%d vs %dx%d",
				ch, s.Width, s.Height, r.Width, r.Height)
		}
	}

	return nil
}
