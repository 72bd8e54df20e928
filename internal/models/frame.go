package models

import "fmt"

// MaxChannels is the number of planar channels a frame can carry: luma plus
// two chroma channels. RGB frames are rejected before they become frames.
const MaxChannels = 3

// Format describes the planar layout shared by a set of frames. SubSampW
// and SubSampH are log2 chroma subsampling factors, zero for 4:4:4.
type Format struct {
	Channels int
	BitDepth int
	RGB      bool
	SubSampW int
	SubSampH int
}

func (f Format) Equal(other Format) bool {
	return f == other
}

// ChannelDims returns the dimensions of the given channel for a frame of
// the given luma dimensions.
func (f Format) ChannelDims(channel, width, height int) (int, int) {
	if channel == 0 {
		return width, height
	}
	return width >> f.SubSampW, height >> f.SubSampH
}

// Geometry is the constant shape of a frame source, checked once at
// configuration time.
type Geometry struct {
	Width  int
	Height int
	Format Format
}

// Frame is up to three planes plus the format they were extracted with.
// Plane dimensions are explicit, so subsampled chroma needs no special
// handling downstream.
type Frame struct {
	Planes []Plane
	Format Format
}

// NewFrame allocates packed planes for the given luma dimensions,
// subsampling chroma per the format.
func NewFrame(width, height int, format Format) *Frame {
	planes := make([]Plane, format.Channels)
	for ch := range planes {
		w, h := format.ChannelDims(ch, width, height)
		planes[ch] = NewPlane(w, h)
	}
	return &Frame{Planes: planes, Format: format}
}

// NewFrameLike allocates a frame with the same plane dimensions and format
// as the reference frame.
func NewFrameLike(ref *Frame) *Frame {
	planes := make([]Plane, len(ref.Planes))
	for ch, p := range ref.Planes {
		planes[ch] = NewPlane(p.Width, p.Height)
	}
	return &Frame{Planes: planes, Format: ref.Format}
}

func (f *Frame) Validate() error {
	if len(f.Planes) == 0 || len(f.Planes) > MaxChannels {
		return fmt.Errorf("frame must have 1 to %d planes, got %d", MaxChannels, len(f.Planes))
	}
	for ch, p := range f.Planes {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("plane %d: %w", ch, err)
		}
	}
	return nil
}

// Geometry reports the frame's constant shape, taken from plane 0.
func (f *Frame) Geometry() Geometry {
	return Geometry{
		Width:  f.Planes[0].Width,
		Height: f.Planes[0].Height,
		Format: f.Format,
	}
}
