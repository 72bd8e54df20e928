package models

import "testing"

func TestPlaneRowAddressing(t *testing.T) {
	// Strided plane: 4 wide, stride 6, padding poisoned.
	pix := make([]uint8, 3*6)
	for i := range pix {
		pix[i] = 0xAA
	}
	p := Plane{Pix: pix, Width: 4, Height: 3, Stride: 6}

	if err := p.Validate(); err != nil {
		t.Fatalf("valid plane rejected: %v", err)
	}

	for y := 0; y < 3; y++ {
		row := p.Row(y)
		if len(row) != 4 {
			t.Fatalf("row %d has %d samples, want 4", y, len(row))
		}
		for x := range row {
			row[x] = uint8(y*4 + x)
		}
	}

	// Padding bytes between rows stay untouched.
	if pix[4] != 0xAA || pix[5] != 0xAA {
		t.Errorf("row write leaked into stride padding: % x", pix[:6])
	}
	if pix[6] != 4 {
		t.Errorf("row 1 starts at %d, want 4", pix[6])
	}
}

func TestPlaneValidate(t *testing.T) {
	tests := []struct {
		name  string
		plane Plane
	}{
		{"zero width", Plane{Pix: make([]uint8, 10), Width: 0, Height: 1, Stride: 1}},
		{"stride below width", Plane{Pix: make([]uint8, 10), Width: 4, Height: 2, Stride: 3}},
		{"short buffer", Plane{Pix: make([]uint8, 5), Width: 4, Height: 2, Stride: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.plane.Validate(); err == nil {
				t.Error("invalid plane accepted")
			}
		})
	}
}

func TestPlaneFillRegion(t *testing.T) {
	p := NewPlane(8, 8)
	p.Fill(7)
	p.FillRegion(4, 2, 200)

	if p.Row(0)[3] != 200 || p.Row(1)[0] != 200 {
		t.Error("region not filled")
	}
	if p.Row(0)[4] != 7 || p.Row(2)[0] != 7 {
		t.Error("fill leaked outside the region")
	}

	// Oversized regions clip to the plane.
	p.FillRegion(100, 100, 1)
	if p.Row(7)[7] != 1 {
		t.Error("clipped fill missed the last sample")
	}
}

func TestPlaneCompact(t *testing.T) {
	pix := make([]uint8, 2*5)
	p := Plane{Pix: pix, Width: 3, Height: 2, Stride: 5}
	copy(p.Row(0), []uint8{1, 2, 3})
	copy(p.Row(1), []uint8{4, 5, 6})

	packed := p.Compact()
	want := []uint8{1, 2, 3, 4, 5, 6}
	for i, w := range want {
		if packed[i] != w {
			t.Fatalf("packed[%d] = %d, want %d", i, packed[i], w)
		}
	}

	// Packed planes reuse their backing buffer.
	q := NewPlane(3, 2)
	if &q.Compact()[0] != &q.Pix[0] {
		t.Error("compact copied an already-packed plane")
	}
}

func TestFrameGeometryAndSubsampling(t *testing.T) {
	format := Format{Channels: 3, BitDepth: 8, SubSampW: 1, SubSampH: 1}
	frame := NewFrame(64, 32, format)

	if frame.Planes[0].Width != 64 || frame.Planes[0].Height != 32 {
		t.Errorf("luma plane %dx%d, want 64x32", frame.Planes[0].Width, frame.Planes[0].Height)
	}
	for ch := 1; ch < 3; ch++ {
		if frame.Planes[ch].Width != 32 || frame.Planes[ch].Height != 16 {
			t.Errorf("chroma plane %d is %dx%d, want 32x16",
				ch, frame.Planes[ch].Width, frame.Planes[ch].Height)
		}
	}

	geom := frame.Geometry()
	if geom.Width != 64 || geom.Height != 32 || geom.Format != format {
		t.Errorf("unexpected geometry %+v", geom)
	}
}
