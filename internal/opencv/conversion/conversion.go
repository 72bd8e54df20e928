// Package conversion moves pixel data between OpenCV Mats and the planar
// frames the curve engine works on. Color images are carried as planar
// YCrCb so the filter sees luma and chroma channels, never RGB triples.
package conversion

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"match-histogram/internal/models"
	"match-histogram/internal/opencv/safe"
)

// GeometryOf reports the constant shape a Mat's frames will have after
// extraction. Four-channel input loses its alpha, so it counts as three.
func GeometryOf(m *safe.Mat) models.Geometry {
	channels := m.Channels()
	if channels > models.MaxChannels {
		channels = models.MaxChannels
	}

	return models.Geometry{
		Width:  m.Cols(),
		Height: m.Rows(),
		Format: models.Format{
			Channels: channels,
			BitDepth: bitDepth(m.Type()),
		},
	}
}

// MatToFrame extracts a planar frame from a decoded Mat. Single-channel
// input becomes a one-plane frame; BGR and BGRA input is converted to
// YCrCb and split into three full-resolution planes.
func MatToFrame(m *safe.Mat) (*models.Frame, error) {
	mat, err := m.Get()
	if err != nil {
		return nil, err
	}

	if bitDepth(mat.Type()) != 8 {
		return nil, fmt.Errorf("unsupported sample depth: %d bits", bitDepth(mat.Type()))
	}

	switch mat.Channels() {
	case 1:
		return &models.Frame{
			Planes: []models.Plane{matToPlane(mat)},
			Format: models.Format{Channels: 1, BitDepth: 8},
		}, nil

	case 3, 4:
		bgr := mat
		if mat.Channels() == 4 {
			converted := gocv.NewMat()
			defer converted.Close()
			gocv.CvtColor(mat, &converted, gocv.ColorBGRAToBGR)
			bgr = converted
		}

		ycc := gocv.NewMat()
		defer ycc.Close()
		gocv.CvtColor(bgr, &ycc, gocv.ColorBGRToYCrCb)

		channels := gocv.Split(ycc)
		planes := make([]models.Plane, len(channels))
		for i, ch := range channels {
			planes[i] = matToPlane(ch)
			ch.Close()
		}

		return &models.Frame{
			Planes: planes,
			Format: models.Format{Channels: 3, BitDepth: 8},
		}, nil

	default:
		return nil, fmt.Errorf("unsupported channel count: %d", mat.Channels())
	}
}

// FrameToMat packs a frame back into a Mat: gray for one plane, BGR via
// YCrCb merge for three.
func FrameToMat(frame *models.Frame) (*safe.Mat, error) {
	if err := frame.Validate(); err != nil {
		return nil, err
	}

	switch len(frame.Planes) {
	case 1:
		mat, err := planeToMat(frame.Planes[0])
		if err != nil {
			return nil, err
		}
		return safe.FromMat(mat)

	case 3:
		channels := make([]gocv.Mat, 3)
		for i, p := range frame.Planes {
			mat, err := planeToMat(p)
			if err != nil {
				for j := 0; j < i; j++ {
					channels[j].Close()
				}
				return nil, err
			}
			channels[i] = mat
		}

		ycc := gocv.NewMat()
		gocv.Merge(channels, &ycc)
		for _, ch := range channels {
			ch.Close()
		}

		bgr := gocv.NewMat()
		gocv.CvtColor(ycc, &bgr, gocv.ColorYCrCbToBGR)
		ycc.Close()

		return safe.FromMat(bgr)

	default:
		return nil, fmt.Errorf("cannot pack frame with %d planes", len(frame.Planes))
	}
}

// MatToImage converts a Mat to a stdlib image for display.
func MatToImage(m *safe.Mat) (image.Image, error) {
	mat, err := m.Get()
	if err != nil {
		return nil, err
	}
	return mat.ToImage()
}

// PlaneToImage copies a single plane into a grayscale image, used for
// displaying debug renderings.
func PlaneToImage(p models.Plane) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, p.Width, p.Height))
	for y := 0; y < p.Height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+p.Width], p.Row(y))
	}
	return img
}

func matToPlane(mat gocv.Mat) models.Plane {
	return models.Plane{
		Pix:    mat.ToBytes(),
		Width:  mat.Cols(),
		Height: mat.Rows(),
		Stride: mat.Cols(),
	}
}

func planeToMat(p models.Plane) (gocv.Mat, error) {
	return gocv.NewMatFromBytes(p.Height, p.Width, gocv.MatTypeCV8UC1, p.Compact())
}

func bitDepth(matType gocv.MatType) int {
	switch matType {
	case gocv.MatTypeCV8UC1, gocv.MatTypeCV8UC3, gocv.MatTypeCV8UC4:
		return 8
	case gocv.MatTypeCV16UC1, gocv.MatTypeCV16UC3, gocv.MatTypeCV16UC4:
		return 16
	default:
		return 32
	}
}
