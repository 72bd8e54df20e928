package pipeline

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"

	"gocv.io/x/gocv"
	_ "golang.org/x/image/webp"

	"match-histogram/internal/logger"
	"match-histogram/internal/opencv/safe"
)

// Loader reads image files into Mats. Decoding goes through OpenCV so any
// format it knows is accepted; the stdlib registry (plus webp) is only used
// to name the format for logging.
type Loader struct {
	log logger.Logger
}

func NewLoader(log logger.Logger) *Loader {
	return &Loader{log: log}
}

func (l *Loader) Load(path string) (*safe.Mat, error) {
	startTime := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	format := "unknown"
	if _, name, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		format = name
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadUnchanged)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	safeMat, err := safe.FromMat(mat)
	if err != nil {
		mat.Close()
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	l.log.Info("Loader", "loaded image", map[string]interface{}{
		"path":     path,
		"format":   format,
		"width":    safeMat.Cols(),
		"height":   safeMat.Rows(),
		"channels": safeMat.Channels(),
		"duration": time.Since(startTime).String(),
	})

	return safeMat, nil
}
