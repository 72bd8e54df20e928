package pipeline

import (
	"fmt"
	"time"

	"gocv.io/x/gocv"

	"match-histogram/internal/logger"
	"match-histogram/internal/models"
	"match-histogram/internal/opencv/conversion"
)

// Saver encodes result frames back to image files. The output format is
// chosen by OpenCV from the path's extension.
type Saver struct {
	log logger.Logger
}

func NewSaver(log logger.Logger) *Saver {
	return &Saver{log: log}
}

func (s *Saver) Save(path string, frame *models.Frame) error {
	startTime := time.Now()

	safeMat, err := conversion.FrameToMat(frame)
	if err != nil {
		return fmt.Errorf("failed to pack result frame: %w", err)
	}
	defer safeMat.Close()

	mat, err := safeMat.Get()
	if err != nil {
		return err
	}

	if ok := gocv.IMWrite(path, mat); !ok {
		return fmt.Errorf("failed to write image to %s", path)
	}

	s.log.Info("Saver", "saved image", map[string]interface{}{
		"path":     path,
		"width":    frame.Planes[0].Width,
		"height":   frame.Planes[0].Height,
		"duration": time.Since(startTime).String(),
	})

	return nil
}
