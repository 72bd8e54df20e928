package pipeline

import (
	"time"

	"match-histogram/internal/filter"
	"match-histogram/internal/logger"
	"match-histogram/internal/models"
	"match-histogram/internal/opencv/conversion"
	"match-histogram/internal/opencv/safe"
)

// Processor builds a filter for one job's inputs and runs it. All
// configuration errors surface here, before any plane is extracted.
type Processor struct {
	log logger.Logger
}

func NewProcessor(log logger.Logger) *Processor {
	return &Processor{log: log}
}

// Process derives curves from src against ref and applies them to base.
// A nil base means the curves are applied back onto src itself.
func (p *Processor) Process(opts filter.Options, src, ref, base *safe.Mat) (*models.Frame, error) {
	startTime := time.Now()

	baseGeometry := conversion.GeometryOf(src)
	if base != nil {
		baseGeometry = conversion.GeometryOf(base)
	}

	f, err := filter.New(opts, conversion.GeometryOf(src), conversion.GeometryOf(ref), baseGeometry)
	if err != nil {
		return nil, err
	}

	srcFrame, err := conversion.MatToFrame(src)
	if err != nil {
		return nil, err
	}

	refFrame, err := conversion.MatToFrame(ref)
	if err != nil {
		return nil, err
	}

	var baseFrame *models.Frame
	if base != nil {
		baseFrame, err = conversion.MatToFrame(base)
		if err != nil {
			return nil, err
		}
	}

	result, err := f.ProcessFrame(srcFrame, refFrame, baseFrame)
	if err != nil {
		return nil, err
	}

	p.log.Info("Processor", "frame processed", map[string]interface{}{
		"channels":  len(result.Planes),
		"raw":       opts.Raw,
		"show":      opts.Show,
		"debug":     opts.Debug,
		"smoothing": opts.SmoothingWindow,
		"duration":  time.Since(startTime).String(),
	})

	return result, nil
}
