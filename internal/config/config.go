// Package config loads batch job descriptions from YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"match-histogram/internal/filter"
	"match-histogram/internal/pipeline"
)

// JobSpec is one job as written in a batch file. SmoothingWindow is a
// pointer so an absent key gets the default while an explicit 0 disables
// smoothing.
type JobSpec struct {
	Source          string `yaml:"source"`
	Reference       string `yaml:"reference"`
	Base            string `yaml:"base"`
	Output          string `yaml:"output"`
	Raw             bool   `yaml:"raw"`
	Show            bool   `yaml:"show"`
	Debug           bool   `yaml:"debug"`
	SmoothingWindow *int   `yaml:"smoothing_window"`
	Channels        []int  `yaml:"channels"`
}

// File is a parsed batch file.
type File struct {
	Workers  int       `yaml:"workers"`
	LogLevel string    `yaml:"log_level"`
	Jobs     []JobSpec `yaml:"jobs"`

	dir string
}

// Load reads and validates a batch file. Relative paths inside the file
// resolve against the file's own directory.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	file.dir = filepath.Dir(path)

	if file.Workers < 0 {
		return nil, fmt.Errorf("config %s: workers must not be negative", path)
	}
	if file.Workers == 0 {
		file.Workers = 1
	}
	if file.LogLevel == "" {
		file.LogLevel = "info"
	}
	if len(file.Jobs) == 0 {
		return nil, fmt.Errorf("config %s: no jobs defined", path)
	}

	for i, job := range file.Jobs {
		if job.Source == "" || job.Reference == "" {
			return nil, fmt.Errorf("config %s: job %d must name a source and a reference", path, i)
		}
		if job.Output == "" {
			return nil, fmt.Errorf("config %s: job %d must name an output", path, i)
		}
	}

	return &file, nil
}

// PipelineJobs converts the specs into runnable jobs with defaults applied
// and paths resolved.
func (f *File) PipelineJobs() []pipeline.Job {
	jobs := make([]pipeline.Job, len(f.Jobs))

	for i, spec := range f.Jobs {
		opts := filter.DefaultOptions()
		opts.Raw = spec.Raw
		opts.Show = spec.Show
		opts.Debug = spec.Debug
		opts.Channels = spec.Channels
		if spec.SmoothingWindow != nil {
			opts.SmoothingWindow = *spec.SmoothingWindow
		}

		jobs[i] = pipeline.Job{
			Source:    f.resolve(spec.Source),
			Reference: f.resolve(spec.Reference),
			Base:      f.resolve(spec.Base),
			Output:    f.resolve(spec.Output),
			Options:   opts,
		}
	}

	return jobs
}

func (f *File) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(f.dir, path)
}
