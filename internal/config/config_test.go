package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"match-histogram/internal/filter"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
jobs:
  - source: src.png
    reference: ref.png
    output: out.png
`)

	file, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, file.Workers)
	require.Equal(t, "info", file.LogLevel)

	jobs := file.PipelineJobs()
	require.Len(t, jobs, 1)
	require.Equal(t, filter.DefaultSmoothingWindow, jobs[0].Options.SmoothingWindow)
	require.Empty(t, jobs[0].Options.Channels)
	require.Empty(t, jobs[0].Base)

	// Relative paths resolve against the config file's directory.
	dir := filepath.Dir(path)
	require.Equal(t, filepath.Join(dir, "src.png"), jobs[0].Source)
	require.Equal(t, filepath.Join(dir, "out.png"), jobs[0].Output)
}

func TestLoadFullJob(t *testing.T) {
	path := writeConfig(t, `
workers: 4
log_level: debug
jobs:
  - source: /abs/src.png
    reference: /abs/ref.png
    base: /abs/base.png
    output: /abs/out.png
    raw: true
    show: true
    smoothing_window: 0
    channels: [0, 1, 2]
`)

	file, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 4, file.Workers)
	require.Equal(t, "debug", file.LogLevel)

	job := file.PipelineJobs()[0]
	require.Equal(t, "/abs/src.png", job.Source)
	require.Equal(t, "/abs/base.png", job.Base)
	require.True(t, job.Options.Raw)
	require.True(t, job.Options.Show)
	require.Equal(t, 0, job.Options.SmoothingWindow, "explicit zero must not fall back to the default")
	require.Equal(t, []int{0, 1, 2}, job.Options.Channels)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"not yaml", "{{nope", "failed to parse"},
		{"no jobs", "workers: 2\n", "no jobs defined"},
		{"missing reference", "jobs:\n  - source: a.png\n    output: o.png\n", "source and a reference"},
		{"missing output", "jobs:\n  - source: a.png\n    reference: b.png\n", "name an output"},
		{"negative workers", "workers: -1\njobs:\n  - source: a.png\n    reference: b.png\n    output: o.png\n", "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read")
}
