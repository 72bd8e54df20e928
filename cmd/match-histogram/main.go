package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"match-histogram/internal/config"
	"match-histogram/internal/filter"
	"match-histogram/internal/gui"
	"match-histogram/internal/logger"
	"match-histogram/internal/opencv/conversion"
	"match-histogram/internal/pipeline"
)

const (
	AppName    = "match-histogram"
	AppVersion = "1.0.0"
)

type cliFlags struct {
	source          string
	reference       string
	base            string
	output          string
	raw             bool
	show            bool
	debug           bool
	smoothingWindow int
	channels        string
	configPath      string
	workers         int
	preview         bool
	logLevel        string
	logLevelSet     bool
	logFile         string
	version         bool
}

func main() {
	os.Exit(run())
}

func run() int {
	flags := parseFlags()

	if flags.version {
		fmt.Printf("%s %s\n", AppName, AppVersion)
		return 0
	}

	log := buildLogger(flags)

	if flags.configPath != "" {
		return runBatch(flags, log)
	}
	return runSingle(flags, log)
}

func parseFlags() cliFlags {
	var flags cliFlags

	flag.StringVar(&flags.source, "source", "", "image whose histogram is adjusted")
	flag.StringVar(&flags.reference, "reference", "", "image whose histogram is matched")
	flag.StringVar(&flags.base, "base", "", "image the curve is applied to (defaults to source)")
	flag.StringVar(&flags.output, "output", "", "output image path")
	flag.BoolVar(&flags.raw, "raw", false, "use the raw curve without postprocessing")
	flag.BoolVar(&flags.show, "show", false, "overlay the curve on the output")
	flag.BoolVar(&flags.debug, "debug", false, "write the 256x256 curve visualization instead of a processed image")
	flag.IntVar(&flags.smoothingWindow, "smoothing-window", filter.DefaultSmoothingWindow, "curve smoothing half-width, 0 disables")
	flag.StringVar(&flags.channels, "channels", "0", "comma-separated channel indices to process")
	flag.StringVar(&flags.configPath, "config", "", "YAML batch file; overrides single-job flags")
	flag.IntVar(&flags.workers, "workers", 0, "concurrent jobs in batch mode (0 = number of CPUs)")
	flag.BoolVar(&flags.preview, "preview", false, "show the result in a window")
	flag.StringVar(&flags.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flag.StringVar(&flags.logFile, "log-file", "", "write JSON logs to this rotated file instead of the console")
	flag.BoolVar(&flags.version, "version", false, "print version and exit")
	flag.Parse()

	flag.Visit(func(fl *flag.Flag) {
		if fl.Name == "log-level" {
			flags.logLevelSet = true
		}
	})

	return flags
}

func buildLogger(flags cliFlags) logger.Logger {
	return buildLoggerAt(flags, flags.logLevel)
}

func buildLoggerAt(flags cliFlags, levelName string) logger.Logger {
	level := logger.ParseLevel(levelName)
	if flags.logFile != "" {
		return logger.NewFileLogger(flags.logFile, level)
	}
	return logger.NewConsoleLogger(level)
}

// effectiveLogLevel picks the level batch mode runs at: an explicit
// -log-level flag wins over the batch file's log_level.
func effectiveLogLevel(flagSet bool, flagLevel, fileLevel string) string {
	if flagSet || fileLevel == "" {
		return flagLevel
	}
	return fileLevel
}

func runBatch(flags cliFlags, log logger.Logger) int {
	file, err := config.Load(flags.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		return 1
	}

	if level := effectiveLogLevel(flags.logLevelSet, flags.logLevel, file.LogLevel); level != flags.logLevel {
		log = buildLoggerAt(flags, level)
	}

	workers := file.Workers
	if flags.workers > 0 {
		workers = flags.workers
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	coordinator := pipeline.NewCoordinator(log)
	errs := coordinator.RunBatch(file.PipelineJobs(), workers)

	failed := 0
	for _, err := range errs {
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
			failed++
		}
	}

	log.Info("Main", "batch finished", map[string]interface{}{
		"jobs":    len(errs),
		"failed":  failed,
		"workers": workers,
	})

	if failed > 0 {
		return 1
	}
	return 0
}

func runSingle(flags cliFlags, log logger.Logger) int {
	job, err := jobFromFlags(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		return 1
	}

	coordinator := pipeline.NewCoordinator(log)
	result, err := coordinator.Run(job)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		return 1
	}

	if flags.preview {
		if err := showPreview(flags, result, log); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
			return 1
		}
	}

	return 0
}

func jobFromFlags(flags cliFlags) (pipeline.Job, error) {
	if flags.source == "" || flags.reference == "" {
		return pipeline.Job{}, errors.New("a source and a reference image are required (or use -config)")
	}
	if flags.output == "" && !flags.preview {
		return pipeline.Job{}, errors.New("an output path is required unless -preview is set")
	}

	channels, err := parseChannels(flags.channels)
	if err != nil {
		return pipeline.Job{}, err
	}

	opts := filter.Options{
		Raw:             flags.raw,
		Show:            flags.show,
		Debug:           flags.debug,
		SmoothingWindow: flags.smoothingWindow,
		Channels:        channels,
	}

	return pipeline.Job{
		Source:    flags.source,
		Reference: flags.reference,
		Base:      flags.base,
		Output:    flags.output,
		Options:   opts,
	}, nil
}

func parseChannels(value string) ([]int, error) {
	if value == "" {
		return nil, nil
	}

	parts := strings.Split(value, ",")
	channels := make([]int, 0, len(parts))
	for _, part := range parts {
		ch, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid channel list %q", value)
		}
		channels = append(channels, ch)
	}
	return channels, nil
}

func showPreview(flags cliFlags, result *pipeline.Result, log logger.Logger) error {
	preview := gui.NewPreview(AppName)

	loader := pipeline.NewLoader(log)
	src, err := loader.Load(flags.source)
	if err != nil {
		return err
	}
	defer src.Close()

	srcImage, err := conversion.MatToImage(src)
	if err != nil {
		return err
	}
	preview.SetSource(srcImage)

	if result.Job.Options.Debug {
		// Debug output is the curve rendering itself.
		preview.SetCurveView(conversion.PlaneToImage(result.Frame.Planes[0]))
	} else {
		resultMat, err := conversion.FrameToMat(result.Frame)
		if err != nil {
			return err
		}
		defer resultMat.Close()

		resultImage, err := conversion.MatToImage(resultMat)
		if err != nil {
			return err
		}
		preview.SetResult(resultImage)
	}

	preview.Run()
	return nil
}
