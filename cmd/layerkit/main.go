// Command layerkit slices an STL mesh into FDM G-code: it wires pflag for
// CLI options, loads a layerkit config file, reads the mesh, runs the
// slicing/planning pipeline, and writes the resulting G-code. The teacher
// package carries no cmd/ entrypoint (it's a library); this driver is
// grounded on piwi3910-cnc-calculator's settings-driven build-and-export
// flow as the nearest pack example of an end-to-end CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/latticefab/layerkit/internal/config"
	"github.com/latticefab/layerkit/internal/gcode"
	"github.com/latticefab/layerkit/internal/layer"
	"github.com/latticefab/layerkit/internal/logging"
	"github.com/latticefab/layerkit/internal/mesh"
	"github.com/latticefab/layerkit/internal/schedule"
	"github.com/latticefab/layerkit/internal/stl"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

// Exit codes per spec.md §6.
const (
	exitOK         = 0
	exitUsageOrIO  = 1
	exitResourceEx = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("layerkit", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "", "path to a layerkit config file")
	inputPath := flags.StringP("input", "i", "", "path to the input STL mesh")
	outputPath := flags.StringP("output", "o", "", "path to write G-code (default stdout)")
	verbosity := flags.CountP("verbose", "v", "increase log verbosity")
	jsonLog := flags.Bool("json-log", false, "emit logs as JSON")
	var overrides config.Overrides
	config.BindFlags(flags, &overrides)

	if err := flags.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsageOrIO
	}

	log := logging.New(logging.Options{Verbosity: *verbosity, JSON: *jsonLog})

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "layerkit: --input is required")
		return exitUsageOrIO
	}

	cfg := config.Default()
	if *configPath != "" {
		f, err := os.Open(*configPath)
		if err != nil {
			log.Error().Err(err).Str("path", *configPath).Msg("failed to open config")
			return exitUsageOrIO
		}
		defer f.Close()
		cfg, err = config.Load(f, cfg)
		if err != nil {
			log.Error().Err(err).Msg("failed to load config")
			return exitUsageOrIO
		}
	} else {
		// An empty settings file still resolves feed rates and derived settings.
		cfg, _ = config.Load(strings.NewReader(""), cfg)
	}
	overrides.Apply(cfg)

	meshFile, err := os.Open(*inputPath)
	if err != nil {
		log.Error().Err(err).Str("path", *inputPath).Msg("failed to open input mesh")
		return exitUsageOrIO
	}
	defer meshFile.Close()

	m, err := stl.Read(meshFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse STL mesh")
		return exitUsageOrIO
	}

	out := os.Stdout
	if *outputPath != "" {
		f, err := os.Create(*outputPath)
		if err != nil {
			log.Error().Err(err).Str("path", *outputPath).Msg("failed to create output file")
			return exitUsageOrIO
		}
		defer f.Close()
		out = f
	}

	layers, err := runPipeline(m, cfg, log)
	if err != nil {
		if errors.Is(err, errResourceExhausted) {
			log.Error().Msg("slicing pipeline ran out of memory")
			return exitResourceEx
		}
		log.Error().Err(err).Msg("slicing pipeline failed")
		return exitUsageOrIO
	}

	if err := gcode.Emit(out, layers, cfg, log); err != nil {
		log.Error().Err(err).Msg("failed to write G-code")
		return exitUsageOrIO
	}

	return exitOK
}

// errResourceExhausted is the sentinel runPipeline returns after
// recovering a runtime.Error panic, per spec.md §6's "memory error" exit
// code. Large meshes can trigger makeslice/makemap panics deep in the
// slicing stages; every runtime.Error panic, not only an allocation
// failure, is turned into this error, and any other panic is re-raised.
var errResourceExhausted = errors.New("resource exhausted")

func runPipeline(m *mesh.Mesh, cfg *config.Settings, log zerolog.Logger) (layers []*layer.Layer, err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(runtime.Error); ok {
				err = fmt.Errorf("%w: %v", errResourceExhausted, rerr)
				return
			}
			panic(r)
		}
	}()
	return schedule.Run(context.Background(), m, cfg, log)
}
