// Command riskcalc computes a risk report for a single input file without
// running the HTTP server.
//
// Usage:
//
//	riskcalc -input cycle.json [-preset moderate] [-format report] [-output out.txt]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/aas-risk-engine/internal/coeff"
	"github.com/aas-risk-engine/internal/domain"
	"github.com/aas-risk-engine/internal/engine"
	"github.com/aas-risk-engine/internal/export"
	"github.com/aas-risk-engine/internal/plugin"
	"github.com/aas-risk-engine/internal/scenario"
)

func main() {
	var (
		inputPath  = flag.String("input", "", "input JSON file with regimen and labs, or - for stdin")
		presetName = flag.String("preset", string(domain.PresetModerate), "coefficient preset: conservative, moderate or aggressive")
		format     = flag.String("format", "report", "output format: json, csv or report")
		outputPath = flag.String("output", "", "output file (default stdout)")
		presetsDir = flag.String("presets", "", "coefficient preset directory (default built-in values)")
		plugins    = flag.String("plugins", "", "comma-separated contributor names to enable")
		name       = flag.String("name", "cli scenario", "scenario name used in the output")
	)
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "riskcalc: -input is required")
		flag.Usage()
		os.Exit(2)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	raw, err := readInput(*inputPath)
	if err != nil {
		fatal(err)
	}

	coeffs, err := coeff.NewStore(*presetsDir, 0, logger)
	if err != nil {
		fatal(err)
	}

	var enabled []string
	if *plugins != "" {
		enabled = strings.Split(*plugins, ",")
	}
	registry := plugin.NewRegistry(enabled, logger)

	eng := engine.NewEngine(coeffs, registry, logger)
	store := scenario.NewStore(eng, nil, logger)

	sc, err := store.Create(context.Background(), *name, raw, domain.PresetName(*presetName))
	if err != nil {
		fatal(err)
	}

	f, err := export.ParseFormat(*format)
	if err != nil {
		fatal(err)
	}
	file, err := export.NewExporter(store).Export(sc.ID, f)
	if err != nil {
		fatal(err)
	}

	out := os.Stdout
	if *outputPath != "" {
		out, err = os.Create(*outputPath)
		if err != nil {
			fatal(err)
		}
		defer out.Close()
	}
	if _, err := out.Write(file.Content); err != nil {
		fatal(err)
	}
}

func readInput(path string) (domain.RawInput, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.RawInput{}, fmt.Errorf("reading input: %w", err)
	}

	var raw domain.RawInput
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.RawInput{}, fmt.Errorf("parsing input: %w", err)
	}
	return raw, nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "riskcalc: %v\n", err)
	os.Exit(1)
}
