// Package main runs expression sweeps: every configured strain is evaluated
// across an environment grid and the results are written as CSV.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"cultigen/config"
	"cultigen/environment"
	"cultigen/expression"
	"cultigen/genetics"
	"cultigen/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	catalogPath := flag.String("catalog", "", "Catalog JSON path (overrides config)")
	outputDir := flag.String("output-dir", "", "Output directory (overrides config)")
	seed := flag.Int64("seed", 0, "Expression jitter seed (0 = use config)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *catalogPath != "" {
		cfg.Catalog.Path = *catalogPath
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if *seed != 0 {
		cfg.Engine.Seed = *seed
	}

	catalog, err := genetics.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		slog.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}

	strains := cfg.Catalog.Strains
	if len(strains) == 0 {
		strains = catalog.StrainIDs()
	}

	out, err := telemetry.NewOutputManager(cfg.Output.Dir)
	if err != nil {
		slog.Error("failed to initialize output", "error", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	engine := expression.New(catalog, expression.Config{
		Epistasis:  cfg.Engine.Epistasis,
		Pleiotropy: cfg.Engine.Pleiotropy,
		Seed:       cfg.Engine.Seed,
	})

	grid := buildGrid(cfg.Sweep)
	slog.Info("starting sweep",
		"strains", len(strains),
		"environments", len(grid),
		"evaluations", len(strains)*len(grid))

	summarizer := telemetry.NewSummarizer()
	for _, strainID := range strains {
		g, err := catalog.Genotype(strainID, fmt.Sprintf("%s-sweep", strainID))
		if err != nil {
			slog.Error("skipping strain", "strain", strainID, "error", err)
			continue
		}

		for _, env := range grid {
			res := engine.Compute(g, env)
			rec := telemetry.NewRecord(strainID, env, res)
			summarizer.Add(rec)
			if err := out.WriteResult(rec); err != nil {
				slog.Error("failed to write result", "error", err)
				os.Exit(1)
			}
		}
	}

	summaries := summarizer.Summaries()
	if err := out.WriteSummaries(summaries); err != nil {
		slog.Error("failed to write summaries", "error", err)
		os.Exit(1)
	}

	for _, s := range summaries {
		slog.Info("strain summary",
			"strain", s.StrainID,
			"evaluations", s.Evaluations,
			"fitness_mean", fmt.Sprintf("%.3f", s.FitnessMean),
			"best_fitness", fmt.Sprintf("%.3f", s.BestFitness),
			"best_temp", s.BestTemperature,
			"best_light", s.BestLight,
			"best_co2", s.BestCO2)
	}
	if dir := out.Dir(); dir != "" {
		slog.Info("sweep complete", "output", dir)
	}
}

// buildGrid expands the sweep ranges into the full environment grid.
func buildGrid(sweep config.SweepConfig) []environment.Snapshot {
	temps := sweep.Temperature.Values()
	lights := sweep.Light.Values()
	humidities := sweep.Humidity.Values()
	co2s := sweep.CO2.Values()

	grid := make([]environment.Snapshot, 0, len(temps)*len(lights)*len(humidities)*len(co2s))
	for _, t := range temps {
		for _, l := range lights {
			for _, h := range humidities {
				for _, c := range co2s {
					grid = append(grid, environment.Snapshot{
						Temperature: t,
						Light:       l,
						Humidity:    h,
						CO2:         c,
					})
				}
			}
		}
	}
	return grid
}
