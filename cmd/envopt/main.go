// Package main searches for the environment that maximizes a strain's
// fitness using CMA-ES over the controllable grow-room dimensions.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/gonum/optimize"
	"gopkg.in/yaml.v3"

	"cultigen/config"
	"cultigen/expression"
	"cultigen/genetics"
)

// bestEnvironment is the YAML shape of the optimization result.
type bestEnvironment struct {
	Strain      string  `yaml:"strain"`
	Fitness     float64 `yaml:"fitness"`
	Temperature float64 `yaml:"temperature_c"`
	Light       float64 `yaml:"light_ppfd"`
	Humidity    float64 `yaml:"humidity_pct"`
	CO2         float64 `yaml:"co2_ppm"`
	Height      float64 `yaml:"height_m"`
	THC         float64 `yaml:"thc_pct"`
	CBD         float64 `yaml:"cbd_pct"`
	Yield       float64 `yaml:"yield_g"`
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	strainID := flag.String("strain", "", "Strain to optimize for (empty = use config)")
	maxEvals := flag.Int("max-evals", 0, "Maximum number of evaluations (0 = use config)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *strainID == "" {
		*strainID = cfg.Optimize.Strain
	}
	if *maxEvals == 0 {
		*maxEvals = cfg.Optimize.MaxEvaluations
	}

	catalog, err := genetics.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}
	genotype, err := catalog.Genotype(*strainID, *strainID+"-opt")
	if err != nil {
		log.Fatalf("failed to assemble genotype: %v", err)
	}

	engine := expression.New(catalog, expression.Config{
		Epistasis:  cfg.Engine.Epistasis,
		Pleiotropy: cfg.Engine.Pleiotropy,
		Seed:       cfg.Engine.Seed,
	})

	params := NewParamVector()

	// Open log file
	logPath := filepath.Join(*outputDir, "envopt_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()

	header := []string{"eval", "fitness"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	logWriter.Write(header)

	evalCount := 0
	bestFitness := 0.0
	var bestRaw []float64

	// Minimize negated fitness and log each evaluation.
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			res := engine.Compute(genotype, params.Snapshot(raw))
			evalCount++

			if res.Fitness > bestFitness {
				bestFitness = res.Fitness
				bestRaw = append([]float64(nil), raw...)
			}

			row := []string{strconv.Itoa(evalCount), fmt.Sprintf("%.6f", res.Fitness)}
			for _, v := range raw {
				row = append(row, fmt.Sprintf("%.2f", v))
			}
			logWriter.Write(row)

			return -res.Fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential evaluation
	}
	method := &optimize.CmaEsChol{
		InitStepSize: cfg.Optimize.InitialSpread,
		Population:   4 + 3*params.Dim(),
	}

	fmt.Printf("Optimizing environment for %s: %d dimensions, max_evals=%d\n",
		*strainID, params.Dim(), *maxEvals)

	result, err := optimize.Minimize(problem, params.InitNormalized(), settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if bestRaw == nil {
		bestRaw = params.Denormalize(result.X)
	}

	// Re-evaluate the best point for the full phenotype.
	bestEnv := params.Snapshot(bestRaw)
	bestRes := engine.Compute(genotype, bestEnv)

	fmt.Printf("\nOptimization complete after %d evaluations\n", evalCount)
	fmt.Printf("Best fitness: %.4f\n", bestRes.Fitness)
	fmt.Printf("  temp=%.1f°C light=%.0f PPFD humidity=%.0f%% co2=%.0f ppm\n",
		bestEnv.Temperature, bestEnv.Light, bestEnv.Humidity, bestEnv.CO2)
	fmt.Printf("  height=%.2fm thc=%.1f%% cbd=%.1f%% yield=%.0fg\n",
		bestRes.Height, bestRes.THC, bestRes.CBD, bestRes.Yield)

	best := bestEnvironment{
		Strain:      *strainID,
		Fitness:     bestRes.Fitness,
		Temperature: bestEnv.Temperature,
		Light:       bestEnv.Light,
		Humidity:    bestEnv.Humidity,
		CO2:         bestEnv.CO2,
		Height:      bestRes.Height,
		THC:         bestRes.THC,
		CBD:         bestRes.CBD,
		Yield:       bestRes.Yield,
	}
	data, err := yaml.Marshal(best)
	if err != nil {
		log.Fatalf("failed to marshal best environment: %v", err)
	}
	outPath := filepath.Join(*outputDir, "best_environment.yaml")
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		log.Fatalf("failed to write best environment: %v", err)
	}
	fmt.Printf("\nBest environment saved to: %s\n", outPath)
}
