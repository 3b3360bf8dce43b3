package main

import (
	"flag"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"liftsim/src/config"
	"liftsim/src/logger"
	"liftsim/src/sim"
	"liftsim/src/traffic"
	"liftsim/src/types"
)

func main() {
	configPath := flag.String("config", "", "Path to a yaml config file")
	strategy := flag.String("strategy", "", "Assignment strategy: greedy, nearest, grouping or random")
	passengers := flag.Int("passengers", 500, "Number of passengers to generate")
	floors := flag.Int("floors", 20, "Number of floors above the lobby")
	window := flag.Int("window", 1800, "Arrival window in ticks for generated traffic")
	seed := flag.Int64("seed", 0, "Random seed override (0 keeps the config value)")
	iterations := flag.Int("iterations", 0, "Iteration cap override (0 keeps the config value)")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := logger.GetConfigured(level)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Could not load config")
		}
		cfg = loaded
	}
	if *strategy != "" {
		cfg.Strategy = *strategy
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *iterations != 0 {
		cfg.Iterations = *iterations
	}

	simulation, err := sim.New(0, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not set up simulation")
	}

	trafficRNG := rand.New(rand.NewSource(cfg.Seed ^ 0x539f0a17))
	feed, err := traffic.Generate(*passengers, *floors, types.Tick(*window), trafficRNG)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not generate traffic")
	}
	if err := simulation.SetTraffic(feed); err != nil {
		log.Fatal().Err(err).Msg("Could not set traffic")
	}

	log.Info().
		Str("strategy", cfg.Strategy).
		Int("lifts", cfg.Lifts).
		Int("passengers", *passengers).
		Msg("Starting simulation")

	summary, err := simulation.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("Simulation failed")
	}

	fmt.Println(summary.Render())
}
