package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/plus3/entwine/ecs"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML scenario file.")
	durationFlag := flag.Duration("duration", 0, "Override the scenario run duration.")
	entitiesFlag := flag.Int("entities", 0, "Override the initial number of entities.")
	profileFlag := flag.String("profile", "", "Enable profiling: cpu or mem.")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.String("path", *configPath), zap.Error(err))
	}
	if *durationFlag > 0 {
		cfg.Duration = duration{*durationFlag}
	}
	if *entitiesFlag > 0 {
		cfg.Entities = *entitiesFlag
	}
	if *profileFlag != "" {
		cfg.Profile = *profileFlag
	}

	switch cfg.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	case "":
	default:
		logger.Fatal("unknown profile mode", zap.String("profile", cfg.Profile))
	}

	logger.Info("starting engine stress test",
		zap.Duration("duration", cfg.Duration.Duration),
		zap.Int("entities", cfg.Entities),
		zap.Int("churn_per_tick", cfg.ChurnPerTick),
		zap.Int64("seed", cfg.Seed))

	rng := rand.New(rand.NewSource(cfg.Seed))

	// 1. Build the engine and systems.
	engine := ecs.NewEngineWith(cfg.Entities, 0.8)
	engine.AddSystem(&movementSystem{})
	decay := &decaySystem{}
	decay.SystemPriority = 10
	engine.AddSystem(decay)
	churn := &churnSystem{rng: rng, perTick: cfg.ChurnPerTick}
	churn.SystemPriority = 20
	engine.AddSystem(churn)

	// 2. Populate the initial entity set.
	logger.Info("populating engine", zap.Int("entities", cfg.Entities))
	for i := 0; i < cfg.Entities; i++ {
		if err := spawnRandomEntity(engine, rng); err != nil {
			logger.Fatal("failed to spawn entity", zap.Error(err))
		}
	}
	logger.Info("population complete", zap.Int("entities", engine.Entities().Len()))

	// 3. Run the simulation loop.
	report := &Report{
		Config: cfg,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration.Duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastTickTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastTickTime)
			lastTickTime = time.Now()

			updateStart := time.Now()
			if err := engine.Update(deltaTime.Seconds()); err != nil {
				logger.Fatal("update failed", zap.Error(err))
			}
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	stats := engine.Stats()
	report.FinalEntities = stats.EntityCount
	report.Families = stats.FamilyCount
	report.Systems = stats.Systems

	logger.Info("simulation finished",
		zap.Int64("updates", totalUpdates),
		zap.Int("final_entities", stats.EntityCount))

	// 4. Generate the report to the console.
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("failed to generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}
