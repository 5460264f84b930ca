package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/sheikhrachel/sparse-gol/engine"
	"github.com/sheikhrachel/sparse-gol/game"
	"github.com/sheikhrachel/sparse-gol/lifefile"
	"github.com/sheikhrachel/sparse-gol/model"
	"github.com/sheikhrachel/sparse-gol/utils"
)

// initializeGame builds the engine and loads the starting pattern
func initializeGame(config utils.Config, logger *slog.Logger) (*game.Game, error) {
	eng, err := engine.NewByName(config.Engine,
		engine.WithLogger(logger),
		engine.WithWorkers(config.Workers),
	)
	if err != nil {
		return nil, err
	}

	cells, err := loadPattern(config)
	if err != nil {
		return nil, err
	}

	g := game.New(cells, eng)
	if config.Watch && cells.Len() == 0 && config.Input == "" {
		g.ResetWithInterestingPatterns(config.Seed, int64(config.Width), int64(config.Height), config.RandomDensity)
	}

	logger.Info("game initialized",
		"engine", eng.Kind().String(),
		"alive", g.Count(),
		"generations", config.Generations,
	)
	return g, nil
}

// loadPattern reads the starting cells from the configured file or stdin.
// Watch mode without an input file starts from a generated pattern.
func loadPattern(config utils.Config) (model.AliveSet, error) {
	if config.Input != "" {
		return lifefile.ReadFile(config.Input)
	}
	if config.Watch {
		return model.NewAliveSet(), nil
	}
	cells, err := lifefile.Parse(os.Stdin)
	if err != nil {
		return nil, errors.Wrap(err, "[loadPattern] stdin")
	}
	return cells, nil
}

// simulate runs the configured number of generations and writes the result
func simulate(g *game.Game, config utils.Config, logger *slog.Logger) error {
	stats := utils.NewStats()

	for range config.Generations {
		start := time.Now()
		g.Tick()
		stats.Update(g.Generation(), g.Count(), time.Since(start))
		logger.Debug("generation", "generation", g.Generation(), "alive", g.Count())
	}

	if config.Stats {
		logStats(logger, stats)
	}

	if config.Output != "" {
		return lifefile.WriteFile(config.Output, g.Cells(), config.Sorted)
	}
	return lifefile.Write(os.Stdout, g.Cells(), config.Sorted)
}

func logStats(logger *slog.Logger, stats *utils.Stats) {
	logger.Info("run finished",
		"generations", stats.TotalGenerations,
		"alive", stats.Population,
		"elapsed", stats.Elapsed().Round(time.Microsecond),
		"gen_per_sec", fmt.Sprintf("%.1f", stats.OverallRate()),
		"avg_population", fmt.Sprintf("%.1f", stats.AveragePopulation),
	)
}

// watch animates the game in the terminal at the configured frame rate until
// the generation limit, extinction, stagnation or Ctrl+C
func watch(ctx context.Context, g *game.Game, config utils.Config, logger *slog.Logger) error {
	var (
		renderer      = &model.TerminalRenderer{}
		stats         = utils.NewStats()
		limiter       = rate.NewLimiter(rate.Every(config.FrameRate), 1)
		stagnantCount = 0
		lastFrameTime = time.Now()
	)

	for {
		if err := limiter.Wait(ctx); err != nil {
			fmt.Println("\n🛑 Shutting down gracefully...")
			logStats(logger, stats)
			return nil
		}

		frameStart := time.Now()
		stats.Update(g.Generation(), g.Count(), frameStart.Sub(lastFrameTime))
		lastFrameTime = frameStart

		stagnant := g.IsStagnant()
		if stagnant {
			stagnantCount++
		} else {
			stagnantCount = 0
		}
		status := gameStatus(g, stagnant)
		g.UpdateHistory()

		renderer.Clear()
		displayGameStatus(g, status, stats)
		renderer.Display(g.Cells(), model.Viewport(g.Cells(), int64(config.Width), int64(config.Height)))

		if reason, done := checkStopConditions(g, stagnantCount, config); done {
			fmt.Printf("\n🏁 Stopped: %s\n", reason)
			logStats(logger, stats)
			return nil
		}

		g.Tick()
	}
}

// gameStatus describes the current state for the status line
func gameStatus(g *game.Game, stagnant bool) string {
	switch {
	case g.Count() == 0:
		return "Extinct"
	case stagnant:
		return fmt.Sprintf("Stagnant (%d)", g.Generation())
	default:
		return "Active"
	}
}

// displayGameStatus shows the current game status
func displayGameStatus(g *game.Game, status string, stats *utils.Stats) {
	boundingInfo := ""
	if b, ok := g.Bounds(); ok {
		boundingInfo = fmt.Sprintf(" | Bounds: x[%d, %d] y[%d, %d]", b.MinX, b.MaxX, b.MinY, b.MaxY)
	}

	fmt.Printf("Gen: %d | Living: %d | Engine: %s | Status: %s%s\n",
		g.Generation(), g.Count(), g.Engine().Kind(), status, boundingInfo)
	fmt.Printf("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.Elapsed().Seconds())
	fmt.Println()
}

// checkStopConditions determines if the animation should end
func checkStopConditions(g *game.Game, stagnantCount int, config utils.Config) (string, bool) {
	if g.Count() == 0 {
		return "extinction", true
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return "stagnation detected", true
	}
	if config.Generations > 0 && g.Generation() >= config.Generations {
		return fmt.Sprintf("reached generation limit (%d)", config.Generations), true
	}
	return "", false
}
