package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/sheikhrachel/sparse-gol/utils"
)

const defaultConfigFile = "config.json"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	config, err := loadConfig(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 2
	}

	logger := utils.NewLogger(os.Stderr, config.LogLevel, config.LogFormat).
		With("run_id", uuid.NewString())

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, err := initializeGame(config, logger)
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		return 1
	}

	if config.Watch {
		err = watch(ctx, g, config, logger)
	} else {
		err = simulate(g, config, logger)
	}
	if err != nil {
		logger.Error("run failed", "error", err)
		return 1
	}
	return 0
}

// newFlagSet binds the command line flags to config
func newFlagSet(config *utils.Config, configPath *string) *flag.FlagSet {
	fs := flag.NewFlagSet("sparse-gol", flag.ContinueOnError)
	fs.StringVar(configPath, "config", *configPath, "JSON configuration file")
	fs.StringVar(&config.Engine, "engine", config.Engine, "simulation engine: counting, sorting, quadtree")
	fs.IntVar(&config.Generations, "n", config.Generations, "number of generations to run")
	fs.StringVar(&config.Input, "f", config.Input, "pattern file (.life or .lif, optionally .zst); stdin when empty")
	fs.StringVar(&config.Output, "o", config.Output, "output pattern file; stdout when empty")
	fs.BoolVar(&config.Sorted, "sorted", config.Sorted, "write cells in (x, y) order")
	fs.IntVar(&config.Workers, "workers", config.Workers, "parallel cluster workers for the quadtree engine")
	fs.BoolVar(&config.Stats, "stats", config.Stats, "log performance stats")
	fs.BoolVar(&config.Watch, "watch", config.Watch, "animate in the terminal instead of writing a pattern")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "debug, info, warn or error")
	return fs
}

// loadConfig layers the defaults, the JSON config file and the command line
// flags, later sources winning
func loadConfig(args []string) (utils.Config, error) {
	config := utils.DefaultConfig()
	configPath := defaultConfigFile

	// first pass only locates the config file
	if err := newFlagSet(&config, &configPath).Parse(args); err != nil {
		return config, err
	}

	fileConfig, err := utils.LoadConfig(configPath)
	switch {
	case err == nil:
		config = fileConfig
	case configPath != defaultConfigFile:
		return config, err
	default:
		config = utils.DefaultConfig()
	}

	if err := newFlagSet(&config, &configPath).Parse(args); err != nil {
		return config, err
	}
	return config, config.Validate()
}
