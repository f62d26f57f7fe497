// Command perft runs the move-generator correctness oracle and throughput
// benchmark: against an EPD suite when one is configured, otherwise depths 0
// through 6 on the standard starting position.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/klauspost/cpuid/v2"
	"github.com/qbbchego/quadchego"
	"github.com/qbbchego/quadchego/format"
	"github.com/qbbchego/quadchego/perft"
	"go.uber.org/zap"
)

// config mirrors the CLI flags: flag values explicitly passed on the command
// line override whatever a --config TOML file sets.
type config struct {
	EPDPath  string `toml:"epd_path"`
	MaxDepth int    `toml:"max_depth"`
	Workers  int    `toml:"workers"`
}

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "TOML config file (keys: epd_path, max_depth, workers)")
	epdPath := flag.String("epd", "", "EPD perft-suite file; if set, runs suite mode")
	maxDepth := flag.Int("depth", 6, "perft depth to run on the starting position when no EPD suite is given")
	verbose := flag.Bool("verbose", false, "print the root position diagram before running")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "perft: build logger:", err)
		return 1
	}
	defer logger.Sync()

	cfg := config{MaxDepth: *maxDepth}
	if *configPath != "" {
		if _, err := toml.DecodeFile(*configPath, &cfg); err != nil {
			logger.Error("failed to read config", zap.String("path", *configPath), zap.Error(err))
			return 1
		}
	}
	if isFlagPassed("epd") {
		cfg.EPDPath = *epdPath
	}
	if isFlagPassed("depth") {
		cfg.MaxDepth = *maxDepth
	}

	quadchego.InitAttackTables()
	quadchego.InitZobristKeys()

	logger.Info("cpu", zap.String("brand", cpuid.CPU.BrandName), zap.Int("logical_cores", cpuid.CPU.LogicalCores))

	if cfg.EPDPath != "" {
		return runSuite(logger, cfg.EPDPath)
	}
	return runStartPos(logger, cfg.MaxDepth, *verbose)
}

func isFlagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func runSuite(logger *zap.Logger, path string) int {
	f, err := os.Open(path)
	if err != nil {
		logger.Error("failed to open EPD suite", zap.String("path", path), zap.Error(err))
		return 1
	}
	defer f.Close()

	cases, err := perft.ParseEPD(f)
	if err != nil {
		logger.Error("failed to parse EPD suite", zap.Error(err))
		return 1
	}

	start := time.Now()
	var totalNodes int64
	results, ok := perft.RunSuite(cases)
	for _, r := range results {
		totalNodes += r.Actual
		if r.Pass {
			fmt.Printf("OK   D%d %-70s nodes=%d\n", r.Assertion.Depth, r.Case.FEN, r.Actual)
		} else {
			fmt.Printf("FAIL D%d %-70s expected=%d actual=%d\n",
				r.Assertion.Depth, r.Case.FEN, r.Assertion.Nodes, r.Actual)
		}
	}

	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()
	logger.Info("suite complete",
		zap.Int("cases", len(cases)), zap.Bool("pass", ok),
		zap.Int64("nodes", totalNodes), zap.Duration("elapsed", elapsed),
		zap.Float64("nodes_per_sec", nps))

	if !ok {
		return 1
	}
	return 0
}

func runStartPos(logger *zap.Logger, maxDepth int, verbose bool) int {
	pos, err := quadchego.ParseFEN(quadchego.StartFEN)
	if err != nil {
		logger.Error("failed to parse starting FEN", zap.Error(err))
		return 1
	}

	if verbose {
		fmt.Println(format.Position(pos))
	}

	for depth := 0; depth <= maxDepth; depth++ {
		start := time.Now()
		nodes := perft.Nodes(pos, depth)
		elapsed := time.Since(start)

		nps := float64(0)
		if elapsed.Seconds() > 0 {
			nps = float64(nodes) / elapsed.Seconds()
		}
		logger.Info("perft",
			zap.Int("depth", depth), zap.Int64("nodes", nodes),
			zap.Duration("elapsed", elapsed), zap.Float64("nodes_per_sec", nps))
	}

	return 0
}
