package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"autoresolve-sim/internal/admin"
	"autoresolve-sim/internal/battle"
	"autoresolve-sim/internal/config"
	"autoresolve-sim/internal/logging"
	"autoresolve-sim/internal/scenario"
	"autoresolve-sim/internal/sim"
	"autoresolve-sim/internal/telemetry"
)

var (
	simConfigPath  string
	simSchemaPath  string
	simScenarioCue string
	simScenario    string
	simSeed        int64
	simMaxRounds   int
	simPrintOnly   bool
	simLogFile     string
	simAdminAddr   string
	simTUI         bool
	simQuiet       bool
	simLogLevel    string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Resolve one battle",
	Long:  "simulate loads a battle config and scenario, plays the battle to completion and writes the report.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log := logging.New(cfg.LogLevel)
		if simTUI {
			// the TUI owns the terminal
			log = logging.Discard()
		}

		if simScenarioCue != "" && !isBuiltin(cfg.Scenario) {
			if err := config.ValidateWithCue(cfg.Scenario, simScenarioCue); err != nil {
				return fmt.Errorf("scenario %s: %w", cfg.Scenario, err)
			}
		}
		sc, err := scenario.Resolve(cfg.Scenario)
		if err != nil {
			return err
		}
		tuning, err := cfg.Tuning()
		if err != nil {
			return err
		}

		state := battle.New(battle.WithSeed(cfg.Seed), battle.WithLogger(log))
		if err := sc.Build(state, cfg.Policy.CrewDeathThreshold); err != nil {
			return err
		}

		writer, cleanup, err := newWriters(writerOptions{
			Title:     fmt.Sprintf("%s (%s)", sc.Name, cfg.BattleID),
			PrintOnly: simPrintOnly,
			TUI:       simTUI,
			Quiet:     simQuiet,
			LogFile:   simLogFile,
			Log:       log,
		})
		if err != nil {
			return err
		}
		defer cleanup()

		mgr := sim.NewManager(state, sim.Config{
			BattleID:               cfg.BattleID,
			MaxRounds:              cfg.MaxRounds,
			MoraleTarget:           cfg.Policy.MoraleTarget,
			NerveRecoveryTarget:    cfg.Policy.NerveRecoveryTarget,
			WithdrawHealthFraction: cfg.Policy.WithdrawHealthFraction,
			Tuning:                 tuning,
			Writer:                 writer,
			Generator:              telemetry.NewGenerator(cfg.BattleID),
		})

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		ctx = logging.NewContext(ctx, log)

		if simAdminAddr != "" {
			srv := admin.NewServer(mgr, telemetry.NewGenerator(cfg.BattleID))
			go func() {
				log.Info("admin UI listening", "addr", simAdminAddr)
				if err := srv.Start(simAdminAddr); err != nil {
					log.Error("admin server failed", "err", err)
				}
			}()
		}

		log.Info("scenario loaded", "scenario", sc.Name, "seed", cfg.Seed)
		_, err = mgr.Run(ctx)
		if errors.Is(err, context.Canceled) {
			log.Warn("battle interrupted")
			return nil
		}
		return err
	},
}

func isBuiltin(ref string) bool {
	return strings.HasPrefix(ref, scenario.BuiltinPrefix)
}

// loadConfig reads the config file when present and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.BattleConfig, error) {
	var cfg *config.BattleConfig
	if _, err := os.Stat(simConfigPath); err == nil {
		if cfg, err = config.Load(simConfigPath, simSchemaPath); err != nil {
			return nil, err
		}
	} else if cmd.Flags().Changed("config") {
		return nil, fmt.Errorf("config %s: %w", simConfigPath, err)
	} else {
		cfg = config.Default()
	}
	if cmd.Flags().Changed("scenario") {
		cfg.Scenario = simScenario
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = simSeed
	}
	if cmd.Flags().Changed("max-rounds") {
		cfg.MaxRounds = simMaxRounds
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = simLogLevel
	}
	return cfg, nil
}

func init() {
	simulateCmd.Flags().StringVar(&simConfigPath, "config", "config/battle.yaml", "Path to battle configuration YAML")
	simulateCmd.Flags().StringVar(&simSchemaPath, "schema", "schemas/battle.cue", "Path to CUE schema file")
	simulateCmd.Flags().StringVar(&simScenarioCue, "scenario-schema", "schemas/scenario.cue", "CUE schema for scenario files (empty to skip)")
	simulateCmd.Flags().StringVar(&simScenario, "scenario", "", "Scenario file or builtin:<name>, overrides the config")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "Random seed, overrides the config")
	simulateCmd.Flags().IntVar(&simMaxRounds, "max-rounds", 0, "Round cap, overrides the config")
	simulateCmd.Flags().BoolVar(&simPrintOnly, "print-only", false, "Print the report to STDOUT instead of writing to DB")
	simulateCmd.Flags().StringVar(&simLogFile, "log-file", "", "Path to export the battle report (JSONL)")
	simulateCmd.Flags().StringVar(&simAdminAddr, "admin", "", "Serve the status UI on this address (e.g. :8080)")
	simulateCmd.Flags().BoolVar(&simTUI, "tui", false, "Show the battle in a terminal UI")
	simulateCmd.Flags().BoolVar(&simQuiet, "quiet", false, "Suppress the STDOUT report")
	simulateCmd.Flags().StringVar(&simLogLevel, "log-level", "info", "Log level: debug, info, warn or error")
}
