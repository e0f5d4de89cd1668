package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arnegrue/ermine/internal/config"
	"github.com/arnegrue/ermine/internal/miner"
	"github.com/arnegrue/ermine/internal/profile"
	"github.com/arnegrue/ermine/internal/report"
)

var mineCmd = newMineCmd()

// newMineCmd builds a fresh mine command with its own flag set. cobra
// commands are normally process-lifetime singletons (mineCmd is one),
// but pflag's Changed bit is sticky across repeated Execute() calls on
// the same FlagSet, so tests that need to observe "no flag passed"
// behavior build their own instance with this constructor instead of
// reusing the shared mineCmd.
func newMineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mine [path]",
		Short: "Mine sequential rules from a database file",
		Args:  cobra.ExactArgs(1),
		RunE:  runMine,
	}
	cmd.Flags().Float64("minsup", config.DefaultMinSup, "minimum relative support in [0,1]")
	cmd.Flags().Float64("minconf", config.DefaultMinConf, "minimum confidence in [0,1]")
	cmd.Flags().StringP("output", "o", config.DefaultOutput, "output file path (used with --write)")
	cmd.Flags().BoolP("verbose", "v", false, "enable debug logging")
	cmd.Flags().BoolP("write", "w", false, "write rules to the output file in addition to stdout")
	cmd.Flags().Bool("no-prune", false, "disable the Sparse Count Matrix pruning hint")
	cmd.Flags().String("color", "auto", "colorize output: auto, always, never")
	cmd.Flags().String("profile", "", "load thresholds from a saved profile, overridden by explicit flags")
	return cmd
}

func runMine(cmd *cobra.Command, args []string) error {
	v, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if name, _ := cmd.Flags().GetString("profile"); name != "" {
		if err := applyProfile(v, cmd.Flags(), name); err != nil {
			return err
		}
	}
	if noPrune, _ := cmd.Flags().GetBool("no-prune"); noPrune {
		v.Set("prune", false)
	}

	cfg := config.FromViper(v)
	log, err := newLogger(v)
	if err != nil {
		return err
	}

	opts := miner.Options{MinSup: cfg.MinSup, MinConf: cfg.MinConf, Prune: cfg.Prune}
	start := time.Now()
	e, err := miner.Mine(args[0], opts)
	elapsed := time.Since(start)
	if err != nil {
		log.Error("mining failed", err)
		return err
	}

	color := cfg.Color == "always" || (cfg.Color == "auto" && isTerminal(os.Stdout))
	report.WriteConsole(os.Stdout, e.Rules, color)
	report.Summary(os.Stdout, e.N(), e.MinSupCount(), len(e.Rules), cfg.MinSup, cfg.MinConf, elapsed, color)
	log.Info(fmt.Sprintf("mined %d rule(s) in %.3fs", len(e.Rules), elapsed.Seconds()))

	if cfg.Write {
		if err := report.WriteFile(cfg.Output, e.Rules); err != nil {
			log.Error("writing output file", err)
			return err
		}
		log.Info("wrote rules to " + cfg.Output)
	}
	return nil
}

func applyProfile(v interface{ Set(string, any) }, flags *pflag.FlagSet, name string) error {
	store := profile.NewStore(defaultProfileDir())
	p, err := store.Load(name)
	if err != nil {
		return err
	}
	// A profile fills in thresholds the user didn't pass explicitly;
	// flags the user did pass still win.
	if !flags.Changed("minsup") {
		v.Set("minsup", p.MinSup)
	}
	if !flags.Changed("minconf") {
		v.Set("minconf", p.MinConf)
	}
	if !flags.Changed("no-prune") {
		v.Set("prune", p.Prune)
	}
	return nil
}

func defaultProfileDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ermine/profiles"
	}
	return home + "/.ermine/profiles"
}
