package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/arnegrue/ermine/internal/config"
	"github.com/arnegrue/ermine/internal/logx"
	"github.com/arnegrue/ermine/internal/miner"
	"github.com/arnegrue/ermine/internal/report"
	"github.com/arnegrue/ermine/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Re-mine the database whenever it changes on disk",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().Float64("minsup", config.DefaultMinSup, "minimum relative support in [0,1]")
	watchCmd.Flags().Float64("minconf", config.DefaultMinConf, "minimum confidence in [0,1]")
	watchCmd.Flags().StringP("output", "o", config.DefaultOutput, "output file path")
	watchCmd.Flags().BoolP("verbose", "v", false, "enable debug logging")
	watchCmd.Flags().BoolP("write", "w", true, "write rules to the output file on every rerun")
	watchCmd.Flags().Bool("prune", true, "enable the Sparse Count Matrix pruning hint")
	watchCmd.Flags().String("color", "auto", "colorize output: auto, always, never")
}

func runWatch(cmd *cobra.Command, args []string) error {
	v, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg := config.FromViper(v)
	log, err := newLogger(v)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchLoop(ctx, args[0], cfg, log)
}

// watchLoop mines path once, then re-mines on every debounced file
// change until ctx is canceled. Split out from runWatch so the rerun
// behavior can be driven by a test-controlled context instead of
// process signals, mirroring the teacher's split between
// runEventLoop (ctx-driven) and its signal-handling caller in
// cmd/bd/daemon_server.go.
func watchLoop(ctx context.Context, path string, cfg config.Config, log *logx.Logger) error {
	opts := miner.Options{MinSup: cfg.MinSup, MinConf: cfg.MinConf, Prune: cfg.Prune}

	rerun := func() {
		start := time.Now()
		e, err := miner.Mine(path, opts)
		elapsed := time.Since(start)
		if err != nil {
			log.Error("mining failed", err)
			return
		}
		color := cfg.Color == "always" || (cfg.Color == "auto" && isTerminal(os.Stdout))
		report.WriteConsole(os.Stdout, e.Rules, color)
		report.Summary(os.Stdout, e.N(), e.MinSupCount(), len(e.Rules), cfg.MinSup, cfg.MinConf, elapsed, color)
		if cfg.Write {
			if err := report.WriteFile(cfg.Output, e.Rules); err != nil {
				log.Error("writing output file", err)
				return
			}
		}
		log.Info(fmt.Sprintf("remined %d rule(s) in %.3fs", len(e.Rules), elapsed.Seconds()))
	}

	rerun()

	w, err := watch.New(path, 500*time.Millisecond, rerun)
	if err != nil {
		return err
	}
	defer w.Close()

	w.Start(ctx)
	log.Info("watching " + path + " for changes, press Ctrl+C to stop")
	<-ctx.Done()
	return nil
}
