package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arnegrue/ermine/internal/config"
	"github.com/arnegrue/ermine/internal/logx"
)

var (
	cfgFile string
	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "ermine",
	Short: "Equivalence-class sequential rule miner",
	Long: `ermine mines equivalence-class sequential rules (ERMiner) from a
sequence database in SPMF itemset-sequence format.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config.yaml (default: discovered by project/user/home lookup)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "path to the log file (default: ~/.ermine/ermine.log)")

	rootCmd.AddCommand(mineCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(profileCmd)
}

// loadConfig resolves layered config (file -> env -> flags) for a
// subcommand, binding any flags the caller has already parsed onto v
// so they take precedence over the file and environment.
func loadConfig(cmd *cobra.Command) (*viper.Viper, error) {
	v, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}
	if logFile != "" {
		v.Set("log_file", logFile)
	}
	return v, nil
}

func newLogger(v *viper.Viper) (*logx.Logger, error) {
	cfg := config.FromViper(v)
	return logx.New(cfg.LogFile, cfg.Verbose, cfg.Color)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
