// Package cli wires the discharge subcommands: generate, evaluate and send.
package cli

import (
	"github.com/edge-coloring/projective-discharging/pkg/logger"
	"github.com/edge-coloring/projective-discharging/pkg/util"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	verbosity int
	validate  = validator.New()
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "discharge",
		Short:         "Verify discharging arguments on planar near-triangulations",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbosity", "v", 0, "1 for debug, 2 for trace")
	rootCmd.AddCommand(newGenerateCmd(), newEvaluateCmd(), newSendCmd())
	return rootCmd
}

// Execute runs the CLI. A non-nil return means exit code 1.
func Execute() error {
	return newRootCmd().Execute()
}

// setup loads the optional config file and builds the logger; both are shared
// by every subcommand.
func setup() (*zap.Logger, error) {
	if err := util.ReadConfig(); err != nil {
		return nil, err
	}
	return logger.New(verbosity)
}

// fromConfig falls back to a config-file value for flags the user left empty.
func fromConfig(flagValue, key string) string {
	if flagValue != "" {
		return flagValue
	}
	return viper.GetString(key)
}

func intFromConfig(flagValue int, key string) int {
	if flagValue != 0 {
		return flagValue
	}
	return viper.GetInt(key)
}
