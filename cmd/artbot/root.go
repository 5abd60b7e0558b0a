package main

import (
	"fmt"
	"os"

	"github.com/m3rciful/artbot/core/buildinfo"
	corecmd "github.com/m3rciful/artbot/core/cmd"
	"github.com/m3rciful/artbot/internal/app"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "configs/config.yaml"

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:           "artbot",
		Short:         "Art institute Telegram bot",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := corecmd.Run(corecmd.Options{
				ConfigPath:        configPath,
				ConfigEnvVar:      "CONFIG_PATH",
				DefaultConfigPath: defaultConfigPath,
				LoadConfig:        app.Load,
				Bootstrap:         app.Bootstrap,
				Context:           cmd.Context(),
			})
			if err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "artbot: %v\n", err)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Config file path (optional; CONFIG_PATH or "+defaultConfigPath+").")
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
