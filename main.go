package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ollamabench/config"
	"ollamabench/logging"
	"ollamabench/server"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	args := &config.CliConfig{}

	rootCmd := &cobra.Command{
		Use:          "ollama-bench",
		Short:        "Ollama bench status service",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), args)
		},
	}
	args.Register(rootCmd.Flags())

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})

	return rootCmd
}

func run(ctx context.Context, args *config.CliConfig) error {
	if args.Debug {
		logging.InitLogger(logrus.DebugLevel)
	} else {
		logging.InitLogger(logrus.InfoLevel)
	}
	log := logging.GetLogger()

	if err := config.LoadDotEnv(args.EnvFile); err != nil {
		log.Fatalf("Failed to load %s: %v", args.EnvFile, err)
	}

	cfg, err := config.Load(args.LoadOptions())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	srv := server.New(cfg)
	log.Infof("Allowed origins: %s", srv.Policy())

	if err := srv.PrepareResultsDir(); err != nil {
		log.Warnln("Continuing without a writable results dir")
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Start(ctx)
}
