// filecab serves an in-memory folder/file catalog with a recycle bin over
// an HTTP JSON API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/filecab/filecab"
	"github.com/filecab/filecab/catalog"
	"github.com/filecab/filecab/config"
	"github.com/filecab/filecab/internal/util"
	"github.com/filecab/filecab/requests"
	"github.com/filecab/filecab/server"
)

var (
	cfgFile  string
	seedFile string
	addr     string
	verbose  int
)

func main() {
	// Load .env if present; production deployments set real env vars
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "filecab",
		Short:         "In-memory folder/file catalog with a recycle bin",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog HTTP API",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "Path to config file (yaml or json)")
	serveCmd.Flags().StringVarP(&seedFile, "seed", "n", "", "Path to seed definitions file")
	serveCmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides config)")
	serveCmd.Flags().IntVarP(&verbose, "verbose", "v", 3,
		"Log verbosity level between 1 (error) and 5 (trace). Default is 3 (info).")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(filecab.Version)
		},
	}

	rootCmd.AddCommand(serveCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.NewDefaultConfig()
	if cfgFile != "" {
		override, err := config.LoadConfigOverrideFile(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg.Merge(override)
	}
	cfg.LogLvl = resolveLogLevel(cmd.Flags().Changed("verbose"), verbose, cfg.LogLvl)
	util.InitializeLogger(cfg.LogLvl)
	logger := util.GetLogger("main")

	if addr != "" {
		cfg.Addr = addr
	} else if env := os.Getenv("FILECAB_ADDR"); env != "" {
		cfg.Addr = env
	}
	if seedFile != "" {
		cfg.SeedPath = seedFile
	}

	cat := catalog.New()
	if cfg.SeedPath != "" {
		if err := seed(cat, cfg.SeedPath, logger); err != nil {
			return err
		}
	} else {
		logger.Warn().Msg("No seed file provided; starting with an empty catalog")
	}

	srv := server.New(cfg, cat)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-errCh:
		return err
	case sig := <-signalChan:
		logger.Info().Str("signal", sig.String()).Msg("Received signal, shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to shut down cleanly")
		return err
	}
	logger.Info().Msg("Server stopped")
	return nil
}

// resolveLogLevel picks the effective log level. An explicitly set -v flag
// wins over the config file's log_level; without the flag the config value
// stands.
func resolveLogLevel(flagSet bool, verbosity int, cfgLvl util.LogLevel) util.LogLevel {
	if !flagSet {
		return cfgLvl
	}
	if verbosity < 1 {
		verbosity = 1
	}
	if verbosity > 5 {
		verbosity = 5
	}
	lvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
	return lvls[verbosity-1]
}

// seed replays a seed definitions file onto the catalog.
func seed(cat *catalog.Catalog, path string, logger util.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	nodes, err := requests.ParseSeed(data)
	if err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}
	folderCnt, fileCnt := requests.ApplySeed(cat, nodes)
	logger.Info().Int("folders", folderCnt).Int("files", fileCnt).Msg("Seeded catalog")
	return nil
}
