package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/slide-backend/internal"
	"github.com/rocketscienceinc/slide-backend/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and websocket servers",
	Long: `Start the REST API and the websocket server.

Live games are kept in redis, finished games are written to sqlite.
Every config value can be overridden with its SLIDE_* environment variable.

Examples:
  slide serve
  slide serve --config /etc/slide/config.yml
  SLIDE_HTTP_PORT=8080 slide serve`,
	RunE: runServe,
}

func runServe(_ *cobra.Command, _ []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}

	logger := initLogger(conf.LogLevel, conf.LogFormat, os.Stdout)

	if err = app.RunApp(logger, conf); err != nil {
		return fmt.Errorf("app run failed: %w", err)
	}

	return nil
}

// loadConfig - the config file when it exists, defaults and environment otherwise.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(flagConfig); err != nil {
		return config.LoadEnv()
	}

	return config.Load(flagConfig)
}
