// Package commands implements the schooltrack-console CLI.
package commands

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schooltrack/go-console-auth/auth"
	"github.com/schooltrack/go-console-auth/internal/config"
	"github.com/schooltrack/go-console-auth/session"
	"github.com/spf13/cobra"
)

var (
	configPath string
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:   "schooltrack-console",
	Short: "Administrative console for the schooltrack attendance platform",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		setupLogging(cfg)
		return nil
	},
}

// Execute runs the CLI.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigFile, "path to the console config file")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
}

func setupLogging(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func buildStore(cfg config.Config) (session.Store, error) {
	if cfg.Session.RedisAddr != "" {
		return session.NewRedisStore(cfg.Session.RedisAddr), nil
	}
	path := cfg.Session.Path
	if path == "" {
		defaultPath, err := session.DefaultSessionPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}
	return session.NewFileStore(path), nil
}

func buildManager(cfg config.Config) (*auth.Manager, error) {
	timeout, err := cfg.GetAPITimeout()
	if err != nil {
		return nil, err
	}
	store, err := buildStore(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "[buildManager] session store")
	}
	api := auth.NewClient(cfg.API.BaseURL, auth.WithTimeout(timeout))
	return auth.NewManager(api, store, auth.WithLogger(log.Logger))
}
