package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog/log"
	"github.com/schooltrack/go-console-auth/console"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local console shell server",
	RunE: func(_ *cobra.Command, _ []string) error {
		manager, err := buildManager(cfg)
		if err != nil {
			return err
		}

		displayAppname(cfg.AppName)

		shell := console.NewServer(manager, console.WithServerLogger(log.Logger))
		server := &http.Server{Addr: cfg.Listen, Handler: shell}

		go func() {
			log.Info().Str("addr", cfg.Listen).Msg("console shell listening")
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("server stopped")
			}
		}()

		waitForStopSignal()
		return shutdown(server)
	},
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	log.Info().Msg("console shell stopped")
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
