package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pikachuaaaa/RPGBot/internal/gateway"
	"github.com/pikachuaaaa/RPGBot/internal/logging"
)

var (
	servePort     int
	serveHostname string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and WebSocket gateway",
	Long: `Start rpgbot as a server.

Endpoints:
  POST /message   dispatch a chat message and return the replies
  POST /parse     match a message without running the command
  GET  /command   list registered commands
  GET  /ws        chat over a WebSocket
  GET  /events    stream bot events over a WebSocket
  GET  /health    liveness check`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default from config, 8080)")
	serveCmd.Flags().StringVar(&serveHostname, "hostname", "", "Hostname to listen on (default from config, 127.0.0.1)")
}

func runServe(cmd *cobra.Command, args []string) error {
	b, err := newBot(true)
	if err != nil {
		return err
	}
	defer b.Close()

	reloader, err := b.reloader()
	if err != nil {
		logging.Warn().Err(err).Msg("hot reload disabled")
	}
	reloader.Start()
	defer reloader.Stop()

	serverConfig := gateway.NewServerConfig(b.config.Server)
	if servePort != 0 {
		serverConfig.Port = servePort
	}
	if serveHostname != "" {
		serverConfig.Hostname = serveHostname
	}

	srv := gateway.NewServer(serverConfig, b.dispatcher, b.bus)

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", "http://"+serverConfig.Addr()).Msg("server listening")
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return err
	}

	logging.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("server shutdown error")
	}

	logging.Info().Msg("server stopped")
	return nil
}
