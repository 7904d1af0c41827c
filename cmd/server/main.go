package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/recipe-box/internal/config"
	"github.com/jrsteele09/recipe-box/server"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("panic", fmt.Sprint(r)).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.Load()
	if err != nil {
		return err
	}
	setupLogging(c)
	displayAppname(c.GetAppName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := server.Bootstrap(ctx, c)
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- listenAndServe(httpServer)
	}()

	select {
	case err := <-serveErr:
		returnError = err
	case <-ctx.Done():
		log.Info().Msg("Stop signal received")
	}
	if err := shutdown(httpServer, app); err != nil && returnError == nil {
		returnError = err
	}
	return returnError
}

// setupLogging configures the global zerolog logger: coloured console output in DEV,
// JSON everywhere else.
func setupLogging(c config.Config) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

// appCloser is the part of the application released after the listener stops.
type appCloser interface {
	Close(ctx context.Context) error
}

func shutdown(httpServer *http.Server, app appCloser) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return shutdownWithContext(ctx, httpServer, app)
}

func shutdownWithContext(ctx context.Context, httpServer *http.Server, app appCloser) error {
	var shutdownErr, closeErr error
	if err := httpServer.Shutdown(ctx); err != nil {
		shutdownErr = fmt.Errorf("server.Shutdown: %w", err)
	}
	// Drafts are flushed and connections released even when in-flight requests overran.
	if err := app.Close(ctx); err != nil {
		closeErr = fmt.Errorf("app.Close: %w", err)
	}
	return errors.Join(shutdownErr, closeErr)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
