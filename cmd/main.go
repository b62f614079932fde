package main

import (
	"context"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/navanexis/site/internal/config"
	"github.com/navanexis/site/internal/setup"
	"github.com/navanexis/site/pkg/log"
	"github.com/pkg/errors"
)

const shutdownTimeout = 10 * time.Second

var (
	configFile string = ""
	dumpConfig bool   = false
)

func init() {
	flag.StringVar(&configFile, "config", configFile, "configuration file")
	flag.BoolVar(&dumpConfig, "dump-config", dumpConfig, "dump default configuration file and exit")
}

func main() {
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	conf := config.NewDefaultConfig()

	if dumpConfig {
		if err := config.Dump(os.Stdout, conf); err != nil {
			slog.ErrorContext(ctx, "could not dump config file", log.Error(errors.WithStack(err)))
			os.Exit(1)
		}

		os.Exit(0)
	}

	if configFile != "" {
		if err := config.LoadFile(configFile, conf); err != nil {
			slog.ErrorContext(ctx, "could not parse config file", log.Error(errors.WithStack(err)), slog.String("file", configFile))
			os.Exit(1)
		}
	}

	if err := config.Interpolate(conf); err != nil {
		slog.ErrorContext(ctx, "could not interpolate config file", log.Error(errors.WithStack(err)))
		os.Exit(1)
	}

	handlerOptions := &slog.HandlerOptions{
		Level:     slog.Level(conf.Logger.Level),
		AddSource: true,
	}

	var logHandler slog.Handler
	switch format := string(conf.Logger.Format); format {
	case config.LoggerFormatJSON:
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOptions)
	case config.LoggerFormatText, "":
		logHandler = slog.NewTextHandler(os.Stderr, handlerOptions)
	default:
		slog.ErrorContext(ctx, "unknown logger format", slog.String("format", format))
		os.Exit(1)
	}

	logger := slog.New(log.ContextHandler{
		Handler: logHandler,
	})

	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(slog.Level(conf.Logger.Level))

	handler, err := setup.NewHandlerFromConfig(ctx, conf)
	if err != nil {
		slog.ErrorContext(ctx, "could not generate handler from config", log.Error(errors.WithStack(err)))
		os.Exit(1)
	}

	server := http.Server{
		Addr:              string(conf.HTTP.Address),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	listener, err := net.Listen("tcp", server.Addr)
	if err != nil {
		slog.ErrorContext(ctx, "could not listen", log.Error(errors.WithStack(err)))
		os.Exit(1)
	}

	slog.InfoContext(ctx, "http server listening", slog.String("addr", listener.Addr().String()), log.ScrubbedURL("baseUrl", string(conf.HTTP.BaseURL)))

	if err := runServer(ctx, &server, listener, shutdownTimeout); err != nil {
		slog.ErrorContext(ctx, "could not serve", log.Error(errors.WithStack(err)))
		os.Exit(1)
	}

	if store, err := setup.NewStoreFromConfig(ctx, conf); err == nil {
		if err := store.Close(); err != nil {
			slog.ErrorContext(ctx, "could not close store", log.Error(errors.WithStack(err)))
		}
	}
}

// runServer serves requests until ctx is done. It returns once the server
// has been shut down and in-flight requests are drained.
func runServer(ctx context.Context, server *http.Server, listener net.Listener, timeout time.Duration) error {
	shutdownDone := make(chan struct{})

	go func() {
		defer close(shutdownDone)

		<-ctx.Done()

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), timeout)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "could not shutdown server", log.Error(errors.WithStack(err)))
		}
	}()

	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	<-shutdownDone

	return nil
}
