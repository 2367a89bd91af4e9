package main

import (
	"context"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/civkit/civkit-api-sub000/http"
	"github.com/civkit/civkit-api-sub000/logger"
	"github.com/civkit/civkit-api-sub000/service"
)

func main() {
	osSignalChannel := make(chan os.Signal, 1)
	signal.Notify(osSignalChannel, os.Interrupt, syscall.SIGTERM, syscall.SIGPIPE)

	ctx, cancel := context.WithCancel(context.Background())

	var osSignal os.Signal
	go func() {
		for {
			osSignal = <-osSignalChannel
			logger.Logger.Info().Interface("signal", osSignal).Msg("Received OS signal")

			if osSignal == syscall.SIGPIPE {
				logger.Logger.Warn().Interface("signal", osSignal).Msg("Ignoring SIGPIPE signal")
				continue
			}

			cancel()
			break
		}
	}()

	svc, err := service.NewService(ctx)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create service")
		return
	}

	e := echo.New()

	httpSvc := http.NewHttpService(svc, svc.GetEventPublisher())
	httpSvc.RegisterSharedRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf(":%v", svc.GetConfig().Port)); err != nil && err != nethttp.ErrServerClosed {
			logger.Logger.Error().Err(err).Msg("echo server failed to start")
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down echo server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	err = e.Shutdown(shutdownCtx)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to shutdown echo server")
	}
	logger.Logger.Info().Msg("Echo server exited")
	svc.Shutdown()
	logger.Logger.Info().Msg("Service exited")
}
