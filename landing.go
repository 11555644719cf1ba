package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/tidepool-org/landing/api"
	"github.com/tidepool-org/landing/clients"
	"github.com/tidepool-org/landing/events"
	"github.com/tidepool-org/landing/infrastructure"
	"github.com/tidepool-org/landing/localize"
	"github.com/tidepool-org/landing/shell"
	"github.com/tidepool-org/landing/timer"
	"github.com/tidepool-org/landing/workflow"
)

var defaultStopTimeout = 60 * time.Second

func localizerProvider(config infrastructure.WorkflowConfig) (localize.Localizer, error) {
	if config.LocalesPath != "" {
		return localize.NewI18nLocalizer(config.LocalesPath)
	}
	return localize.NewEmbeddedLocalizer()
}

func clockProvider() timer.Clock {
	return timer.RealClock{}
}

func loopProvider(config infrastructure.WorkflowConfig, logger *zap.SugaredLogger) *events.Loop {
	return events.NewLoop(config.EventQueueSize, logger.Named("loop"))
}

func shellProvider(
	config infrastructure.WorkflowConfig,
	loop *events.Loop,
	clock timer.Clock,
	notifier clients.Notifier,
	localizer localize.Localizer,
	logger *zap.SugaredLogger,
) *shell.Shell {
	env := workflow.Env{
		Clock:    clock,
		Notifier: notifier,
		Logger:   logger,
	}
	return shell.New(loop, env, localizer, shell.Config{
		Delays: workflow.NewSendLinkDelays(config.TimeUnit),
		Locale: config.Locale,
	})
}

func serverProvider(config infrastructure.ServiceConfig, rtr *mux.Router, logger *zap.SugaredLogger) *http.Server {
	return &http.Server{
		Addr:     config.ListenAddress,
		Handler:  rtr,
		ErrorLog: zap.NewStdLog(logger.Desugar().Named("http")),
	}
}

// InvocationParams are the parameters need to kick off a service
type InvocationParams struct {
	fx.In
	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Config     infrastructure.ServiceConfig
	Server     *http.Server
	Loop       *events.Loop
	Shell      *shell.Shell
	Logger     *zap.SugaredLogger
}

func startLoop(p InvocationParams) {
	runCtx, cancel := context.WithCancel(context.Background())
	p.Lifecycle.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				go p.Loop.Run(runCtx)
				return nil
			},
			OnStop: func(ctx context.Context) error {
				defer cancel()
				if err := p.Shell.Close(ctx); err != nil {
					p.Logger.With(zap.Error(err)).Warn("closing shell")
				}
				p.Loop.Stop()
				select {
				case <-p.Loop.Stopped():
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			},
		},
	)
}

func startServer(p InvocationParams) {
	p.Lifecycle.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				go func() {
					var err error
					if p.Config.Protocol == "https" {
						err = p.Server.ListenAndServeTLS(p.Config.SslCertFile, p.Config.SslKeyFile)
					} else {
						err = p.Server.ListenAndServe()
					}
					if err != nil && !errors.Is(err, http.ErrServerClosed) {
						p.Logger.With(zap.Error(err)).Error("server error")
						p.Logger.Info("shutting down the service")
						if shutdownErr := p.Shutdowner.Shutdown(); shutdownErr != nil {
							p.Logger.With(zap.Error(shutdownErr)).Error("failed to shutdown")
						}
					}
				}()
				p.Logger.Infow("listening", "address", p.Config.ListenAddress, "protocol", p.Config.Protocol)
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return p.Server.Shutdown(ctx)
			},
		},
	)
}

func appOptions() fx.Option {
	return fx.Options(
		clients.LogModule,
		api.RouterModule,
		fx.Provide(
			infrastructure.ServiceConfigProvider,
			infrastructure.WorkflowConfigProvider,
			loggerProvider,
			localizerProvider,
			clockProvider,
			loopProvider,
			shellProvider,
			serverProvider,
		),
		fx.WithLogger(fxLoggerProvider),
		fx.Invoke(startLoop),
		fx.Invoke(startServer),
		fx.StopTimeout(defaultStopTimeout),
	)
}

func main() {
	if err := infrastructure.LoadDotEnv(".env"); err != nil {
		log.Fatalf("Unable to read .env: %v", err)
	}
	fx.New(appOptions()).Run()
}
