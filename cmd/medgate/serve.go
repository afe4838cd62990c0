package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/medgateai/medgate/internal/chat"
	"github.com/medgateai/medgate/internal/command"
	"github.com/medgateai/medgate/internal/config"
	"github.com/medgateai/medgate/internal/extract"
	"github.com/medgateai/medgate/internal/gateway"
	"github.com/medgateai/medgate/internal/handlers"
	"github.com/medgateai/medgate/internal/logger"
	"github.com/medgateai/medgate/internal/server"
	"github.com/medgateai/medgate/internal/session"
	"github.com/medgateai/medgate/internal/tools"
	"github.com/medgateai/medgate/internal/version"
)

func runServe() {
	fx.New(
		fx.Provide(
			provideConfig,
			provideLogger,
			provideSessionStore,
			provideCommandRouter,
			provideExtractor,
			tools.NewRegistry,
			provideCompleter,
			provideBot,
			provideTransport,
			provideGateway,
			handlers.NewPingHandler,
			provideServer,
		),
		fx.Invoke(
			startGateway,
			startServer,
		),
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log.With(slog.String("component", "fx"))}
		}),
	).Run()
}

func provideConfig() (config.Config, error) {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func provideSessionStore(cfg config.Config) *session.Store {
	prompt := strings.TrimSpace(cfg.Prompt.System)
	if prompt == "" {
		prompt = chat.DefaultSystemPrompt
	}
	return session.NewStore(prompt)
}

func provideCommandRouter(log *slog.Logger, store *session.Store) *command.Router {
	return command.NewRouter(log, store)
}

func provideExtractor(log *slog.Logger) *extract.Extractor {
	return extract.New(log)
}

func provideCompleter(log *slog.Logger, cfg config.Config, registry *tools.Registry) gateway.Completer {
	return chat.NewOpenAIClient(log, cfg.OpenAI.Endpoint, cfg.OpenAI.APIKey, cfg.OpenAI.Model, registry)
}

func provideBot(cfg config.Config) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	return bot, nil
}

func provideTransport(log *slog.Logger, bot *tgbotapi.BotAPI) *gateway.TelegramTransport {
	return gateway.NewTelegramTransport(log, bot)
}

func provideGateway(log *slog.Logger, store *session.Store, router *command.Router, extractor *extract.Extractor, completer gateway.Completer, transport *gateway.TelegramTransport) *gateway.Gateway {
	return gateway.New(log, store, router, extractor, completer, transport, transport)
}

func provideServer(log *slog.Logger, cfg config.Config, pingHandler *handlers.PingHandler) *server.Server {
	return server.NewServer(log, cfg.Server.Addr, pingHandler)
}

func startGateway(lc fx.Lifecycle, log *slog.Logger, gw *gateway.Gateway, bot *tgbotapi.BotAPI, transport *gateway.TelegramTransport) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			log.Info("bot authorized", slog.String("username", bot.Self.UserName))
			go func() {
				defer close(done)
				gw.Run(ctx, bot, transport)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

func startServer(lc fx.Lifecycle, log *slog.Logger, srv *server.Server, shutdowner fx.Shutdowner) {
	fmt.Printf("Starting medgate %s\n", version.GetInfo())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("server failed", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Stop(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server stop: %w", err)
			}
			return nil
		},
	})
}
