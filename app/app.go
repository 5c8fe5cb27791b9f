package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/firestore"
	"github.com/bwmarrin/discordgo"
	"github.com/ssugameworks/brevets/acptimes"
	"github.com/ssugameworks/brevets/api"
	"github.com/ssugameworks/brevets/bot"
	"github.com/ssugameworks/brevets/config"
	"github.com/ssugameworks/brevets/constants"
	"github.com/ssugameworks/brevets/health"
	"github.com/ssugameworks/brevets/interfaces"
	"github.com/ssugameworks/brevets/scheduler"
	"github.com/ssugameworks/brevets/storage"
	"github.com/ssugameworks/brevets/telemetry"
	"github.com/ssugameworks/brevets/utils"
)

type Application struct {
	config         *config.Config
	storage        interfaces.StorageRepository
	calculator     interfaces.ControlTimeCalculator
	metrics        *telemetry.MetricsClient
	httpServer     *http.Server
	session        *discordgo.Session
	commandHandler *bot.CommandHandler
	scheduler      *scheduler.Scheduler
	serverErr      chan error
}

func New() (*Application, error) {
	app := &Application{}

	if err := app.loadConfig(); err != nil {
		return nil, err
	}

	if err := app.initializeDependencies(context.Background()); err != nil {
		return nil, err
	}

	app.initializeHTTP()

	if app.config.Discord.Enabled() {
		if err := app.initializeDiscord(); err != nil {
			app.Stop()
			return nil, err
		}
		app.setupHandlers()
		app.initializeScheduler()
	} else {
		utils.Warn("%s가 설정되지 않았습니다. 디스코드 봇이 비활성화되었습니다.", constants.EnvDiscordToken)
	}

	return app, nil
}

func (app *Application) loadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	app.config = cfg
	utils.Configure(cfg.EffectiveLogLevel(), cfg.Logging.JSON)
	return nil
}

func (app *Application) initializeDependencies(ctx context.Context) error {
	if app.config.Telemetry.Enabled {
		app.metrics = telemetry.NewMetricsClient(ctx, app.config.Telemetry.ProjectID)
	} else {
		app.metrics = telemetry.NewDisabledMetricsClient()
	}

	store, err := storage.New(ctx, storage.Options{
		Backend:             app.config.Storage.Backend,
		Collection:          app.config.Storage.Collection,
		FirebaseCredentials: app.config.Storage.FirebaseCredentials,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.storage = storage.NewInstrumentedStorage(store, app.metricsRecorder())
	app.calculator = acptimes.NewCalculator()

	// Firestore 헬스체크 등록 (타입 확인을 위한 인터페이스 메서드 사용)
	type ClientProvider interface {
		GetClient() interface{}
	}

	if clientProvider, ok := app.storage.(ClientProvider); ok {
		if firestoreClient, ok := clientProvider.GetClient().(*firestore.Client); ok && firestoreClient != nil {
			current := func() *firestore.Client {
				client, _ := clientProvider.GetClient().(*firestore.Client)
				return client
			}
			health.RegisterHealthChecker("firestore", health.NewFirestoreHealthChecker(current))
			utils.Info("Firestore health checker registered")
		}
	}

	return nil
}

// metricsRecorder 텔레메트리가 꺼져 있으면 nil 인터페이스를 반환합니다
func (app *Application) metricsRecorder() interfaces.MetricsRecorder {
	if app.metrics == nil || !app.metrics.Enabled() {
		return nil
	}
	return app.metrics
}

func (app *Application) initializeHTTP() {
	server := api.NewServer(api.Dependencies{
		Storage:    app.storage,
		Calculator: app.calculator,
		Metrics:    app.metricsRecorder(),
	})
	app.httpServer = api.NewHTTPServer(app.config.Server.Port, server.Handler())
}

func (app *Application) initializeDiscord() error {
	session, err := discordgo.New("Bot " + app.config.Discord.Token)
	if err != nil {
		return fmt.Errorf("디스코드 세션 생성 실패: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent | discordgo.IntentsGuilds | discordgo.IntentsDirectMessages
	app.session = session
	return nil
}

func (app *Application) setupHandlers() {
	deps := bot.NewCommandDependencies(app.storage, app.calculator, app.metricsRecorder())
	app.commandHandler = bot.NewCommandHandler(deps)

	app.session.AddHandler(app.commandHandler.HandleMessage)
	app.session.AddHandler(app.handleReady)
}

func (app *Application) initializeScheduler() {
	if !app.config.Discord.DigestEnabled() {
		return
	}
	app.scheduler = scheduler.NewScheduler(app.session, app.config.Discord.ChannelID, bot.NewScheduleBoard(app.storage))
}

func (app *Application) Start() error {
	app.serverErr = make(chan error, 1)
	go func() {
		utils.Info("HTTP server listening on %s", app.httpServer.Addr)
		if err := app.httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			app.serverErr <- fmt.Errorf("http server: %w", err)
		}
	}()

	if app.session != nil {
		if err := app.session.Open(); err != nil {
			return fmt.Errorf("웹소켓 연결 실패: %w", err)
		}
	}

	if app.scheduler != nil {
		hour, minute, err := app.config.Discord.DigestClock()
		if err != nil {
			return fmt.Errorf("invalid digest time: %w", err)
		}
		app.scheduler.StartCustomSchedule(hour, minute)
	} else if app.session != nil {
		utils.Warn("%s가 설정되지 않았습니다. 일일 스케줄 요약이 비활성화되었습니다.", constants.EnvChannelID)
	}

	app.printStartupMessage()
	return nil
}

func (app *Application) printStartupMessage() {
	utils.Info("ACP Brevet Calculator v%s", constants.AppVersion)
	utils.Info("🌐 HTTP API: %s (storage: %s)", app.httpServer.Addr, app.config.Storage.Backend)
	if app.session != nil {
		utils.Info("📋 사용 가능한 명령어: !help")
	}
	if app.scheduler != nil {
		utils.Info("⏰ 매일 %s에 저장된 스케줄 요약이 전송됩니다.", app.config.Discord.DigestTime)
	}
}

func (app *Application) Run() error {
	if err := app.Start(); err != nil {
		app.Stop()
		return err
	}

	// 종료 신호 대기
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sc)

	var runErr error
	select {
	case <-sc:
	case runErr = <-app.serverErr:
		utils.Error("%v", runErr)
	}

	if err := app.Stop(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func (app *Application) handleReady(s *discordgo.Session, event *discordgo.Ready) {
	utils.Info("Discord bot connected successfully as %s", event.User.Username)
	utils.Info("Bot is serving %d guilds", len(event.Guilds))

	// 봇 상태 설정
	if err := s.UpdateGameStatus(0, constants.BotStatusMessage); err != nil {
		utils.Warn("Failed to set bot status: %v", err)
	}
}

func (app *Application) Stop() error {
	utils.Info("🔄 서비스를 종료하는 중...")

	var errs []error

	if app.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), constants.ServerShutdownTimeout)
		if err := app.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
		cancel()
	}

	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	if app.session != nil {
		if err := app.session.Close(); err != nil {
			errs = append(errs, fmt.Errorf("discord close: %w", err))
		}
	}

	health.UnregisterHealthChecker("firestore")

	if app.storage != nil {
		if err := app.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage close: %w", err))
		}
	}

	if app.metrics != nil {
		if err := app.metrics.Close(); err != nil {
			errs = append(errs, fmt.Errorf("telemetry close: %w", err))
		}
	}

	if len(errs) > 0 {
		return stderrors.Join(errs...)
	}

	utils.Info("서비스가 정상적으로 종료되었습니다.")
	return nil
}
