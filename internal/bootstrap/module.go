package bootstrap

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"devpulse/internal/bootstrap/config"
	"devpulse/internal/bootstrap/database"
	"devpulse/internal/bootstrap/logging"
	cacheinfra "devpulse/internal/infrastructure/cache"
	"devpulse/internal/infrastructure/notify"
	sqliterepo "devpulse/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "devpulse/internal/infrastructure/persistence/sqlite/uow"
	"devpulse/internal/infrastructure/provider/github"
	"devpulse/internal/infrastructure/provider/jira"
	"devpulse/internal/ports"
	"devpulse/internal/usecase/catalog"
	"devpulse/internal/usecase/dashboard"
	"devpulse/internal/usecase/ingest"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(provideApp),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewCatalogRepository,
			fx.As(new(ports.CatalogRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewRunRepository,
			fx.As(new(ports.RunRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewTrackerRepository,
			fx.As(new(ports.TrackerRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewMetricsRepository,
			fx.As(new(ports.MetricsReader)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliteuow.NewUnitOfWork,
			fx.As(new(ports.UnitOfWork)),
		),
	),
	fx.Provide(
		fx.Annotate(
			cacheinfra.NewSQLiteCache,
			fx.As(new(ports.Cache)),
		),
	),
	fx.Provide(provideNotifier),
	fx.Provide(provideGitHubFactory),
	fx.Provide(provideJiraFactory),
	fx.Provide(provideIngestService),
	fx.Provide(dashboard.NewService),
	fx.Provide(catalog.NewService),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideApp(cfg config.Config, db *gorm.DB) *App {
	return &App{
		Config: cfg,
		DB:     db,
	}
}

// provideNotifier returns a nil notifier when NATS is not configured;
// the ingest service treats nil as "events disabled".
func provideNotifier(lc fx.Lifecycle, cfg config.Config) (ports.RunNotifier, error) {
	if cfg.NATS.URL == "" {
		return nil, nil
	}

	notifier, err := notify.NewNATSNotifier(cfg.NATS.URL, cfg.NATS.Subject)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return notifier.Close()
		},
	})
	return notifier, nil
}

// provideGitHubFactory builds per-data-source clients: the data source
// env wins, config supplies the fallback credentials.
func provideGitHubFactory(cfg config.Config) ingest.GitHubSourceFactory {
	return func(ctx context.Context, env map[string]string) (ingest.GitHubSource, error) {
		creds := github.CredentialsFromEnv(env)
		if creds.Token == "" {
			creds.Token = cfg.GitHub.Token
		}
		if creds.BaseURL == "" {
			creds.BaseURL = cfg.GitHub.BaseURL
		}
		if creds.AppID == 0 {
			creds.AppID = cfg.GitHub.AppID
		}
		if creds.InstallationID == 0 {
			creds.InstallationID = cfg.GitHub.InstallationID
		}
		if creds.PrivateKeyPath == "" {
			creds.PrivateKeyPath = cfg.GitHub.PrivateKeyPath
		}
		return github.NewClient(ctx, creds)
	}
}

func provideJiraFactory(cfg config.Config) ingest.JiraSourceFactory {
	return func(_ context.Context, env map[string]string) (ingest.JiraSource, error) {
		creds := jira.CredentialsFromEnv(env)
		if creds.BaseURL == "" {
			creds.BaseURL = cfg.Jira.BaseURL
		}
		if creds.Email == "" {
			creds.Email = cfg.Jira.Email
		}
		if creds.APIToken == "" {
			creds.APIToken = cfg.Jira.APIToken
		}
		return jira.NewClient(creds)
	}
}

func provideIngestService(
	cfg config.Config,
	catalogRepo ports.CatalogRepository,
	runs ports.RunRepository,
	store ports.TrackerRepository,
	uow ports.UnitOfWork,
	notifier ports.RunNotifier,
	githubFactory ingest.GitHubSourceFactory,
	jiraFactory ingest.JiraSourceFactory,
) *ingest.Service {
	return ingest.NewService(ingest.Deps{
		Catalog:      catalogRepo,
		Runs:         runs,
		Store:        store,
		UoW:          uow,
		Notifier:     notifier,
		GitHubSource: githubFactory,
		JiraSource:   jiraFactory,
		WindowDays:   cfg.Import.WindowDays,
	})
}
