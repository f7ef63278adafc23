package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/sightread/internal/app"
	"github.com/abhisek/sightread/internal/auth"
	"github.com/abhisek/sightread/internal/config"
	"github.com/abhisek/sightread/internal/logging"
	"github.com/abhisek/sightread/internal/profile"
	"github.com/abhisek/sightread/internal/screens/deps"
	"github.com/abhisek/sightread/internal/store"
	"github.com/abhisek/sightread/internal/store/postgres"
)

// env is everything a command needs once config, logging and storage
// are open.
type env struct {
	cfg     *config.Config
	logger  zerolog.Logger
	store   *store.Store
	deps    *deps.Deps
	closers []func()
}

// openEnv loads config, opens the log file and the stores, and builds
// the services. Parents and profiles live in Postgres when
// profiles.postgres_url is set.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	e := &env{cfg: cfg}

	logPath := cfg.Log.Path
	if logPath == "" {
		logPath = config.DefaultLogPath()
	}
	logger, logFile, err := logging.OpenFile(logPath, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	e.logger = logger
	e.closers = append(e.closers, func() { logFile.Close() })

	ctx := logging.IntoContext(cmd.Context(), logger)
	cmd.SetContext(ctx)

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.OpenContext(ctx, dbPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.store = st
	e.closers = append(e.closers, func() { st.Close() })

	parents, profiles := st.ParentRepo(), st.ProfileRepo()
	if cfg.Profiles.PostgresURL != "" {
		pg, err := postgres.Open(ctx, cfg.Profiles.PostgresURL)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("open profiles database: %w", err)
		}
		e.closers = append(e.closers, pg.Close)
		parents, profiles = pg.ParentRepo(), pg.ProfileRepo()
		logger.Info().Msg("using postgres for parents and profiles")
	}

	e.deps = &deps.Deps{
		Auth:     auth.NewService(parents, logging.Component(ctx, "auth"), auth.WithSessions(st.SessionRepo())),
		Profiles: profile.NewService(profiles, cfg.Profiles.MaxPerParent, logging.Component(ctx, "profile")),
		Events:   st.EventRepo(),
		Quiz:     cfg.Quiz,
		Logger:   logging.Component(ctx, "tui"),
	}
	logger.Debug().Str("db", dbPath).Msg("environment ready")
	return e, nil
}

// Close releases resources in reverse order of opening.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
	e.closers = nil
}

// runApp opens the environment and launches the TUI at the welcome
// screen.
func runApp(cmd *cobra.Command) error {
	return withEnv(cmd, func(_ context.Context, e *env) error {
		return app.Run(app.Options{Deps: e.deps})
	})
}

// withEnv runs fn with an open environment.
func withEnv(cmd *cobra.Command, fn func(ctx context.Context, e *env) error) error {
	if cmd.Context() == nil {
		cmd.SetContext(context.Background())
	}
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(cmd.Context(), e)
}
