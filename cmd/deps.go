package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/knowtest/internal/app"
	"github.com/abhisek/knowtest/internal/catalog"
	"github.com/abhisek/knowtest/internal/config"
	"github.com/abhisek/knowtest/internal/logger"
	"github.com/abhisek/knowtest/internal/session"
	"github.com/abhisek/knowtest/internal/store"
)

// deps is what every session command needs: config, a logger, the SQLite
// store (always open, it holds the answer history) and the snapshot backend
// selected by KNOWTEST_STORE.
type deps struct {
	cfg     config.Config
	log     *logger.Logger
	db      *store.Store
	backend store.Backend
}

func openDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogMode, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	d := &deps{cfg: cfg, log: log, db: db}
	d.backend, err = openBackend(cmd.Context(), cfg, db, log)
	if err != nil {
		db.Close()
		return nil, err
	}
	log.Debug("store opened", "backend", cfg.Store, "db", dbPath)
	return d, nil
}

func openBackend(ctx context.Context, cfg config.Config, db *store.Store, log *logger.Logger) (store.Backend, error) {
	switch cfg.Store {
	case config.StoreFile:
		dir := cfg.StateDir
		if dir == "" {
			var err error
			if dir, err = store.DefaultStateDir(); err != nil {
				return nil, fmt.Errorf("resolve state dir: %w", err)
			}
		}
		return store.NewFileStore(dir, log)
	case config.StoreRedis:
		return store.NewRedisStore(ctx, cfg.RedisURL, log)
	default:
		return db, nil
	}
}

func (d *deps) Close() {
	if d.backend != store.Backend(d.db) {
		d.backend.Close()
	}
	d.db.Close()
	d.log.Sync()
}

// loadCatalog reads the data directory and applies the topic filter.
func (d *deps) loadCatalog(filter catalog.Filter) (*catalog.Catalog, error) {
	records, err := catalog.LoadDir(d.cfg.DataDir, d.log)
	if err != nil {
		return nil, err
	}
	return catalog.New(records, filter)
}

func (d *deps) policy() (session.Policy, error) {
	exhausted, err := session.ParseExhaustedPolicy(d.cfg.ExhaustedPolicy)
	if err != nil {
		return session.Policy{}, err
	}
	return session.Policy{
		PassThreshold: d.cfg.PassThreshold,
		FailThreshold: d.cfg.FailThreshold,
		Exhausted:     exhausted,
	}, nil
}

// newEngine wires the engine to the backend and appends every turn to the
// answer history under a fresh run id.
func (d *deps) newEngine(cat *catalog.Catalog, state *session.State) (*session.Engine, error) {
	policy, err := d.policy()
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	events := d.db.Events()
	log := d.log.With("test", state.TestName, "run", runID)

	observer := session.TurnObserverFunc(func(ctx context.Context, testName string, turn session.Turn) {
		err := events.AppendAnswerEvent(ctx, store.AnswerEventData{
			RunID:      runID,
			TestName:   testName,
			Topic:      turn.Topic,
			Level:      int(turn.Level),
			QuestionID: turn.QuestionID,
			Outcome:    turn.Outcome.String(),
			Verdict:    turn.Verdict.String(),
		})
		if err != nil {
			log.Warn("answer event not recorded", "error", err)
		}
	})

	return session.NewEngine(cat, state,
		session.WithPolicy(policy),
		session.WithPersister(d.backend),
		session.WithLogger(log),
		session.WithObserver(observer),
	), nil
}

// runSession drives the engine in the terminal UI or in line mode.
func (d *deps) runSession(cmd *cobra.Command, engine *session.Engine, tui, resumed bool) error {
	if tui {
		return app.Run(cmd.Context(), app.Options{Engine: engine, Log: d.log, Resumed: resumed})
	}
	return runPlain(cmd.Context(), engine, cmd.InOrStdin(), cmd.OutOrStdout())
}

// loadState restores a saved session against the full catalog.
func (d *deps) loadState(ctx context.Context, name string) (*catalog.Catalog, *session.State, error) {
	snap, err := d.backend.Load(ctx, name)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, nil, fmt.Errorf("no saved session named %q", name)
		}
		return nil, nil, err
	}
	cat, err := d.loadCatalog(catalog.Filter{})
	if err != nil {
		return nil, nil, err
	}
	state, err := session.Restore(cat, snap)
	if err != nil {
		return nil, nil, err
	}
	return cat, state, nil
}
