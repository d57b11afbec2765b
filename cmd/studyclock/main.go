package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/studyclock/internal/advisor"
	"github.com/alexanderramin/studyclock/internal/auth"
	"github.com/alexanderramin/studyclock/internal/cli"
	"github.com/alexanderramin/studyclock/internal/config"
	"github.com/alexanderramin/studyclock/internal/db"
	"github.com/alexanderramin/studyclock/internal/domain"
	"github.com/alexanderramin/studyclock/internal/repository"
	"github.com/alexanderramin/studyclock/internal/service"
	"github.com/alexanderramin/studyclock/internal/tracker"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	paths, err := config.DefaultPaths()
	if err != nil {
		return err
	}
	cfg, err := config.Load(paths)
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	userRepo := repository.NewSQLiteUserRepo(database)
	sessionRepo := repository.NewSQLiteStudySessionRepo(database)
	recordRepo := repository.NewSQLiteTestRecordRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.Log {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	key := []byte(cfg.SigningKey)
	if len(key) == 0 {
		if key, err = auth.LoadOrCreateKey(cfg.KeyFile); err != nil {
			return fmt.Errorf("loading signing key: %w", err)
		}
	}
	provider := auth.NewProvider(userRepo, auth.NewTokenStore(cfg.TokenFile, key))
	if cfg.Log {
		unsubscribe := provider.OnAuthChange(func(u *domain.User) {
			if u != nil {
				fmt.Fprintf(os.Stderr, "auth: signed in as %s\n", u.Email)
			}
		})
		defer unsubscribe()
	}

	// The advisor is optional; without it analytics use the built-in
	// defaults and canned feedback.
	var advisorClient advisor.Client
	advisorCfg := cfg.AdvisorConfig()
	if advisorCfg.Enabled {
		var observer advisor.Observer = advisor.NoopObserver{}
		if advisorCfg.LogCalls {
			observer = advisor.NewLogObserver(os.Stderr)
		}
		advisorClient = advisor.NewHTTPClient(advisorCfg, observer)
	}

	store := service.NewSessionStore(sessionRepo, uow, observers...)
	app := &cli.App{
		Auth:      provider,
		Sessions:  store,
		Analytics: service.NewAnalyticsService(store, advisorClient, observers...),
		Quiz:      service.NewQuizService(recordRepo, uow, observers...),
		Clock:     tracker.SystemClock{},
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
