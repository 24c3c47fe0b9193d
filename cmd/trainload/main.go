package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/trainload/internal/catalog"
	"github.com/alexanderramin/trainload/internal/cli"
	"github.com/alexanderramin/trainload/internal/config"
	"github.com/alexanderramin/trainload/internal/db"
	"github.com/alexanderramin/trainload/internal/repository"
	"github.com/alexanderramin/trainload/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Built-in catalog unless a YAML override is configured.
	cat, err := catalog.Default()
	if cfg.CatalogPath != "" {
		cat, err = catalog.Load(cfg.CatalogPath)
	}
	if err != nil {
		return fmt.Errorf("loading exercise catalog: %w", err)
	}

	// Wire repositories
	holdRepo := repository.NewSQLiteHoldRepo(database)
	stateRepo := repository.NewSQLiteRehabStateRepo(database)
	rehabSessionRepo := repository.NewSQLiteRehabSessionRepo(database)
	checkInRepo := repository.NewSQLitePainCheckInRepo(database)
	workoutRepo := repository.NewSQLiteWorkoutRepo(database)
	maxRepo := repository.NewSQLiteMaxRecordRepo(database)
	attemptRepo := repository.NewSQLiteMaxAttemptRepo(database)
	missedRepo := repository.NewSQLiteMissedSessionRepo(database)
	flagRepo := repository.NewSQLiteCoachingFlagRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}
	clock := service.SystemClock

	rehabSvc := service.NewRehabService(stateRepo, rehabSessionRepo, checkInRepo, maxRepo, uow, clock, cfg.MinimumRehabSessions, observers...)
	analyticsSvc := service.NewAnalyticsService(workoutRepo, maxRepo, cat, uow, clock, observers...)
	coachingSvc := service.NewCoachingService(service.CoachingRepos{
		Flags:    flagRepo,
		Maxes:    maxRepo,
		Attempts: attemptRepo,
		Missed:   missedRepo,
		Workouts: workoutRepo,
	}, cat, uow, clock, observers...)

	app := &cli.App{
		Holds:         service.NewHoldService(holdRepo, maxRepo, cat, uow, clock, observers...),
		Rehab:         rehabSvc,
		Substitutions: service.NewSubstitutionService(cat, maxRepo, observers...),
		Analytics:     analyticsSvc,
		Coaching:      coachingSvc,
		Catalog:       cat,
		Units:         string(cfg.Units),
		HoldWeeks:     cfg.DefaultHoldWeeks,

		CheckIn:       rehabSvc,
		LogWorkout:    analyticsSvc,
		EvaluateFlags: coachingSvc,

		Now: clock,
	}

	// Prompts only when stdin is a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
