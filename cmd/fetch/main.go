package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dfsline/contest-tracker/internal/app"
	"github.com/dfsline/contest-tracker/internal/config"
	"github.com/dfsline/contest-tracker/internal/platform/logging"
	"github.com/dfsline/contest-tracker/internal/usecase"
)

func main() {
	var (
		sport       = flag.String("sport", "", "sport slug, e.g. nba or nfl (required)")
		salaries    = flag.Bool("dk-salaries", false, "ingest salaries for today's draft groups")
		newContests = flag.Bool("dk-new-contests", false, "discover and track new lobby contests")
		results     = flag.String("dk-results", "", "comma-separated contest ids to sync, download and parse")
		update      = flag.Bool("update", false, "full update: new contests, salaries, then results for recent empty contests")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	defer logger.Sync()
	logging.SetDefault(logger)

	if strings.TrimSpace(*sport) == "" {
		fmt.Fprintln(os.Stderr, "-sport is required")
		flag.Usage()
		os.Exit(2)
	}
	if !*salaries && !*newContests && !*update && strings.TrimSpace(*results) == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: pass -dk-salaries, -dk-new-contests, -dk-results or -update")
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	if err := run(ctx, application, logger, *sport, *salaries, *newContests, *results, *update); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, application *app.App, logger *logging.Logger, sport string, salaries, newContests bool, results string, update bool) error {
	allStages := usecase.RunOptions{Detail: true, Download: true, Parse: true}

	if newContests || update {
		ids, err := application.Contests.FindNewContests(ctx, sport)
		if err != nil {
			return err
		}
		logger.Info("contest discovery done", "sport", sport, "tracked", len(ids))
	}

	if salaries || update {
		if err := application.Salaries.Run(ctx, sport, true); err != nil {
			return err
		}
	}

	if ids := splitIDs(results); len(ids) > 0 {
		if err := application.Results.Run(ctx, sport, ids, allStages); err != nil {
			return err
		}
	}

	if update {
		ids, err := application.Results.EmptyContestIDs(ctx, sport)
		if err != nil {
			return err
		}
		logger.Info("updating contests without results", "sport", sport, "contests", len(ids))
		if err := application.Results.Run(ctx, sport, ids, allStages); err != nil {
			return err
		}
	}

	return nil
}

func splitIDs(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			out = append(out, id)
		}
	}
	return out
}
