// Command legacyimport replays games exported by the old server and writes them as archive
// records, optionally storing them in Postgres.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"marjapussi/internal/domain"
	"marjapussi/internal/legacy"
	"marjapussi/internal/ports/postgres"
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func asBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func main() {
	_ = godotenv.Load()

	out := flag.String("out", "", "output file, defaults to new-<input> next to the input")
	store := flag.Bool("store", false, "store the records in DATABASE_URL")
	strict := flag.Bool("strict", false, "fail on games that cannot be replayed")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if flag.NArg() != 1 {
		logger.Fatal("expected exactly one input file")
	}
	input := flag.Arg(0)
	if *out == "" {
		*out = filepath.Join(filepath.Dir(input), "new-"+filepath.Base(input))
	}

	if err := run(context.Background(), logger, input, *out, *store, *strict); err != nil {
		logger.Fatal("import failed", zap.String("file", input), zap.Error(err))
	}
}

func run(ctx context.Context, logger *zap.Logger, input, output string, store, strict bool) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	games, err := legacy.DecodeAll(data)
	if err != nil {
		return err
	}

	var archive *postgres.ArchiveStore
	if store {
		dsn := getenv("DATABASE_URL", "")
		if dsn == "" {
			return fmt.Errorf("DATABASE_URL is required with -store")
		}
		if archive, err = postgres.Open(ctx, dsn); err != nil {
			return err
		}
		defer archive.Close()
		if asBool(os.Getenv("AUTO_MIGRATE")) {
			if err := archive.Migrate(ctx); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}
	}

	records := make([]domain.ArchiveRecord, 0, len(games))
	for i, lg := range games {
		res, err := legacy.Replay(lg)
		if err != nil {
			if strict {
				return err
			}
			logger.Warn("skipping game", zap.Int("index", i), zap.String("game", lg.Name), zap.Error(err))
			continue
		}
		for _, m := range res.Mismatches {
			logger.Warn("replay differs from legacy summary", zap.Int("index", i), zap.String("game", lg.Name), zap.String("field", m))
		}
		if archive != nil {
			id, err := archive.SaveGame(ctx, res.Record)
			if err != nil {
				return fmt.Errorf("store game %q: %w", lg.Name, err)
			}
			logger.Debug("stored game", zap.String("game", lg.Name), zap.Int64("id", id))
		}
		records = append(records, res.Record)
	}

	encoded, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, encoded, 0o644); err != nil {
		return err
	}
	logger.Info("import finished",
		zap.String("file", input),
		zap.String("out", output),
		zap.Int("games", len(games)),
		zap.Int("converted", len(records)),
	)
	return nil
}
