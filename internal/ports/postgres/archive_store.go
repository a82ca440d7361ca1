package postgres

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"marjapussi/internal/domain"
	"marjapussi/internal/ports"
)

//go:embed schema.sql
var schema embed.FS

// ErrNotFound is returned when no archived game has the requested ID.
var ErrNotFound = errors.New("archived game not found")

// ArchiveStore keeps finished games in Postgres.
type ArchiveStore struct {
	pool *pgxpool.Pool
}

var _ ports.ArchivePort = (*ArchiveStore)(nil)

// Open connects to the database at dsn.
func Open(ctx context.Context, dsn string) (*ArchiveStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect archive db: %w", err)
	}
	return NewArchiveStore(pool), nil
}

// NewArchiveStore wraps an existing pool.
func NewArchiveStore(pool *pgxpool.Pool) *ArchiveStore {
	return &ArchiveStore{pool: pool}
}

func (s *ArchiveStore) Close()                         { s.pool.Close() }
func (s *ArchiveStore) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

// Migrate creates the archive tables if they are missing.
func (s *ArchiveStore) Migrate(ctx context.Context) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, string(sqlBytes))
	return err
}

// gameRow holds the column values of one archived game.
type gameRow struct {
	name         string
	gameValue    int
	noOnePlayed  bool
	schwarz      bool
	playingParty *int16
	won          *bool
	createdAt    time.Time
	startedAt    *time.Time
	endedAt      *time.Time
	record       []byte
}

func newGameRow(rec domain.ArchiveRecord) (gameRow, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return gameRow{}, fmt.Errorf("encode archive record: %w", err)
	}
	row := gameRow{
		name:        rec.Info.Name,
		gameValue:   int(rec.GameValue),
		noOnePlayed: rec.NoOnePlayed,
		schwarz:     rec.Schwarz,
		won:         rec.Won,
		createdAt:   rec.Info.CreateTime,
		startedAt:   rec.Info.StartTime,
		endedAt:     rec.Info.EndTime,
		record:      data,
	}
	if rec.PlayingParty != nil {
		party := int16(*rec.PlayingParty)
		row.playingParty = &party
	}
	return row, nil
}

// SaveGame inserts a finished game and returns its ID.
func (s *ArchiveStore) SaveGame(ctx context.Context, rec domain.ArchiveRecord) (int64, error) {
	row, err := newGameRow(rec)
	if err != nil {
		return 0, err
	}
	var id int64
	err = s.pool.QueryRow(ctx, `
		INSERT INTO archived_games(name, game_value, no_one_played, schwarz, playing_party, won,
		                           created_at, started_at, ended_at, record)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id
	`, row.name, row.gameValue, row.noOnePlayed, row.schwarz, row.playingParty, row.won,
		row.createdAt, row.startedAt, row.endedAt, row.record).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert archived game: %w", err)
	}
	return id, nil
}

// FindGame loads the record stored under id.
func (s *ArchiveStore) FindGame(ctx context.Context, id int64) (domain.ArchiveRecord, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT record FROM archived_games WHERE id = $1`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ArchiveRecord{}, ErrNotFound
		}
		return domain.ArchiveRecord{}, fmt.Errorf("select archived game: %w", err)
	}
	var rec domain.ArchiveRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.ArchiveRecord{}, fmt.Errorf("decode archive record: %w", err)
	}
	return rec, nil
}

// CountGames returns how many games named name are archived.
func (s *ArchiveStore) CountGames(ctx context.Context, name string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM archived_games WHERE name = $1`, name).Scan(&n)
	return n, err
}
