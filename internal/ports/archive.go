package ports

import (
	"context"

	"marjapussi/internal/domain"
)

// ArchivePort defines the interface for storing finished games.
type ArchivePort interface {
	// SaveGame stores the record of a finished game and returns its archive ID.
	// Returns an error if the record could not be written.
	SaveGame(ctx context.Context, rec domain.ArchiveRecord) (int64, error)
}
