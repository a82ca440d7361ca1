package app

import "marjapussi/internal/domain"

// EventKind identifies emitted game events for Nakama dispatch.
type EventKind string

const (
	EventGameCreated   EventKind = "game_created"
	EventGameStarted   EventKind = "game_started"
	EventHandUpdated   EventKind = "hand_updated"
	EventActionApplied EventKind = "action_applied"
	EventTrickClosed   EventKind = "trick_closed"
	EventUndone        EventKind = "undone"
	EventGameEnded     EventKind = "game_ended"
	EventSeriesEnded   EventKind = "series_ended"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []domain.Seat // empty means broadcast
}

type GameCreatedPayload struct {
	Name        string
	PlayerNames [domain.SeatCount]string
	Index       int
}

type GameStartedPayload struct {
	Phase        domain.Phase
	PlayerAtTurn domain.Seat
}

type HandUpdatedPayload struct {
	Seat domain.Seat
	Hand []domain.Card
}

// ActionAppliedPayload describes one applied action. Passed cards are never included.
type ActionAppliedPayload struct {
	Action       domain.Action
	Hidden       bool
	Callback     *domain.Callback
	Phase        domain.Phase
	PlayerAtTurn domain.Seat
}

type TrickClosedPayload struct {
	Trick domain.FinishedTrick
}

type UndonePayload struct {
	Phase        domain.Phase
	PlayerAtTurn domain.Seat
}

type GameEndedPayload struct {
	Record    domain.ArchiveRecord
	ArchiveID int64
}

type SeriesEndedPayload struct {
	Results []domain.ArchiveRecord
}
