package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"marjapussi/internal/domain"
	"marjapussi/internal/ports"
)

// Service contains Marjapussi use-cases operating on domain games.
type Service struct {
	rng     *rand.Rand
	archive ports.ArchivePort
}

// NewService constructs a Service with provided rng or a time-seeded default.
// A nil archive disables storing finished games.
func NewService(rng *rand.Rand, archive ports.ArchivePort) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng, archive: archive}
}

var (
	ErrGameEnded    = errors.New("game already ended")
	ErrNoGame       = errors.New("no active game")
	ErrSeriesEnded  = errors.New("series already ended")
	ErrInvalidCount = errors.New("series needs at least one game")
)

// NewGame deals a fresh game for the four names.
func (s *Service) NewGame(name string, names [domain.SeatCount]string) (*domain.Game, []Event, error) {
	hands := domain.DealHands(s.rng)
	game, err := domain.NewGame(name, names, &hands)
	if err != nil {
		return nil, nil, fmt.Errorf("new game: %w", err)
	}
	events := []Event{{
		Kind:    EventGameCreated,
		Payload: GameCreatedPayload{Name: name, PlayerNames: names},
	}}
	return game, events, nil
}

// Apply applies action to game and returns the next game with the events it caused.
// Finished games are archived when an archive port is configured; an archive failure is
// returned together with the finished game.
func (s *Service) Apply(ctx context.Context, game *domain.Game, action domain.Action) (*domain.Game, []Event, error) {
	if game == nil {
		return nil, nil, ErrNoGame
	}
	if game.Ended() {
		return nil, nil, ErrGameEnded
	}
	next, err := game.ApplyAction(action)
	if err != nil {
		return nil, nil, err
	}

	events := transitionEvents(game, next)
	if !next.Ended() {
		return next, events, nil
	}

	rec := domain.NewArchiveRecord(next)
	payload := GameEndedPayload{Record: rec}
	var archiveErr error
	if s.archive != nil {
		id, err := s.archive.SaveGame(ctx, rec)
		if err != nil {
			archiveErr = fmt.Errorf("archive game %q: %w", rec.Info.Name, err)
		}
		payload.ArchiveID = id
	}
	events = append(events, Event{Kind: EventGameEnded, Payload: payload})
	return next, events, archiveErr
}

// AutoAction picks the action submitted for an idle seat: its first legal action, never
// asking for or agreeing to an undo.
func (s *Service) AutoAction(game *domain.Game, seat domain.Seat) (domain.Action, bool) {
	for _, a := range game.Legal {
		if a.Seat != seat || a.Kind == domain.ActionUndoRequest || a.Kind == domain.ActionUndoAccept {
			continue
		}
		return a, true
	}
	return domain.Action{}, false
}

// WaitingSeats returns the seats that have an action to take, in seat order.
func WaitingSeats(game *domain.Game) []domain.Seat {
	var seats []domain.Seat
	for _, a := range game.Legal {
		if a.Kind == domain.ActionUndoRequest {
			continue
		}
		if !containsSeat(seats, a.Seat) {
			seats = append(seats, a.Seat)
		}
	}
	return seats
}

func containsSeat(seats []domain.Seat, seat domain.Seat) bool {
	for _, s := range seats {
		if s == seat {
			return true
		}
	}
	return false
}

// transitionEvents derives the events between prev and next.
func transitionEvents(prev, next *domain.Game) []Event {
	last, _ := next.LastEvent()
	applied := ActionAppliedPayload{
		Action:       last.Action,
		Callback:     last.Callback,
		Phase:        next.State.Phase,
		PlayerAtTurn: next.State.PlayerAtTurn,
	}
	if last.Action.Kind == domain.ActionPass {
		applied.Hidden = true
		applied.Action.Cards = nil
	}
	events := []Event{{Kind: EventActionApplied, Payload: applied}}

	if !prev.State.Started && next.State.Started {
		events = append(events, Event{
			Kind:    EventGameStarted,
			Payload: GameStartedPayload{Phase: next.State.Phase, PlayerAtTurn: next.State.PlayerAtTurn},
		})
		for seat := domain.Seat(0); seat < domain.SeatCount; seat++ {
			events = append(events, handEvent(next, seat))
		}
		return events
	}

	switch last.Action.Kind {
	case domain.ActionPass:
		events = append(events, handEvent(next, last.Action.Seat), handEvent(next, last.Action.Seat.Partner()))
	case domain.ActionCardPlayed:
		events = append(events, handEvent(next, last.Action.Seat))
		if len(next.State.Tricks) > len(prev.State.Tricks) {
			trick, _ := next.State.LastTrick()
			events = append(events, Event{Kind: EventTrickClosed, Payload: TrickClosedPayload{Trick: trick}})
		}
	case domain.ActionUndoAccept:
		if !next.State.Phase.Is(domain.PhasePendingUndo) {
			events = append(events, Event{
				Kind:    EventUndone,
				Payload: UndonePayload{Phase: next.State.Phase, PlayerAtTurn: next.State.PlayerAtTurn},
			})
			for seat := domain.Seat(0); seat < domain.SeatCount; seat++ {
				events = append(events, handEvent(next, seat))
			}
		}
	}
	return events
}

func handEvent(game *domain.Game, seat domain.Seat) Event {
	hand := append([]domain.Card{}, game.State.Players[seat].Cards...)
	return Event{
		Kind:       EventHandUpdated,
		Payload:    HandUpdatedPayload{Seat: seat, Hand: hand},
		Recipients: []domain.Seat{seat},
	}
}
