package app

import (
	"context"
	"fmt"

	"marjapussi/internal/domain"
)

// Series plays a fixed number of games with the same four players. Once a game ends the
// next one is dealt right away.
type Series struct {
	service *Service
	name    string
	names   [domain.SeatCount]string
	total   int
	active  *domain.Game
	results []domain.ArchiveRecord
}

// NewSeries deals the first game of a series of games.
func (s *Service) NewSeries(name string, names [domain.SeatCount]string, games int) (*Series, []Event, error) {
	if games < 1 {
		return nil, nil, ErrInvalidCount
	}
	sr := &Series{service: s, name: name, names: names, total: games}
	events, err := sr.deal()
	if err != nil {
		return nil, nil, err
	}
	return sr, events, nil
}

func (sr *Series) deal() ([]Event, error) {
	index := len(sr.results) + 1
	game, events, err := sr.service.NewGame(fmt.Sprintf("%s #%d", sr.name, index), sr.names)
	if err != nil {
		return nil, err
	}
	for i := range events {
		if p, ok := events[i].Payload.(GameCreatedPayload); ok {
			p.Index = index
			events[i].Payload = p
		}
	}
	sr.active = game
	return events, nil
}

// Active returns the game in progress, or nil once the series is over.
func (sr *Series) Active() *domain.Game { return sr.active }

// ActiveView projects the active game for seat.
func (sr *Series) ActiveView(seat domain.Seat) (domain.PlayerView, bool) {
	if sr.active == nil {
		return domain.PlayerView{}, false
	}
	return domain.NewPlayerView(sr.active, seat), true
}

// Apply applies action to the active game. When that game ends its record is kept and
// the next game is dealt, or the series ends.
func (sr *Series) Apply(ctx context.Context, action domain.Action) ([]Event, error) {
	if sr.active == nil {
		return nil, ErrSeriesEnded
	}
	next, events, err := sr.service.Apply(ctx, sr.active, action)
	if next == nil {
		return nil, err
	}
	sr.active = next
	if !next.Ended() {
		return events, err
	}

	sr.results = append(sr.results, domain.NewArchiveRecord(next))
	if len(sr.results) >= sr.total {
		sr.active = nil
		events = append(events, Event{
			Kind:    EventSeriesEnded,
			Payload: SeriesEndedPayload{Results: sr.Results()},
		})
		return events, err
	}
	dealt, dealErr := sr.deal()
	if dealErr != nil {
		return events, dealErr
	}
	return append(events, dealt...), err
}

// Finished reports whether every game of the series has been played.
func (sr *Series) Finished() bool { return sr.active == nil }

// Played returns how many games have ended.
func (sr *Series) Played() int { return len(sr.results) }

// Results returns the records of the ended games in play order.
func (sr *Series) Results() []domain.ArchiveRecord {
	return append([]domain.ArchiveRecord{}, sr.results...)
}
