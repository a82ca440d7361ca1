package app

import (
	"context"
	"errors"
	"testing"

	"marjapussi/internal/domain"
)

func playSeriesGame(t *testing.T, svc *Service, sr *Series) []Event {
	t.Helper()
	game := sr.Active()
	for steps := 0; ; steps++ {
		if steps > 500 {
			t.Fatalf("game did not end")
		}
		seats := WaitingSeats(sr.Active())
		action, ok := svc.AutoAction(sr.Active(), seats[0])
		if !ok {
			t.Fatalf("no automatic action")
		}
		events, err := sr.Apply(context.Background(), action)
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
		if sr.Active() != nil && sr.Active().Info.Name != game.Info.Name {
			return events
		}
		if sr.Finished() {
			return events
		}
	}
}

func TestSeries(t *testing.T) {
	svc := newTestService(nil)
	if _, _, err := svc.NewSeries("s", testNames, 0); !errors.Is(err, ErrInvalidCount) {
		t.Fatalf("zero games error = %v", err)
	}

	sr, events, err := svc.NewSeries("club", testNames, 2)
	if err != nil {
		t.Fatalf("NewSeries: %v", err)
	}
	if p := events[0].Payload.(GameCreatedPayload); p.Index != 1 || p.Name != "club #1" {
		t.Fatalf("first game payload = %+v", p)
	}
	if v, ok := sr.ActiveView(1); !ok || v.Seat != 1 || v.Info.Name != "club #1" {
		t.Fatalf("active view = %+v, %v", v, ok)
	}

	events = playSeriesGame(t, svc, sr)
	if sr.Played() != 1 || sr.Finished() {
		t.Fatalf("played = %d finished = %v", sr.Played(), sr.Finished())
	}
	created := eventsOfKind(events, EventGameCreated)
	if len(created) != 1 || created[0].Payload.(GameCreatedPayload).Index != 2 {
		t.Fatalf("second game not dealt: %+v", events)
	}
	if sr.Active().Info.Name != "club #2" || !sr.Active().State.Phase.Is(domain.PhaseWaitingForStart) {
		t.Fatalf("active game = %q in %s", sr.Active().Info.Name, sr.Active().State.Phase)
	}

	events = playSeriesGame(t, svc, sr)
	if !sr.Finished() || len(sr.Results()) != 2 {
		t.Fatalf("finished = %v results = %d", sr.Finished(), len(sr.Results()))
	}
	if len(eventsOfKind(events, EventSeriesEnded)) != 1 {
		t.Fatalf("series ended event missing: %+v", events)
	}
	if _, ok := sr.ActiveView(0); ok {
		t.Fatalf("view of a finished series")
	}
	if _, err := sr.Apply(context.Background(), domain.StartAction(0)); !errors.Is(err, ErrSeriesEnded) {
		t.Fatalf("apply after series error = %v", err)
	}
}
