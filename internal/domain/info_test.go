package domain

import (
	"encoding/json"
	"slices"
	"strings"
	"testing"
)

func TestPlayerViewBeforeStart(t *testing.T) {
	g := mustApply(t, newTestGame(t), StartAction(3))
	v := NewPlayerView(g, 1)

	if v.OwnCards != nil {
		t.Fatalf("own cards shown before the game started")
	}
	if v.PlayersFromPerspective != [SeatCount]string{"Bert", "Cleo", "Dan", "Ada"} {
		t.Fatalf("perspective = %v", v.PlayersFromPerspective)
	}
	if !slices.Equal(v.PlayersPressedStart, []string{"Dan"}) {
		t.Fatalf("pressed start = %v", v.PlayersPressedStart)
	}
	if len(v.LegalActions) != 1 || !v.LegalActions[0].Equal(StartAction(1)) {
		t.Fatalf("legal actions = %v", v.LegalActions)
	}
	if v.LastEvent == nil || v.LastEvent.Hidden || v.LastEvent.Event.Action.Kind != ActionStart {
		t.Fatalf("last event = %+v", v.LastEvent)
	}
}

func TestPlayerViewHidesPass(t *testing.T) {
	g := toPassing(t)
	g = mustApply(t, g, g.Legal[0])
	v := NewPlayerView(g, 1)

	if v.LastEvent == nil || !v.LastEvent.Hidden || v.LastEvent.Event != nil {
		t.Fatalf("pass not hidden: %+v", v.LastEvent)
	}
	if v.CardCounts != [SeatCount]int{9, 5, 9, 13} {
		t.Fatalf("card counts = %v", v.CardCounts)
	}
	if !slices.Equal(v.OwnCards, g.State.Players[1].Cards) {
		t.Fatalf("own cards = %v", v.OwnCards)
	}
	if v.PlayerAtTurn != "Ada" {
		t.Fatalf("player at turn = %q", v.PlayerAtTurn)
	}

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal view: %v", err)
	}
	if strings.Contains(string(data), "start_cards") {
		t.Fatalf("view leaks the dealt hands: %s", data)
	}
}

func TestArchiveUnfinishedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	NewArchiveRecord(newTestGame(t))
}

func TestArchiveRedTrumpBonus(t *testing.T) {
	g := mustApply(t, toStartTrick(t), AnnounceTrumpAction(0, Red))
	rec := NewArchiveRecord(playOut(t, g))

	tricks := PointsPerSeat(rec.Tricks)
	for seat := range rec.Points {
		want := tricks[seat]
		if seat == 0 {
			want += 100
		}
		if rec.Points[seat] != want {
			t.Fatalf("seat %d points = %d, want %d", seat, rec.Points[seat], want)
		}
	}
	if !rec.NoOnePlayed || rec.Won != nil || rec.PlayingParty != nil || rec.PassedCards != nil {
		t.Fatalf("uncontested game reported a playing party: %+v", rec)
	}
}

func TestArchivePlayedGame(t *testing.T) {
	g := toPassing(t)
	forth := g.Legal[0]
	g = mustApply(t, g, forth)
	back := g.Legal[0]
	g = mustApply(t, g, back)

	afterPassing := [SeatCount][]Card{}
	for i, p := range g.State.Players {
		afterPassing[i] = slices.Clone(p.Cards)
		SortHand(afterPassing[i])
	}

	rec := NewArchiveRecord(playOut(t, g))
	if rec.NoOnePlayed || rec.GameValue != 120 {
		t.Fatalf("no one played = %v value = %d", rec.NoOnePlayed, rec.GameValue)
	}
	if rec.PlayingSeat == nil || *rec.PlayingSeat != 0 || rec.PlayingParty == nil || *rec.PlayingParty != 0 {
		t.Fatalf("playing seat = %v party = %v", rec.PlayingSeat, rec.PlayingParty)
	}
	if rec.PassedCards == nil || !slices.Equal(rec.PassedCards.Forth, forth.Cards) || !slices.Equal(rec.PassedCards.Back, back.Cards) {
		t.Fatalf("passed cards = %+v", rec.PassedCards)
	}
	if rec.AfterPassing == nil {
		t.Fatalf("after passing missing")
	}
	for i := range afterPassing {
		got := slices.Clone(rec.AfterPassing[i])
		SortHand(got)
		if !slices.Equal(got, afterPassing[i]) {
			t.Fatalf("seat %d after passing = %v, want %v", i, got, afterPassing[i])
		}
	}
	won := rec.Points[0]+rec.Points[2] >= 120
	if rec.Won == nil || *rec.Won != won {
		t.Fatalf("won = %v, want %v", rec.Won, won)
	}

	partyZero := 0
	for _, tr := range rec.Tricks {
		if tr.Winner%2 == 0 {
			partyZero++
		}
	}
	if rec.Schwarz != (partyZero == 0 || partyZero == HandSize) {
		t.Fatalf("schwarz = %v with %d tricks for party 0", rec.Schwarz, partyZero)
	}

	if _, err := json.Marshal(rec); err != nil {
		t.Fatalf("marshal record: %v", err)
	}
}
