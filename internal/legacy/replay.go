package legacy

import (
	"fmt"

	"marjapussi/internal/domain"
)

// Result is a replayed legacy game.
type Result struct {
	Record domain.ArchiveRecord
	// Mismatches lists summary fields of the legacy game that disagree with the replay.
	Mismatches []string
}

// Replay deals the recorded hands, has every seat press start and applies the recorded
// actions in order. The game must end with the last action.
func Replay(lg Game) (Result, error) {
	hands, names, err := lg.hands()
	if err != nil {
		return Result{}, err
	}
	g, err := domain.NewGame(lg.Name, names, hands)
	if err != nil {
		return Result{}, fmt.Errorf("game %q: %w", lg.Name, err)
	}
	for seat := domain.Seat(0); seat < domain.SeatCount; seat++ {
		if g, err = g.ApplyAction(domain.StartAction(seat)); err != nil {
			return Result{}, fmt.Errorf("game %q: %w", lg.Name, err)
		}
	}

	for i, text := range lg.Actions {
		action, err := ParseAction(text, g.State.Phase)
		if err != nil {
			return Result{}, fmt.Errorf("game %q action %d: %w", lg.Name, i, err)
		}
		if g, err = g.ApplyAction(action); err != nil {
			return Result{}, fmt.Errorf("game %q action %d (%s): %w", lg.Name, i, text, err)
		}
	}
	if !g.Ended() {
		return Result{}, fmt.Errorf("game %q: %w after %d actions", lg.Name, ErrNotEnded, len(lg.Actions))
	}

	if t, ok := parseTime(lg.Created); ok {
		g.Info.CreateTime = t
	}
	if t, ok := parseTime(lg.Started); ok {
		g.Info.StartTime = &t
	}
	if t, ok := parseTime(lg.Finished); ok {
		g.Info.EndTime = &t
	}

	rec := domain.NewArchiveRecord(g)
	return Result{Record: rec, Mismatches: compare(lg, rec)}, nil
}

// compare checks the legacy summary fields that were filled in.
func compare(lg Game, rec domain.ArchiveRecord) []string {
	var out []string
	if lg.GameValue != 0 && domain.Points(lg.GameValue) != rec.GameValue {
		out = append(out, fmt.Sprintf("game_value: legacy %d, replay %d", lg.GameValue, rec.GameValue))
	}
	for seat, name := range rec.Info.PlayerNames {
		want, ok := lg.PlayersPoints[name]
		if ok && domain.Points(want) != rec.Points[seat] {
			out = append(out, fmt.Sprintf("points of %s: legacy %d, replay %d", name, want, rec.Points[seat]))
		}
	}
	if lg.PlayersPoints != nil && lg.Schwarz != rec.Schwarz {
		out = append(out, fmt.Sprintf("schwarz_game: legacy %t, replay %t", lg.Schwarz, rec.Schwarz))
	}
	return out
}
