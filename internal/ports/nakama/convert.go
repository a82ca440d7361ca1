package nakama

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"marjapussi/internal/app"
	"marjapussi/internal/domain"
)

const (
	labelPhaseLobby    = "lobby"
	labelPhaseFinished = "finished"
)

type gameCreatedMessage struct {
	Name        string                   `json:"name"`
	PlayerNames [domain.SeatCount]string `json:"player_names"`
	Index       int                      `json:"index"`
}

type phaseMessage struct {
	Phase        domain.Phase `json:"phase"`
	PlayerAtTurn domain.Seat  `json:"player_at_turn"`
}

type actionAppliedMessage struct {
	Action       domain.Action    `json:"action"`
	Hidden       bool             `json:"hidden"`
	Callback     *domain.Callback `json:"callback,omitempty"`
	Phase        domain.Phase     `json:"phase"`
	PlayerAtTurn domain.Seat      `json:"player_at_turn"`
}

type handUpdatedMessage struct {
	Seat domain.Seat   `json:"seat"`
	Hand []domain.Card `json:"hand"`
}

type trickClosedMessage struct {
	Trick domain.FinishedTrick `json:"trick"`
}

type gameEndedMessage struct {
	Record    domain.ArchiveRecord `json:"record"`
	ArchiveID int64                `json:"archive_id,omitempty"`
}

type seriesEndedMessage struct {
	Results []domain.ArchiveRecord `json:"results"`
}

// SeatInfo describes one seat of the match for OpSeatsUpdated.
type SeatInfo struct {
	Seat      int    `json:"seat"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Connected bool   `json:"connected"`
}

type seatsMessage struct {
	Seats  []SeatInfo `json:"seats"`
	Played int        `json:"played"`
	Total  int        `json:"total"`
}

// encodeEvent maps an app event to its op code and JSON payload.
func encodeEvent(ev app.Event) (int64, []byte, error) {
	var opCode int64
	var msg any

	switch p := ev.Payload.(type) {
	case app.GameCreatedPayload:
		opCode = OpGameCreated
		msg = gameCreatedMessage{Name: p.Name, PlayerNames: p.PlayerNames, Index: p.Index}
	case app.GameStartedPayload:
		opCode = OpGameStarted
		msg = phaseMessage{Phase: p.Phase, PlayerAtTurn: p.PlayerAtTurn}
	case app.ActionAppliedPayload:
		opCode = OpActionApplied
		msg = actionAppliedMessage{
			Action:       p.Action,
			Hidden:       p.Hidden,
			Callback:     p.Callback,
			Phase:        p.Phase,
			PlayerAtTurn: p.PlayerAtTurn,
		}
	case app.HandUpdatedPayload:
		opCode = OpHandUpdated
		msg = handUpdatedMessage{Seat: p.Seat, Hand: p.Hand}
	case app.TrickClosedPayload:
		opCode = OpTrickClosed
		msg = trickClosedMessage{Trick: p.Trick}
	case app.UndonePayload:
		opCode = OpUndone
		msg = phaseMessage{Phase: p.Phase, PlayerAtTurn: p.PlayerAtTurn}
	case app.GameEndedPayload:
		opCode = OpGameEnded
		msg = gameEndedMessage{Record: p.Record, ArchiveID: p.ArchiveID}
	case app.SeriesEndedPayload:
		opCode = OpSeriesEnded
		msg = seriesEndedMessage{Results: p.Results}
	default:
		return 0, nil, fmt.Errorf("unknown event kind %q", ev.Kind)
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal %s: %w", ev.Kind, err)
	}
	return opCode, data, nil
}

// buildLabel renders the match label used by the quick-match query.
func buildLabel(open int, phase string) (string, error) {
	label, err := structpb.NewStruct(map[string]interface{}{
		"game":  labelGameValue,
		"open":  open,
		"phase": phase,
	})
	if err != nil {
		return "", err
	}
	b, err := (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(label)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// buildError renders an OpGameError payload.
func buildError(code int, message string) ([]byte, error) {
	payload, err := structpb.NewStruct(map[string]interface{}{
		"code":    code,
		"message": message,
	})
	if err != nil {
		return nil, err
	}
	return protojson.Marshal(payload)
}
