package domain

import "time"

// CallbackKind describes information that follows from an action but is not part of it.
type CallbackKind string

const (
	// CallbackNewTrump reports a suit that became trump for the first time.
	CallbackNewTrump CallbackKind = "new_trump"
	// CallbackStillTrump reports a suit that was asked for again and stays trump.
	CallbackStillTrump CallbackKind = "still_trump"
	// CallbackNoHalf reports that the partner holds no half of the asked suit.
	CallbackNoHalf CallbackKind = "no_half"
	// CallbackOnlyHalf reports that both partners together hold only a half.
	CallbackOnlyHalf CallbackKind = "only_half"
)

// Callback carries the side information of an event.
type Callback struct {
	Kind CallbackKind `json:"kind"`
	Suit Suit         `json:"suit"`
}

// Event is one entry of the append-only game log.
type Event struct {
	Action           Action    `json:"action"`
	Callback         *Callback `json:"callback,omitempty"`
	NextPlayerAtTurn Seat      `json:"next_player_at_turn"`
	Time             time.Time `json:"time"`
}

func (e Event) clone() Event {
	out := e
	out.Action = e.Action.clone()
	if e.Callback != nil {
		cb := *e.Callback
		out.Callback = &cb
	}
	return out
}
