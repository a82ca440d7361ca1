package domain

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

var (
	// ErrIllegalAction is returned when an action is not in the current legal set.
	ErrIllegalAction = errors.New("illegal action")
	// ErrCannotUndo is returned when an undo is requested without a previous state.
	ErrCannotUndo = errors.New("cannot undo")
	// ErrInvalidDeal is returned for pre-dealt hands that do not split the deck.
	ErrInvalidDeal = errors.New("invalid deal")
)

// now stamps events and meta info; tests replace it.
var now = time.Now

// Game wraps the state of one game with its legal actions, undo snapshot and event log.
// A Game is never changed by ApplyAction; each transition yields a new value.
type Game struct {
	Info      MetaInfo `json:"info"`
	State     State    `json:"state"`
	Legal     []Action `json:"legal_actions"`
	LastState *State   `json:"-"`
	Events    []Event  `json:"events"`
}

// NewGame creates a game waiting for all four seats to start. A nil hands deals a freshly
// shuffled deck.
func NewGame(name string, names [SeatCount]string, hands *[SeatCount][]Card) (*Game, error) {
	var dealt [SeatCount][]Card
	if hands == nil {
		dealt = DealHands(nil)
	} else {
		if err := ValidateDeal(*hands); err != nil {
			return nil, err
		}
		for i := range hands {
			dealt[i] = slices.Clone(hands[i])
		}
	}

	g := &Game{
		Info: MetaInfo{
			Name:        name,
			PlayerNames: names,
			CreateTime:  now(),
		},
		State: newState(names, dealt),
	}
	for i := range dealt {
		g.Info.StartCards[i] = slices.Clone(dealt[i])
	}
	g.Legal = legalActions(&g.State, g.LastState)
	return g, nil
}

// LegalActions returns the actions allowed in the current state, in enumeration order.
func (g *Game) LegalActions() []Action {
	out := make([]Action, len(g.Legal))
	for i, a := range g.Legal {
		out[i] = a.clone()
	}
	return out
}

// IsLegal reports whether action may be applied now.
func (g *Game) IsLegal(action Action) bool {
	return containsAction(g.Legal, action.normalized())
}

// ApplyAction returns the game that results from action. g itself is left unchanged.
func (g *Game) ApplyAction(action Action) (*Game, error) {
	action = action.normalized()
	if !containsAction(g.Legal, action) {
		return nil, fmt.Errorf("%w: %s in phase %s", ErrIllegalAction, action, g.State.Phase)
	}

	t, err := g.transition(action)
	if err != nil {
		return nil, err
	}

	events := make([]Event, len(g.Events), len(g.Events)+1)
	for i, e := range g.Events {
		events[i] = e.clone()
	}
	events = append(events, Event{
		Action:           action.clone(),
		Callback:         t.callback,
		NextPlayerAtTurn: t.state.PlayerAtTurn,
		Time:             now(),
	})

	next := &Game{
		Info:      t.info,
		State:     t.state,
		LastState: t.last,
		Events:    events,
	}
	next.Legal = legalActions(&next.State, next.LastState)
	return next, nil
}

// ApplyOrDiscard replaces g with the result of action and reports whether it was applied.
// On error g is left as it was.
func (g *Game) ApplyOrDiscard(action Action) bool {
	next, err := g.ApplyAction(action)
	if err != nil {
		return false
	}
	*g = *next
	return true
}

// WithTrumpPossibility returns a copy of g in which seat may only make the announcements
// allowed by tp.
func (g *Game) WithTrumpPossibility(seat Seat, tp TrumpPossibility) *Game {
	next := g.Clone()
	next.State.Player(seat).Trump = tp
	next.Legal = legalActions(&next.State, next.LastState)
	return next
}

// Clone returns a deep copy of g.
func (g *Game) Clone() *Game {
	out := &Game{
		Info:  g.Info.clone(),
		State: g.State.Clone(),
		Legal: g.LegalActions(),
	}
	if g.LastState != nil {
		last := g.LastState.Clone()
		out.LastState = &last
	}
	out.Events = make([]Event, len(g.Events))
	for i, e := range g.Events {
		out.Events[i] = e.clone()
	}
	return out
}

// Ended reports whether the game is over.
func (g *Game) Ended() bool { return g.State.Phase.Is(PhaseEnded) }

// LastEvent returns the most recent event.
func (g *Game) LastEvent() (Event, bool) {
	if len(g.Events) == 0 {
		return Event{}, false
	}
	return g.Events[len(g.Events)-1], true
}
