package domain

import (
	"fmt"
	"slices"
	"time"
)

// FinishedTrick is a closed trick with its winner and point value.
type FinishedTrick struct {
	Cards  [SeatCount]Card `json:"cards"`
	Winner Seat            `json:"winner"`
	Points Points          `json:"points"`
}

// State is the rules state of one game.
type State struct {
	Phase             Phase             `json:"phase"`
	Started           bool              `json:"started"`
	PlayersStarted    []Seat            `json:"players_started"`
	PlayersAcceptUndo []Seat            `json:"players_accept_undo"`
	BiddingPlayers    int               `json:"bidding_players"`
	BiddingHistory    []Action          `json:"bidding_history"`
	Trump             *Suit             `json:"trump,omitempty"`
	TrumpCalled       []Suit            `json:"trump_called"`
	PlayerAtTurn      Seat              `json:"player_at_turn"`
	Players           [SeatCount]Player `json:"players"`
	Value             Points            `json:"value"`
	Tricks            []FinishedTrick   `json:"tricks"`
	CurrentTrick      []Card            `json:"current_trick"`
	// Questioner is the seat waiting for an answer while in an answering phase.
	Questioner        *Seat             `json:"questioner,omitempty"`
}

func newState(names [SeatCount]string, hands [SeatCount][]Card) State {
	st := State{
		Phase:          simplePhase(PhaseWaitingForStart),
		BiddingPlayers: SeatCount,
		Value:          BaseValue,
	}
	for i := range st.Players {
		st.Players[i] = newPlayer(names[i], Seat(i), hands[i])
	}
	return st
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	out.Phase = s.Phase.clone()
	out.PlayersStarted = slices.Clone(s.PlayersStarted)
	out.PlayersAcceptUndo = slices.Clone(s.PlayersAcceptUndo)
	if s.BiddingHistory != nil {
		out.BiddingHistory = make([]Action, len(s.BiddingHistory))
		for i, a := range s.BiddingHistory {
			out.BiddingHistory[i] = a.clone()
		}
	}
	if s.Trump != nil {
		t := *s.Trump
		out.Trump = &t
	}
	out.TrumpCalled = slices.Clone(s.TrumpCalled)
	for i := range s.Players {
		out.Players[i] = s.Players[i].clone()
	}
	out.Tricks = slices.Clone(s.Tricks)
	out.CurrentTrick = slices.Clone(s.CurrentTrick)
	if s.Questioner != nil {
		q := *s.Questioner
		out.Questioner = &q
	}
	return out
}

// Player returns the player sitting at seat.
func (s *State) Player(seat Seat) *Player {
	if seat >= SeatCount {
		panic(fmt.Sprintf("seat %d out of range", seat))
	}
	return &s.Players[seat]
}

// Mover returns the player whose turn it is.
func (s *State) Mover() *Player { return s.Player(s.PlayerAtTurn) }

// TableTrick returns the cards of the trick in progress. A closed trick still lying
// on the table counts as empty.
func (s *State) TableTrick() []Card {
	if len(s.CurrentTrick) >= SeatCount {
		return nil
	}
	return slices.Clone(s.CurrentTrick)
}

// LastTrick returns the most recently closed trick.
func (s *State) LastTrick() (FinishedTrick, bool) {
	if len(s.Tricks) == 0 {
		return FinishedTrick{}, false
	}
	return s.Tricks[len(s.Tricks)-1], true
}

// trumpCalled reports whether suit was announced before.
func (s *State) trumpCalled(suit Suit) bool { return ContainsSuit(s.TrumpCalled, suit) }

func (s *State) setTrump(suit Suit) { s.Trump = &suit }

// nextBidder returns the first seat after from that is still bidding. It returns from
// itself when nobody else is.
func (s *State) nextBidder(from Seat) Seat {
	next := from.Next()
	for i := 0; i < SeatCount && !s.Players[next].Bidding; i++ {
		next = next.Next()
	}
	return next
}

// MetaInfo identifies a game and freezes the hands it was dealt.
type MetaInfo struct {
	Name        string            `json:"name"`
	PlayerNames [SeatCount]string `json:"player_names"`
	CreateTime  time.Time         `json:"create_time"`
	StartTime   *time.Time        `json:"start_time,omitempty"`
	EndTime     *time.Time        `json:"end_time,omitempty"`
	StartCards  [SeatCount][]Card `json:"start_cards"`
}

func (m MetaInfo) clone() MetaInfo {
	out := m
	if m.StartTime != nil {
		t := *m.StartTime
		out.StartTime = &t
	}
	if m.EndTime != nil {
		t := *m.EndTime
		out.EndTime = &t
	}
	for i := range m.StartCards {
		out.StartCards[i] = slices.Clone(m.StartCards[i])
	}
	return out
}
