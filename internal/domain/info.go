package domain

import (
	"slices"
	"time"
)

// ViewInfo is the public part of MetaInfo. The dealt hands are left out.
type ViewInfo struct {
	Name        string            `json:"name"`
	PlayerNames [SeatCount]string `json:"player_names"`
	CreateTime  time.Time         `json:"create_time"`
	StartTime   *time.Time        `json:"start_time,omitempty"`
	EndTime     *time.Time        `json:"end_time,omitempty"`
}

// ViewEvent is the last event as seen by a seat. Passes are shown as hidden events.
type ViewEvent struct {
	Hidden bool   `json:"hidden"`
	Event  *Event `json:"event,omitempty"`
}

// PlayerView is everything one seat may know about a game.
type PlayerView struct {
	Info                   ViewInfo          `json:"info"`
	Seat                   Seat              `json:"seat"`
	PlayersPressedStart    []string          `json:"players_pressed_start"`
	PlayersFromPerspective [SeatCount]string `json:"players_from_perspective"`
	PlayerAtTurn           string            `json:"player_at_turn"`
	OwnCards               []Card            `json:"own_cards,omitempty"`
	CardCounts             [SeatCount]int    `json:"card_counts"`
	Phase                  Phase             `json:"phase"`
	Value                  Points            `json:"value"`
	Trump                  *Suit             `json:"trump,omitempty"`
	TrumpCalled            []Suit            `json:"trump_called"`
	BiddingHistory         []Action          `json:"bidding_history"`
	CurrentTrick           []Card            `json:"current_trick"`
	LastTrick              *FinishedTrick    `json:"last_trick,omitempty"`
	LastEvent              *ViewEvent        `json:"last_event,omitempty"`
	LegalActions           []Action          `json:"legal_actions"`
}

// NewPlayerView projects g for seat. Seat-relative lists start with seat itself.
func NewPlayerView(g *Game, seat Seat) PlayerView {
	st := g.State.Clone()
	v := PlayerView{
		Info: ViewInfo{
			Name:        g.Info.Name,
			PlayerNames: g.Info.PlayerNames,
			CreateTime:  g.Info.CreateTime,
		},
		Seat:           seat,
		PlayerAtTurn:   st.Mover().Name,
		Phase:          st.Phase,
		Value:          st.Value,
		Trump:          st.Trump,
		TrumpCalled:    st.TrumpCalled,
		BiddingHistory: st.BiddingHistory,
		CurrentTrick:   st.CurrentTrick,
	}
	info := g.Info.clone()
	v.Info.StartTime, v.Info.EndTime = info.StartTime, info.EndTime

	for _, s := range st.PlayersStarted {
		v.PlayersPressedStart = append(v.PlayersPressedStart, st.Player(s).Name)
	}
	for i := 0; i < SeatCount; i++ {
		other := (seat + Seat(i)) % SeatCount
		v.PlayersFromPerspective[i] = st.Player(other).Name
		v.CardCounts[i] = len(st.Player(other).Cards)
	}
	if st.Started {
		v.OwnCards = st.Player(seat).Cards
	}
	if last, ok := st.LastTrick(); ok {
		v.LastTrick = &last
	}
	if e, ok := g.LastEvent(); ok {
		if e.Action.Kind == ActionPass {
			v.LastEvent = &ViewEvent{Hidden: true}
		} else {
			ev := e.clone()
			v.LastEvent = &ViewEvent{Event: &ev}
		}
	}
	for _, a := range g.Legal {
		if a.Seat == seat {
			v.LegalActions = append(v.LegalActions, a.clone())
		}
	}
	return v
}

// PassedCards are the two bundles moved between the playing seat and its partner.
type PassedCards struct {
	Forth []Card `json:"forth"`
	Back  []Card `json:"back"`
}

// ArchiveRecord is the storage projection of a finished game.
type ArchiveRecord struct {
	Info           MetaInfo           `json:"info"`
	GameValue      Points             `json:"game_value"`
	Won            *bool              `json:"won"`
	NoOnePlayed    bool               `json:"no_one_played"`
	Schwarz        bool               `json:"schwarz_game"`
	PlayingParty   *Seat              `json:"playing_party"`
	PlayingSeat    *Seat              `json:"playing_seat"`
	Points         [SeatCount]Points  `json:"points"`
	AfterPassing   *[SeatCount][]Card `json:"after_passing"`
	PassedCards    *PassedCards       `json:"passed_cards"`
	BiddingHistory []Action           `json:"bidding_history"`
	Tricks         []FinishedTrick    `json:"tricks"`
	Events         []Event            `json:"events"`
}

// NewArchiveRecord reconstructs the result of a finished game. It panics when g has not
// ended.
func NewArchiveRecord(g *Game) ArchiveRecord {
	if !g.Ended() {
		panic("cannot archive unfinished game")
	}
	c := g.Clone()
	st := &c.State
	rec := ArchiveRecord{
		Info:           c.Info,
		GameValue:      st.Value,
		NoOnePlayed:    st.Value == BaseValue,
		Points:         PointsPerSeat(st.Tricks),
		BiddingHistory: st.BiddingHistory,
		Tricks:         st.Tricks,
		Events:         c.Events,
	}

	partyZero := 0
	for _, t := range st.Tricks {
		if t.Winner.Party() == 0 {
			partyZero++
		}
	}
	rec.Schwarz = partyZero == 0 || partyZero == len(st.Tricks)

	var passes [][]Card
	for _, e := range c.Events {
		if e.Callback != nil && e.Callback.Kind == CallbackNewTrump {
			rec.Points[e.Action.Seat] += PairPoints(e.Callback.Suit)
		}
		if e.Action.Kind == ActionPass {
			passes = append(passes, e.Action.Cards)
		}
	}

	if rec.NoOnePlayed {
		return rec
	}
	for i := len(st.BiddingHistory) - 1; i >= 0; i-- {
		if a := st.BiddingHistory[i]; a.Kind == ActionNewBid {
			seat, party := a.Seat, a.Seat.Party()
			rec.PlayingSeat, rec.PlayingParty = &seat, &party
			break
		}
	}
	if rec.PlayingSeat == nil {
		return rec
	}
	player := *rec.PlayingSeat
	partyPoints := rec.Points[player] + rec.Points[player.Partner()]
	won := partyPoints >= st.Value
	rec.Won = &won

	if len(passes) >= 2 {
		forth, back := passes[len(passes)-2], passes[len(passes)-1]
		rec.PassedCards = &PassedCards{Forth: slices.Clone(forth), Back: slices.Clone(back)}
		after := c.Info.StartCards
		for i := range after {
			after[i] = slices.Clone(after[i])
		}
		partner := player.Partner()
		after[partner] = append(RemoveCards(after[partner], forth), back...)
		after[player] = RemoveCards(append(after[player], forth...), back)
		rec.AfterPassing = &after
	}
	return rec
}
