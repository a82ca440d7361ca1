package domain

import "slices"

// TrumpPossibility describes which trump announcements a leading player may make.
type TrumpPossibility string

const (
	// TrumpOwn allows announcing an own pair, asking the partner and asking for halves.
	TrumpOwn TrumpPossibility = "own"
	// TrumpYours allows asking the partner and asking for halves.
	TrumpYours TrumpPossibility = "yours"
	// TrumpOurs only allows asking for halves.
	TrumpOurs TrumpPossibility = "ours"
)

// Player holds the per-seat state of a game.
type Player struct {
	Name       string           `json:"name"`
	Seat       Seat             `json:"seat"`
	Cards      []Card           `json:"cards"`
	LastPlayed *Card            `json:"last_played,omitempty"`
	Bidding    bool             `json:"bidding"`
	Trump      TrumpPossibility `json:"trump"`
}

func newPlayer(name string, seat Seat, cards []Card) Player {
	return Player{
		Name:    name,
		Seat:    seat,
		Cards:   slices.Clone(cards),
		Bidding: true,
		Trump:   TrumpOwn,
	}
}

// Partner returns the seat of the player's partner.
func (p Player) Partner() Seat { return p.Seat.Partner() }

// clone returns a copy that shares no storage with p.
func (p Player) clone() Player {
	out := p
	out.Cards = slices.Clone(p.Cards)
	if p.LastPlayed != nil {
		c := *p.LastPlayed
		out.LastPlayed = &c
	}
	return out
}

// playCard removes card from the hand and remembers it.
func (p *Player) playCard(card Card) {
	p.Cards = RemoveCards(p.Cards, []Card{card})
	p.LastPlayed = &card
}
