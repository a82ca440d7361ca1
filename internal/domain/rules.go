package domain

// IsHigherCard reports whether higher beats lower: either higher is trump and lower is not,
// or both share a suit and higher has the greater value.
func IsHigherCard(higher, lower Card, trump *Suit) bool {
	if trump != nil && higher.Suit == *trump && lower.Suit != *trump {
		return true
	}
	return higher.Suit == lower.Suit && higher.Value > lower.Value
}

// HigherCards returns the cards of pool that beat card. A nil pool means the whole deck.
func HigherCards(card Card, trump *Suit, pool []Card) []Card {
	if pool == nil {
		pool = NewDeck()
	}
	var out []Card
	for _, c := range pool {
		if IsHigherCard(c, card, trump) {
			out = append(out, c)
		}
	}
	return out
}

// HighestCard returns the winner of a trick given in play order. When a trump is set and
// present, only trumps compete; otherwise only cards of the led suit do.
// It returns false for an empty trick.
func HighestCard(trick []Card, trump *Suit) (Card, bool) {
	if len(trick) == 0 {
		return Card{}, false
	}
	suit := trick[0].Suit
	if trump != nil {
		for _, c := range trick {
			if c.Suit == *trump {
				suit = *trump
				break
			}
		}
	}
	var best Card
	found := false
	for _, c := range trick {
		if c.Suit != suit {
			continue
		}
		if !found || c.Value > best.Value {
			best = c
			found = true
		}
	}
	return best, true
}

// AllowedFirstLead returns the cards that may open the very first trick of a game:
// any ace if held, else any Green card if held, else the whole hand.
func AllowedFirstLead(hand []Card) []Card {
	var aces, greens []Card
	for _, c := range hand {
		if c.Value == Ace {
			aces = append(aces, c)
		}
		if c.Suit == Green {
			greens = append(greens, c)
		}
	}
	switch {
	case len(aces) > 0:
		return aces
	case len(greens) > 0:
		return greens
	default:
		return append([]Card{}, hand...)
	}
}

// AllowedCards returns the cards of hand that may be played onto trick.
//
// On an empty trick any card may be led, except on the first trick of the game where
// AllowedFirstLead applies. Otherwise the holder of the led suit's ace must play it on the
// first trick; any card that would take over the trick must be preferred; failing that the led
// suit must be followed; failing that the hand is unconstrained.
func AllowedCards(trick, hand []Card, trump *Suit, firstTrick bool) []Card {
	winner, ok := HighestCard(trick, trump)
	if !ok {
		if firstTrick {
			return AllowedFirstLead(hand)
		}
		return append([]Card{}, hand...)
	}

	led := trick[0].Suit
	if firstTrick {
		var aces []Card
		for _, c := range hand {
			if c.Suit == led && c.Value == Ace {
				aces = append(aces, c)
			}
		}
		if len(aces) == 1 {
			return aces
		}
	}

	candidate := make([]Card, len(trick)+1)
	copy(candidate, trick)
	var beating []Card
	for _, c := range hand {
		candidate[len(trick)] = c
		if w, _ := HighestCard(candidate, trump); w != winner {
			beating = append(beating, c)
		}
	}
	if len(beating) > 0 {
		return beating
	}

	var following []Card
	for _, c := range hand {
		if c.Suit == led {
			following = append(following, c)
		}
	}
	if len(following) > 0 {
		return following
	}
	return append([]Card{}, hand...)
}

// HalfSuits returns, in suit order, the suits of which hand holds the King or the Ober.
func HalfSuits(hand []Card) []Suit {
	var out []Suit
	for _, s := range Suits {
		if ContainsCard(hand, Card{Suit: s, Value: Ober}) || ContainsCard(hand, Card{Suit: s, Value: King}) {
			out = append(out, s)
		}
	}
	return out
}

// PairSuits returns, in suit order, the suits of which hand holds both King and Ober.
func PairSuits(hand []Card) []Suit {
	var out []Suit
	for _, s := range Suits {
		if ContainsCard(hand, Card{Suit: s, Value: Ober}) && ContainsCard(hand, Card{Suit: s, Value: King}) {
			out = append(out, s)
		}
	}
	return out
}
