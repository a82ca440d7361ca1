package domain

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// Suit is one of the four suits of the 36-card deck.
type Suit int

const (
	Green Suit = iota
	Acorns
	Bells
	Red
)

// Suits lists every suit in structural order.
var Suits = []Suit{Green, Acorns, Bells, Red}

var suitNames = [...]string{"Green", "Acorns", "Bells", "Red"}

// suit and value letters used by the text form of a card, e.g. "r-A".
const (
	suitLetters  = "gesr"
	valueLetters = "6789UOKZA"
)

func (s Suit) String() string {
	if s < Green || s > Red {
		return fmt.Sprintf("Suit(%d)", int(s))
	}
	return suitNames[s]
}

// Letter returns the one-letter code of the suit.
func (s Suit) Letter() byte { return suitLetters[s] }

// MarshalText encodes the suit by name.
func (s Suit) MarshalText() ([]byte, error) {
	if s < Green || s > Red {
		return nil, fmt.Errorf("invalid suit %d", int(s))
	}
	return []byte(suitNames[s]), nil
}

// UnmarshalText accepts either the suit name or its letter.
func (s *Suit) UnmarshalText(text []byte) error {
	parsed, err := ParseSuit(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSuit parses a suit name ("Red") or letter ("r").
func ParseSuit(text string) (Suit, error) {
	for i, name := range suitNames {
		if strings.EqualFold(text, name) {
			return Suit(i), nil
		}
	}
	if len(text) == 1 {
		if i := strings.IndexByte(suitLetters, text[0]); i >= 0 {
			return Suit(i), nil
		}
	}
	return 0, fmt.Errorf("%w: suit %q", ErrCardFormat, text)
}

// Value is the rank of a card, lowest first.
type Value int

const (
	Six Value = iota
	Seven
	Eight
	Nine
	Unter
	Ober
	King
	Ten
	Ace
)

// Values lists every value from lowest to highest.
var Values = []Value{Six, Seven, Eight, Nine, Unter, Ober, King, Ten, Ace}

var valueNames = [...]string{"Six", "Seven", "Eight", "Nine", "Unter", "Ober", "King", "Ten", "Ace"}

func (v Value) String() string {
	if v < Six || v > Ace {
		return fmt.Sprintf("Value(%d)", int(v))
	}
	return valueNames[v]
}

// Card is an immutable suit/value pair.
type Card struct {
	Suit  Suit
	Value Value
}

// ErrCardFormat reports a card or suit that cannot be parsed.
var ErrCardFormat = errors.New("wrong card format")

// String renders the card as "<suit letter>-<value letter>".
func (c Card) String() string {
	if c.Suit < Green || c.Suit > Red || c.Value < Six || c.Value > Ace {
		return fmt.Sprintf("Card(%d,%d)", int(c.Suit), int(c.Value))
	}
	return string([]byte{suitLetters[c.Suit], '-', valueLetters[c.Value]})
}

// MarshalText encodes the card in its text form so JSON carries "r-A".
func (c Card) MarshalText() ([]byte, error) {
	if c.Suit < Green || c.Suit > Red || c.Value < Six || c.Value > Ace {
		return nil, fmt.Errorf("%w: %d/%d", ErrCardFormat, int(c.Suit), int(c.Value))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes the text form produced by MarshalText.
func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard parses a card such as "g-O" or "s-6".
func ParseCard(text string) (Card, error) {
	if len(text) != 3 || text[1] != '-' {
		return Card{}, fmt.Errorf("%w: %q", ErrCardFormat, text)
	}
	s := strings.IndexByte(suitLetters, text[0])
	v := strings.IndexByte(valueLetters, text[2])
	if s < 0 || v < 0 {
		return Card{}, fmt.Errorf("%w: %q", ErrCardFormat, text)
	}
	return Card{Suit: Suit(s), Value: Value(v)}, nil
}

// ParseCards parses every entry with ParseCard, failing on the first bad one.
func ParseCards(texts ...string) ([]Card, error) {
	out := make([]Card, 0, len(texts))
	for _, t := range texts {
		c, err := ParseCard(t)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// MustParseCards is ParseCards for literals known to be valid.
func MustParseCards(texts ...string) []Card {
	cards, err := ParseCards(texts...)
	if err != nil {
		panic(err)
	}
	return cards
}

// structuralLess orders by suit, then value. It has no gameplay meaning and is only used
// to normalise card lists.
func structuralLess(a, b Card) bool {
	if a.Suit != b.Suit {
		return a.Suit < b.Suit
	}
	return a.Value < b.Value
}

// SortCardsDesc sorts cards in descending structural order in place.
func SortCardsDesc(cards []Card) {
	sort.Slice(cards, func(i, j int) bool { return structuralLess(cards[j], cards[i]) })
}

// SortHand orders a hand ascending by suit and value.
func SortHand(cards []Card) {
	sort.Slice(cards, func(i, j int) bool { return structuralLess(cards[i], cards[j]) })
}

// NewDeck returns the 36 cards ordered by suit, then value.
func NewDeck() []Card {
	deck := make([]Card, 0, len(Suits)*len(Values))
	for _, s := range Suits {
		for _, v := range Values {
			deck = append(deck, Card{Suit: s, Value: v})
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck. A nil rng uses the global source.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	swap := func(i, j int) { out[i], out[j] = out[j], out[i] }
	if rng == nil {
		rand.Shuffle(len(out), swap)
	} else {
		rng.Shuffle(len(out), swap)
	}
	return out
}

// DealHands shuffles a fresh deck and splits it into four hands of nine.
func DealHands(rng *rand.Rand) [4][]Card {
	deck := ShuffleDeck(NewDeck(), rng)
	var hands [4][]Card
	for i := range hands {
		hands[i] = append([]Card{}, deck[i*HandSize:(i+1)*HandSize]...)
	}
	return hands
}

// ValidateDeal checks that four hands of nine cover the deck exactly once.
func ValidateDeal(hands [4][]Card) error {
	seen := make(map[Card]bool, len(Suits)*len(Values))
	for i, hand := range hands {
		if len(hand) != HandSize {
			return fmt.Errorf("%w: seat %d holds %d cards, want %d", ErrInvalidDeal, i, len(hand), HandSize)
		}
		for _, c := range hand {
			if c.Suit < Green || c.Suit > Red || c.Value < Six || c.Value > Ace {
				return fmt.Errorf("%w: unknown card %v", ErrInvalidDeal, c)
			}
			if seen[c] {
				return fmt.Errorf("%w: duplicate card %s", ErrInvalidDeal, c)
			}
			seen[c] = true
		}
	}
	return nil
}

// RemoveCards returns hand without the given cards.
func RemoveCards(hand []Card, toRemove []Card) []Card {
	if len(toRemove) == 0 || len(hand) == 0 {
		return append([]Card{}, hand...)
	}

	remove := make(map[Card]bool, len(toRemove))
	for _, card := range toRemove {
		remove[card] = true
	}

	updated := make([]Card, 0, len(hand))
	for _, card := range hand {
		if remove[card] {
			continue
		}
		updated = append(updated, card)
	}
	return updated
}

// ContainsCard reports whether card is in cards.
func ContainsCard(cards []Card, card Card) bool {
	for _, c := range cards {
		if c == card {
			return true
		}
	}
	return false
}

// ContainsSuit reports whether suit is in suits.
func ContainsSuit(suits []Suit, suit Suit) bool {
	for _, s := range suits {
		if s == suit {
			return true
		}
	}
	return false
}

// combinations returns every k-card subset of cards, preserving hand order inside each subset.
func combinations(cards []Card, k int) [][]Card {
	if k <= 0 || k > len(cards) {
		return nil
	}
	var out [][]Card
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	n := len(cards)
	for {
		comb := make([]Card, k)
		for i, j := range idx {
			comb[i] = cards[j]
		}
		out = append(out, comb)

		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
