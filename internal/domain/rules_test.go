package domain

import (
	"slices"
	"testing"
)

func suitPtr(s Suit) *Suit { return &s }

func TestIsHigherCard(t *testing.T) {
	tests := []struct {
		name          string
		higher, lower string
		trump         *Suit
		want          bool
	}{
		{name: "same suit higher", higher: "g-A", lower: "g-Z", want: true},
		{name: "same suit lower", higher: "g-Z", lower: "g-A", want: false},
		{name: "other suit without trump", higher: "r-A", lower: "g-6", want: false},
		{name: "trump beats non trump", higher: "s-6", lower: "g-A", trump: suitPtr(Bells), want: true},
		{name: "non trump never beats trump", higher: "g-A", lower: "s-6", trump: suitPtr(Bells), want: false},
		{name: "trump against trump", higher: "s-K", lower: "s-O", trump: suitPtr(Bells), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := ParseCard(tt.higher)
			l, _ := ParseCard(tt.lower)
			if got := IsHigherCard(h, l, tt.trump); got != tt.want {
				t.Fatalf("IsHigherCard(%s, %s) = %v, want %v", h, l, got, tt.want)
			}
		})
	}
}

func TestHigherCards(t *testing.T) {
	got := HigherCards(Card{Suit: Green, Value: King}, nil, nil)
	want := MustParseCards("g-Z", "g-A")
	if !slices.Equal(got, want) {
		t.Fatalf("HigherCards = %v, want %v", got, want)
	}
	withTrump := HigherCards(Card{Suit: Green, Value: King}, suitPtr(Red), nil)
	if len(withTrump) != 2+9 {
		t.Fatalf("HigherCards with trump = %d cards, want 11", len(withTrump))
	}
}

func TestHighestCard(t *testing.T) {
	trick := MustParseCards("g-A", "g-6", "s-7", "g-U")
	tests := []struct {
		name  string
		trick []Card
		trump *Suit
		want  string
	}{
		{name: "led suit without trump", trick: trick, want: "g-A"},
		{name: "low trump wins", trick: trick, trump: suitPtr(Bells), want: "s-7"},
		{name: "trump absent from trick", trick: trick, trump: suitPtr(Red), want: "g-A"},
		{name: "off suit high card loses", trick: MustParseCards("e-7", "r-A", "e-9"), want: "e-9"},
		{name: "single card", trick: MustParseCards("r-6"), want: "r-6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HighestCard(tt.trick, tt.trump)
			if !ok || got.String() != tt.want {
				t.Fatalf("HighestCard = %v, %v; want %s", got, ok, tt.want)
			}
		})
	}

	if _, ok := HighestCard(nil, nil); ok {
		t.Fatalf("HighestCard of empty trick reported a winner")
	}
}

func TestAllowedFirstLead(t *testing.T) {
	tests := []struct {
		name string
		hand []Card
		want []Card
	}{
		{name: "aces first", hand: MustParseCards("g-6", "r-A", "e-A", "s-K"), want: MustParseCards("r-A", "e-A")},
		{name: "green without ace", hand: MustParseCards("g-6", "r-K", "g-9"), want: MustParseCards("g-6", "g-9")},
		{name: "anything else", hand: MustParseCards("r-6", "e-K"), want: MustParseCards("r-6", "e-K")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllowedFirstLead(tt.hand); !slices.Equal(got, tt.want) {
				t.Fatalf("AllowedFirstLead = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllowedCards(t *testing.T) {
	tests := []struct {
		name  string
		trick []Card
		hand  []Card
		trump *Suit
		first bool
		want  []Card
	}{
		{
			name: "empty trick later in the game",
			hand: MustParseCards("r-6", "g-9"),
			want: MustParseCards("r-6", "g-9"),
		},
		{
			name:  "empty first trick",
			hand:  MustParseCards("r-6", "g-9", "e-A"),
			first: true,
			want:  MustParseCards("e-A"),
		},
		{
			name:  "single ace of led suit forced on first trick",
			trick: MustParseCards("g-6"),
			hand:  MustParseCards("g-K", "g-A", "e-6"),
			first: true,
			want:  MustParseCards("g-A"),
		},
		{
			name:  "beating card preferred",
			trick: MustParseCards("g-9"),
			hand:  MustParseCards("g-K", "g-6", "e-A"),
			want:  MustParseCards("g-K"),
		},
		{
			name:  "follow suit when unable to beat",
			trick: MustParseCards("g-A"),
			hand:  MustParseCards("g-6", "g-K", "e-A"),
			want:  MustParseCards("g-6", "g-K"),
		},
		{
			name:  "trump takes over",
			trick: MustParseCards("g-A"),
			hand:  MustParseCards("s-6", "e-7"),
			trump: suitPtr(Bells),
			want:  MustParseCards("s-6"),
		},
		{
			name:  "over trump",
			trick: MustParseCards("g-A", "s-9"),
			hand:  MustParseCards("g-6", "s-6", "s-Z"),
			trump: suitPtr(Bells),
			want:  MustParseCards("s-Z"),
		},
		{
			name:  "free discard",
			trick: MustParseCards("g-A"),
			hand:  MustParseCards("e-6", "r-7"),
			want:  MustParseCards("e-6", "r-7"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AllowedCards(tt.trick, tt.hand, tt.trump, tt.first)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("AllowedCards = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPairAndHalfSuits(t *testing.T) {
	hand := MustParseCards("g-K", "g-O", "r-O", "e-6", "s-K")
	if got := PairSuits(hand); !slices.Equal(got, []Suit{Green}) {
		t.Fatalf("PairSuits = %v", got)
	}
	if got := HalfSuits(hand); !slices.Equal(got, []Suit{Green, Bells, Red}) {
		t.Fatalf("HalfSuits = %v", got)
	}
}

func TestSeatArithmetic(t *testing.T) {
	tests := []struct {
		seat                Seat
		next, prev, partner Seat
		party               Seat
	}{
		{seat: 0, next: 1, prev: 3, partner: 2, party: 0},
		{seat: 1, next: 2, prev: 0, partner: 3, party: 1},
		{seat: 2, next: 3, prev: 1, partner: 0, party: 0},
		{seat: 3, next: 0, prev: 2, partner: 1, party: 1},
	}
	for _, tt := range tests {
		t.Run(tt.seat.String(), func(t *testing.T) {
			if tt.seat.Next() != tt.next || tt.seat.Prev() != tt.prev {
				t.Fatalf("Next/Prev = %v/%v", tt.seat.Next(), tt.seat.Prev())
			}
			if tt.seat.Partner() != tt.partner || tt.seat.Party() != tt.party {
				t.Fatalf("Partner/Party = %v/%v", tt.seat.Partner(), tt.seat.Party())
			}
		})
	}
}

func TestPoints(t *testing.T) {
	trick := MustParseCards("g-A", "g-Z", "g-K", "g-O")
	if got := TrickPoints(trick); got != 28 {
		t.Fatalf("TrickPoints = %d, want 28", got)
	}
	bonus := map[Suit]Points{Red: 100, Bells: 80, Acorns: 60, Green: 40}
	for s, want := range bonus {
		if got := PairPoints(s); got != want {
			t.Fatalf("PairPoints(%s) = %d, want %d", s, got, want)
		}
	}
	perSeat := PointsPerSeat([]FinishedTrick{{Winner: 1, Points: 20}, {Winner: 3, Points: 5}, {Winner: 1, Points: 2}})
	if perSeat != [SeatCount]Points{0, 22, 0, 5} {
		t.Fatalf("PointsPerSeat = %v", perSeat)
	}
}
