package domain

const (
	// HandSize is the number of cards dealt to each seat.
	HandSize = 9
	// PassSize is the number of cards moved per pass.
	PassSize = 4

	// BaseValue is the game value before anybody bids.
	BaseValue Points = 115
	// MaxBid is the ceiling of the bidding ladder.
	MaxBid Points = 420
	// BidStep is the distance between two rungs of the ladder.
	BidStep Points = 5
)
