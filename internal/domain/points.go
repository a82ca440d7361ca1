package domain

// Points is a score or a game value.
type Points int

// CardPoints returns the trick points of a single card.
func CardPoints(c Card) Points {
	switch c.Value {
	case Ace:
		return 11
	case Ten:
		return 10
	case King:
		return 4
	case Ober:
		return 3
	case Unter:
		return 2
	default:
		return 0
	}
}

// PairPoints returns the bonus for announcing suit as trump.
func PairPoints(s Suit) Points {
	switch s {
	case Red:
		return 100
	case Bells:
		return 80
	case Acorns:
		return 60
	case Green:
		return 40
	default:
		return 0
	}
}

// TrickPoints sums the card points of a trick.
func TrickPoints(cards []Card) Points {
	var total Points
	for _, c := range cards {
		total += CardPoints(c)
	}
	return total
}

// PointsPerSeat sums the points of finished tricks by the seat that won them.
func PointsPerSeat(tricks []FinishedTrick) [SeatCount]Points {
	var points [SeatCount]Points
	for _, t := range tricks {
		points[t.Winner] += t.Points
	}
	return points
}
