package domain

import (
	"fmt"
	"slices"
	"strings"
)

// ActionKind tags what a seat does.
type ActionKind string

const (
	ActionStart         ActionKind = "start"
	ActionNewBid        ActionKind = "new_bid"
	ActionStopBidding   ActionKind = "stop_bidding"
	ActionPass          ActionKind = "pass"
	ActionCardPlayed    ActionKind = "card_played"
	ActionAnnounceTrump ActionKind = "announce_trump"
	ActionQuestion      ActionKind = "question"
	ActionAnswer        ActionKind = "answer"
	ActionUndoRequest   ActionKind = "undo_request"
	ActionUndoAccept    ActionKind = "undo_accept"
	ActionUndoDecline   ActionKind = "undo_decline"
)

// QuestionKind distinguishes asking the partner for a pair from asking for a half.
type QuestionKind string

const (
	// QuestionYours asks the partner whether they hold a pair.
	QuestionYours QuestionKind = "yours"
	// QuestionYourHalf asks the partner for a half of one suit.
	QuestionYourHalf QuestionKind = "your_half"
)

// AnswerKind is the reply to a question.
type AnswerKind string

const (
	AnswerYesPair AnswerKind = "yes_pair"
	AnswerNoPair  AnswerKind = "no_pair"
	AnswerYesHalf AnswerKind = "yes_half"
	AnswerNoHalf  AnswerKind = "no_half"
)

// Action is one move made by one seat. Only the payload fields belonging to Kind are set:
// Value for NewBid, Cards for Pass, Card for CardPlayed, Suit for AnnounceTrump and the
// suit-carrying questions and answers.
type Action struct {
	Kind     ActionKind   `json:"kind"`
	Seat     Seat         `json:"seat"`
	Value    Points       `json:"value,omitempty"`
	Cards    []Card       `json:"cards,omitempty"`
	Card     *Card        `json:"card,omitempty"`
	Suit     *Suit        `json:"suit,omitempty"`
	Question QuestionKind `json:"question,omitempty"`
	Answer   AnswerKind   `json:"answer,omitempty"`
}

func StartAction(seat Seat) Action { return Action{Kind: ActionStart, Seat: seat} }

func NewBidAction(seat Seat, value Points) Action {
	return Action{Kind: ActionNewBid, Seat: seat, Value: value}
}

func StopBiddingAction(seat Seat) Action { return Action{Kind: ActionStopBidding, Seat: seat} }

// PassAction moves cards to the partner. The cards are stored in descending order.
func PassAction(seat Seat, cards []Card) Action {
	sorted := slices.Clone(cards)
	SortCardsDesc(sorted)
	return Action{Kind: ActionPass, Seat: seat, Cards: sorted}
}

func CardPlayedAction(seat Seat, card Card) Action {
	return Action{Kind: ActionCardPlayed, Seat: seat, Card: &card}
}

func AnnounceTrumpAction(seat Seat, suit Suit) Action {
	return Action{Kind: ActionAnnounceTrump, Seat: seat, Suit: &suit}
}

func QuestionYoursAction(seat Seat) Action {
	return Action{Kind: ActionQuestion, Seat: seat, Question: QuestionYours}
}

func QuestionYourHalfAction(seat Seat, suit Suit) Action {
	return Action{Kind: ActionQuestion, Seat: seat, Question: QuestionYourHalf, Suit: &suit}
}

func YesPairAction(seat Seat, suit Suit) Action {
	return Action{Kind: ActionAnswer, Seat: seat, Answer: AnswerYesPair, Suit: &suit}
}

func NoPairAction(seat Seat) Action {
	return Action{Kind: ActionAnswer, Seat: seat, Answer: AnswerNoPair}
}

func YesHalfAction(seat Seat, suit Suit) Action {
	return Action{Kind: ActionAnswer, Seat: seat, Answer: AnswerYesHalf, Suit: &suit}
}

func NoHalfAction(seat Seat, suit Suit) Action {
	return Action{Kind: ActionAnswer, Seat: seat, Answer: AnswerNoHalf, Suit: &suit}
}

func UndoRequestAction(seat Seat) Action { return Action{Kind: ActionUndoRequest, Seat: seat} }

func UndoAcceptAction(seat Seat) Action { return Action{Kind: ActionUndoAccept, Seat: seat} }

func UndoDeclineAction(seat Seat) Action { return Action{Kind: ActionUndoDecline, Seat: seat} }

// Equal compares kind, seat and payload. Pass cards are compared in order.
func (a Action) Equal(other Action) bool {
	if a.Kind != other.Kind || a.Seat != other.Seat || a.Value != other.Value {
		return false
	}
	if a.Question != other.Question || a.Answer != other.Answer {
		return false
	}
	if !equalSuitPtr(a.Suit, other.Suit) {
		return false
	}
	if (a.Card == nil) != (other.Card == nil) || (a.Card != nil && *a.Card != *other.Card) {
		return false
	}
	return slices.Equal(a.Cards, other.Cards)
}

// normalized returns the action with its pass cards in canonical order so client
// submissions match the enumerated legal actions regardless of card order.
func (a Action) normalized() Action {
	if a.Kind == ActionPass {
		return PassAction(a.Seat, a.Cards)
	}
	return a
}

func (a Action) clone() Action {
	out := a
	out.Cards = slices.Clone(a.Cards)
	if a.Card != nil {
		c := *a.Card
		out.Card = &c
	}
	if a.Suit != nil {
		s := *a.Suit
		out.Suit = &s
	}
	return out
}

func (a Action) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%s", a.Seat, a.Kind)
	switch a.Kind {
	case ActionNewBid:
		fmt.Fprintf(&b, "(%d)", a.Value)
	case ActionPass:
		parts := make([]string, 0, len(a.Cards))
		for _, c := range a.Cards {
			parts = append(parts, c.String())
		}
		fmt.Fprintf(&b, "(%s)", strings.Join(parts, " "))
	case ActionCardPlayed:
		if a.Card != nil {
			fmt.Fprintf(&b, "(%s)", *a.Card)
		}
	case ActionQuestion:
		b.WriteString("(" + string(a.Question))
		if a.Suit != nil {
			b.WriteString("," + a.Suit.String())
		}
		b.WriteString(")")
	case ActionAnswer:
		b.WriteString("(" + string(a.Answer))
		if a.Suit != nil {
			b.WriteString("," + a.Suit.String())
		}
		b.WriteString(")")
	case ActionAnnounceTrump:
		if a.Suit != nil {
			fmt.Fprintf(&b, "(%s)", *a.Suit)
		}
	}
	return b.String()
}

func containsAction(actions []Action, action Action) bool {
	return slices.ContainsFunc(actions, action.Equal)
}
