package domain

import "fmt"

// PhaseKind tags the stage of the game state machine.
type PhaseKind string

const (
	PhaseWaitingForStart PhaseKind = "waiting_for_start"
	PhaseBidding         PhaseKind = "bidding"
	PhasePassingForth    PhaseKind = "passing_forth"
	PhasePassingBack     PhaseKind = "passing_back"
	PhaseRaising         PhaseKind = "raising"
	PhaseStartTrick      PhaseKind = "start_trick"
	PhaseTrick           PhaseKind = "trick"
	PhaseAnsweringPair   PhaseKind = "answering_pair"
	PhaseAnsweringHalf   PhaseKind = "answering_half"
	PhasePendingUndo     PhaseKind = "pending_undo"
	PhaseEnded           PhaseKind = "ended"
)

// Phase is the current stage of a game. AnsweringHalf carries the asked suit and
// PendingUndo wraps the phase that was interrupted by the undo request.
type Phase struct {
	Kind     PhaseKind `json:"kind"`
	Suit     *Suit     `json:"suit,omitempty"`
	Previous *Phase    `json:"previous,omitempty"`
}

func simplePhase(kind PhaseKind) Phase { return Phase{Kind: kind} }

func answeringHalf(suit Suit) Phase { return Phase{Kind: PhaseAnsweringHalf, Suit: &suit} }

func pendingUndo(previous Phase) Phase {
	p := previous.clone()
	return Phase{Kind: PhasePendingUndo, Previous: &p}
}

// Is reports whether the phase has the given kind.
func (p Phase) Is(kind PhaseKind) bool { return p.Kind == kind }

// Equal compares two phases including their payloads.
func (p Phase) Equal(other Phase) bool {
	if p.Kind != other.Kind || !equalSuitPtr(p.Suit, other.Suit) {
		return false
	}
	if p.Previous == nil || other.Previous == nil {
		return p.Previous == nil && other.Previous == nil
	}
	return p.Previous.Equal(*other.Previous)
}

func (p Phase) clone() Phase {
	out := Phase{Kind: p.Kind}
	if p.Suit != nil {
		s := *p.Suit
		out.Suit = &s
	}
	if p.Previous != nil {
		prev := p.Previous.clone()
		out.Previous = &prev
	}
	return out
}

func (p Phase) String() string {
	switch {
	case p.Kind == PhaseAnsweringHalf && p.Suit != nil:
		return fmt.Sprintf("%s(%s)", p.Kind, *p.Suit)
	case p.Kind == PhasePendingUndo && p.Previous != nil:
		return fmt.Sprintf("%s(%s)", p.Kind, p.Previous.String())
	default:
		return string(p.Kind)
	}
}

// undoAllowed reports whether an UndoRequest may be offered in this phase.
func (p Phase) undoAllowed(value Points) bool {
	switch p.Kind {
	case PhaseWaitingForStart, PhasePendingUndo, PhaseEnded, PhasePassingBack, PhaseRaising:
		return false
	case PhaseBidding:
		return value != BaseValue
	default:
		return true
	}
}

func equalSuitPtr(a, b *Suit) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
