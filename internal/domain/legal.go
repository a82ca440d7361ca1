package domain

import "fmt"

// halfQuestionOrder is the order in which half questions are offered.
var halfQuestionOrder = []Suit{Red, Bells, Acorns, Green}

// legalActions enumerates every action allowed in st. last is the undo snapshot, if any.
func legalActions(st *State, last *State) []Action {
	var legal []Action
	switch st.Phase.Kind {
	case PhaseWaitingForStart:
		for seat := Seat(0); seat < SeatCount; seat++ {
			if !containsSeat(st.PlayersStarted, seat) {
				legal = append(legal, StartAction(seat))
			}
		}
	case PhaseBidding:
		legal = legalBidding(st)
	case PhasePassingForth, PhasePassingBack:
		legal = legalPassing(st)
	case PhaseRaising:
		legal = legalRaising(st)
		legal = append(legal, legalCards(st)...)
	case PhaseStartTrick:
		legal = legalQuestions(st)
		legal = append(legal, legalCards(st)...)
	case PhaseTrick:
		legal = legalCards(st)
	case PhaseAnsweringPair, PhaseAnsweringHalf:
		legal = legalAnswers(st)
	case PhasePendingUndo:
		legal = legalUndoVotes(st, last)
	case PhaseEnded:
		return nil
	default:
		panic(fmt.Sprintf("unknown phase %q", st.Phase.Kind))
	}

	if last != nil && st.Phase.undoAllowed(st.Value) {
		legal = append(legal, UndoRequestAction(last.PlayerAtTurn))
	}
	return legal
}

// legalBidding offers StopBidding followed by every rung above the current value.
func legalBidding(st *State) []Action {
	legal := []Action{StopBiddingAction(st.PlayerAtTurn)}
	for v := st.Value + BidStep; v <= MaxBid; v += BidStep {
		legal = append(legal, NewBidAction(st.PlayerAtTurn, v))
	}
	return legal
}

// legalRaising offers the remaining rungs from the top of the ladder down.
func legalRaising(st *State) []Action {
	var legal []Action
	for v := MaxBid; v > st.Value; v -= BidStep {
		legal = append(legal, NewBidAction(st.PlayerAtTurn, v))
	}
	return legal
}

func legalPassing(st *State) []Action {
	combs := combinations(st.Mover().Cards, PassSize)
	legal := make([]Action, 0, len(combs))
	for _, comb := range combs {
		legal = append(legal, PassAction(st.PlayerAtTurn, comb))
	}
	return legal
}

func legalCards(st *State) []Action {
	hand := st.Mover().Cards
	allowed := AllowedCards(st.TableTrick(), hand, st.Trump, len(hand) == HandSize)
	legal := make([]Action, 0, len(allowed))
	for _, c := range allowed {
		legal = append(legal, CardPlayedAction(st.PlayerAtTurn, c))
	}
	return legal
}

// legalQuestions lists the announcements and questions open to the leading player.
func legalQuestions(st *State) []Action {
	mover := st.Mover()
	var legal []Action
	if mover.Trump == TrumpOwn {
		for _, suit := range PairSuits(mover.Cards) {
			if !st.trumpCalled(suit) {
				legal = append(legal, AnnounceTrumpAction(mover.Seat, suit))
			}
		}
	}
	if mover.Trump == TrumpOwn || mover.Trump == TrumpYours {
		legal = append(legal, QuestionYoursAction(mover.Seat))
	}
	for _, suit := range halfQuestionOrder {
		legal = append(legal, QuestionYourHalfAction(mover.Seat, suit))
	}
	return legal
}

// legalAnswers lists the replies to the pending question. It panics when no question is
// pending since no legal sequence of actions reaches an answering phase without one.
func legalAnswers(st *State) []Action {
	if st.Questioner == nil {
		panic("answers requested without a pending question")
	}
	mover := st.Mover()
	switch st.Phase.Kind {
	case PhaseAnsweringPair:
		var legal []Action
		for _, suit := range PairSuits(mover.Cards) {
			if !st.trumpCalled(suit) {
				legal = append(legal, YesPairAction(mover.Seat, suit))
			}
		}
		if len(legal) == 0 {
			legal = append(legal, NoPairAction(mover.Seat))
		}
		return legal
	case PhaseAnsweringHalf:
		suit := *st.Phase.Suit
		if ContainsSuit(HalfSuits(mover.Cards), suit) {
			return []Action{YesHalfAction(mover.Seat, suit)}
		}
		return []Action{NoHalfAction(mover.Seat, suit)}
	default:
		panic(fmt.Sprintf("answers requested in phase %s", st.Phase))
	}
}

// legalUndoVotes asks the seat after the snapshot's mover and that seat's partner.
func legalUndoVotes(st *State, last *State) []Action {
	if last == nil {
		panic("pending undo without a snapshot")
	}
	first := last.PlayerAtTurn.Next()
	var legal []Action
	for _, seat := range []Seat{first, first.Partner()} {
		if containsSeat(st.PlayersAcceptUndo, seat) {
			continue
		}
		legal = append(legal, UndoAcceptAction(seat), UndoDeclineAction(seat))
	}
	return legal
}
