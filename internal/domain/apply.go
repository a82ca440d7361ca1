package domain

import "fmt"

// transition is the outcome of applying one action.
type transition struct {
	info     MetaInfo
	state    State
	callback *Callback
	last     *State
}

// transition computes the successor of g for an action already known to be legal.
func (g *Game) transition(action Action) (transition, error) {
	t := transition{info: g.Info.clone(), state: g.State.Clone()}
	st := &t.state

	switch action.Kind {
	case ActionStart:
		if !containsSeat(st.PlayersStarted, action.Seat) {
			st.PlayersStarted = append(st.PlayersStarted, action.Seat)
		}
		if len(st.PlayersStarted) == SeatCount {
			st.Started = true
			started := now()
			t.info.StartTime = &started
			st.Phase = simplePhase(PhaseBidding)
		}

	case ActionNewBid:
		t.last = g.capture()
		st.BiddingHistory = append(st.BiddingHistory, action.clone())
		st.Value = action.Value
		if st.Phase.Is(PhaseRaising) {
			st.Phase = simplePhase(PhaseTrick)
			break
		}
		next := st.nextBidder(st.PlayerAtTurn)
		if next == st.PlayerAtTurn {
			// nobody is left to bid against
			st.Phase = simplePhase(PhasePassingForth)
			st.PlayerAtTurn = st.PlayerAtTurn.Partner()
			break
		}
		st.PlayerAtTurn = next

	case ActionStopBidding:
		t.last = g.capture()
		st.BiddingHistory = append(st.BiddingHistory, action.clone())
		st.Mover().Bidding = false
		st.BiddingPlayers--
		if st.BiddingPlayers >= 1 {
			st.PlayerAtTurn = st.nextBidder(st.PlayerAtTurn)
		} else {
			st.PlayerAtTurn = st.PlayerAtTurn.Next()
		}
		switch {
		case st.BiddingPlayers == 1 && st.Value > BaseValue:
			st.Phase = simplePhase(PhasePassingForth)
			for _, p := range st.Players {
				if p.Bidding {
					st.PlayerAtTurn = p.Partner()
				}
			}
		case st.BiddingPlayers == 0:
			st.Phase = simplePhase(PhaseTrick)
		}

	case ActionPass:
		giver := st.Player(action.Seat)
		giver.Cards = RemoveCards(giver.Cards, action.Cards)
		receiver := st.Player(action.Seat.Partner())
		receiver.Cards = append(receiver.Cards, action.Cards...)
		if st.Phase.Is(PhasePassingBack) {
			st.Phase = simplePhase(PhaseRaising)
		} else {
			st.Phase = simplePhase(PhasePassingBack)
			st.PlayerAtTurn = action.Seat.Partner()
		}

	case ActionCardPlayed:
		t.last = g.capture()
		playCard(st, action.Seat, *action.Card)
		if len(st.Mover().Cards) == 0 {
			st.Phase = simplePhase(PhaseEnded)
			ended := now()
			t.info.EndTime = &ended
		}

	case ActionAnnounceTrump:
		suit := *action.Suit
		t.callback = &Callback{Kind: CallbackNewTrump, Suit: suit}
		st.TrumpCalled = append(st.TrumpCalled, suit)
		st.setTrump(suit)
		st.Phase = simplePhase(PhaseTrick)

	case ActionQuestion:
		asker := st.PlayerAtTurn
		st.Questioner = &asker
		if action.Question == QuestionYourHalf {
			st.Phase = answeringHalf(*action.Suit)
		} else {
			st.Phase = simplePhase(PhaseAnsweringPair)
		}
		st.PlayerAtTurn = asker.Partner()

	case ActionAnswer:
		t.callback = answer(st, action)

	case ActionUndoRequest:
		if g.LastState == nil {
			return transition{}, fmt.Errorf("%w: no previous state", ErrCannotUndo)
		}
		t.last = g.carry()
		st.Phase = pendingUndo(st.Phase)

	case ActionUndoAccept:
		t.last = g.carry()
		if !containsSeat(st.PlayersAcceptUndo, action.Seat) {
			st.PlayersAcceptUndo = append(st.PlayersAcceptUndo, action.Seat)
		}
		if len(st.PlayersAcceptUndo) == 2 && g.LastState != nil {
			t.state = g.LastState.Clone()
			t.state.PlayersAcceptUndo = nil
			t.last = nil
		}

	case ActionUndoDecline:
		if st.Phase.Is(PhasePendingUndo) && st.Phase.Previous != nil {
			st.Phase = st.Phase.Previous.clone()
			st.PlayersAcceptUndo = nil
		}

	default:
		panic(fmt.Sprintf("unknown action kind %q", action.Kind))
	}
	return t, nil
}

// capture copies the current state as the undo snapshot of the next game.
func (g *Game) capture() *State {
	st := g.State.Clone()
	return &st
}

// carry copies the existing undo snapshot forward.
func (g *Game) carry() *State {
	if g.LastState == nil {
		return nil
	}
	st := g.LastState.Clone()
	return &st
}

// playCard lays card on the table and closes the trick once four cards lie there.
// A closed trick stays visible until the next card is led.
func playCard(st *State, seat Seat, card Card) {
	if len(st.CurrentTrick) >= SeatCount {
		st.CurrentTrick = []Card{card}
	} else {
		st.CurrentTrick = append(st.CurrentTrick, card)
	}
	st.Player(seat).playCard(card)
	st.Phase = simplePhase(PhaseTrick)
	st.PlayerAtTurn = st.PlayerAtTurn.Next()
	if len(st.CurrentTrick) < SeatCount {
		return
	}

	winner, _ := HighestCard(st.CurrentTrick, st.Trump)
	// the seat to move is the leader again; walk to the winner
	for _, c := range st.CurrentTrick {
		if c == winner {
			break
		}
		st.PlayerAtTurn = st.PlayerAtTurn.Next()
	}
	var cards [SeatCount]Card
	copy(cards[:], st.CurrentTrick)
	st.Tricks = append(st.Tricks, FinishedTrick{
		Cards:  cards,
		Winner: st.PlayerAtTurn,
		Points: TrickPoints(cards[:]),
	})
	st.Phase = simplePhase(PhaseStartTrick)
}

// answer resolves a reply; the turn always returns to the seat that asked.
func answer(st *State, action Action) *Callback {
	if st.Questioner == nil {
		panic("answer without a pending question")
	}
	asker := *st.Questioner
	var cb *Callback

	switch action.Answer {
	case AnswerNoPair:
	case AnswerYesPair:
		suit := *action.Suit
		cb = &Callback{Kind: CallbackNewTrump, Suit: suit}
		st.TrumpCalled = append(st.TrumpCalled, suit)
		st.setTrump(suit)
	case AnswerNoHalf:
		cb = &Callback{Kind: CallbackNoHalf, Suit: *action.Suit}
	case AnswerYesHalf:
		suit := *action.Suit
		if !ContainsSuit(HalfSuits(st.Player(asker).Cards), suit) {
			cb = &Callback{Kind: CallbackOnlyHalf, Suit: suit}
			break
		}
		if st.trumpCalled(suit) {
			cb = &Callback{Kind: CallbackStillTrump, Suit: suit}
		} else {
			cb = &Callback{Kind: CallbackNewTrump, Suit: suit}
			st.TrumpCalled = append(st.TrumpCalled, suit)
		}
		st.setTrump(suit)
	default:
		panic(fmt.Sprintf("unknown answer kind %q", action.Answer))
	}

	st.Phase = simplePhase(PhaseTrick)
	st.PlayerAtTurn = asker
	st.Questioner = nil
	return cb
}
