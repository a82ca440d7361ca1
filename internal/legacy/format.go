// Package legacy converts games recorded by the old Marjapussi server into archive records.
package legacy

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"marjapussi/internal/domain"
)

var (
	ErrFormat      = errors.New("malformed legacy game")
	ErrActionCode  = errors.New("unknown legacy action code")
	ErrUnsupported = errors.New("action has no legacy form")
	ErrNotEnded    = errors.New("legacy game did not end")
)

// Game is one game in the legacy JSON format. Only the fields needed for a replay are
// required; the summary fields are compared against the replay.
type Game struct {
	Name          string              `json:"name"`
	Created       string              `json:"created"`
	Started       string              `json:"started"`
	Finished      string              `json:"finished"`
	Players       []string            `json:"players"`
	Cards         map[string][]string `json:"cards"`
	GameValue     int                 `json:"game_value"`
	Actions       []string            `json:"actions"`
	PlayersPoints map[string]int      `json:"players_points"`
	Schwarz       bool                `json:"schwarz_game"`
}

// DecodeAll decodes a JSON array of legacy games.
func DecodeAll(data []byte) ([]Game, error) {
	var games []Game
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return games, nil
}

var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"}

// parseTime accepts the timestamp layouts seen in legacy dumps.
func parseTime(text string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// hands returns the start hands in seat order.
func (lg Game) hands() (*[domain.SeatCount][]domain.Card, [domain.SeatCount]string, error) {
	var names [domain.SeatCount]string
	if len(lg.Players) != domain.SeatCount {
		return nil, names, fmt.Errorf("%w: %d players", ErrFormat, len(lg.Players))
	}
	copy(names[:], lg.Players)

	var hands [domain.SeatCount][]domain.Card
	for i, name := range names {
		texts, ok := lg.Cards[name]
		if !ok {
			return nil, names, fmt.Errorf("%w: no cards for %q", ErrFormat, name)
		}
		cards, err := domain.ParseCards(texts...)
		if err != nil {
			return nil, names, fmt.Errorf("%w: cards of %q: %v", ErrFormat, name, err)
		}
		hands[i] = cards
	}
	return &hands, names, nil
}

// ParseAction decodes one "seat,CODE,value" entry. Answers depend on the question that is
// pending, so the phase the answer is given in must be supplied.
func ParseAction(text string, phase domain.Phase) (domain.Action, error) {
	fields := strings.Split(text, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) < 2 {
		return domain.Action{}, fmt.Errorf("%w: %q", ErrFormat, text)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 || n >= domain.SeatCount {
		return domain.Action{}, fmt.Errorf("%w: seat in %q", ErrFormat, text)
	}
	seat := domain.Seat(n)
	args := fields[2:]

	switch fields[1] {
	case "PROV":
		if len(args) != 1 {
			return domain.Action{}, fmt.Errorf("%w: bid %q", ErrFormat, text)
		}
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return domain.Action{}, fmt.Errorf("%w: bid %q", ErrFormat, text)
		}
		return domain.NewBidAction(seat, domain.Points(v)), nil

	case "WEIT":
		return domain.StopBiddingAction(seat), nil

	case "SCHB":
		var texts []string
		for _, a := range args {
			texts = append(texts, strings.Fields(a)...)
		}
		if len(texts) != domain.PassSize {
			return domain.Action{}, fmt.Errorf("%w: pass of %d cards in %q", ErrFormat, len(texts), text)
		}
		cards, err := domain.ParseCards(texts...)
		if err != nil {
			return domain.Action{}, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		return domain.PassAction(seat, cards), nil

	case "TRCK":
		if len(args) != 1 {
			return domain.Action{}, fmt.Errorf("%w: card %q", ErrFormat, text)
		}
		c, err := domain.ParseCard(args[0])
		if err != nil {
			return domain.Action{}, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		return domain.CardPlayedAction(seat, c), nil

	case "TRMP":
		suit, err := suitArg(args, text)
		if err != nil {
			return domain.Action{}, err
		}
		return domain.AnnounceTrumpAction(seat, suit), nil

	case "FRAG":
		if len(args) == 1 && args[0] == "pair" {
			return domain.QuestionYoursAction(seat), nil
		}
		suit, err := suitArg(args, text)
		if err != nil {
			return domain.Action{}, err
		}
		return domain.QuestionYourHalfAction(seat, suit), nil

	case "ANTW":
		return parseAnswer(seat, args, phase, text)
	}
	return domain.Action{}, fmt.Errorf("%w: %q", ErrActionCode, fields[1])
}

func suitArg(args []string, text string) (domain.Suit, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: suit in %q", ErrFormat, text)
	}
	suit, err := domain.ParseSuit(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return suit, nil
}

func parseAnswer(seat domain.Seat, args []string, phase domain.Phase, text string) (domain.Action, error) {
	if len(args) < 1 || len(args) > 2 || (args[0] != "yes" && args[0] != "no") {
		return domain.Action{}, fmt.Errorf("%w: answer %q", ErrFormat, text)
	}
	yes := args[0] == "yes"
	var suit *domain.Suit
	if len(args) == 2 {
		s, err := domain.ParseSuit(args[1])
		if err != nil {
			return domain.Action{}, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		suit = &s
	}

	switch phase.Kind {
	case domain.PhaseAnsweringPair:
		if !yes {
			return domain.NoPairAction(seat), nil
		}
		if suit == nil {
			return domain.Action{}, fmt.Errorf("%w: pair answer without suit %q", ErrFormat, text)
		}
		return domain.YesPairAction(seat, *suit), nil
	case domain.PhaseAnsweringHalf:
		asked := *phase.Suit
		if suit != nil && *suit != asked {
			return domain.Action{}, fmt.Errorf("%w: answer for %s while %s was asked", ErrFormat, *suit, asked)
		}
		if yes {
			return domain.YesHalfAction(seat, asked), nil
		}
		return domain.NoHalfAction(seat, asked), nil
	}
	return domain.Action{}, fmt.Errorf("%w: answer %q in phase %s", ErrFormat, text, phase)
}

// FormatAction renders action in the legacy "seat,CODE,value" form.
func FormatAction(action domain.Action) (string, error) {
	prefix := strconv.Itoa(int(action.Seat)) + ","
	switch action.Kind {
	case domain.ActionNewBid:
		return prefix + "PROV," + strconv.Itoa(int(action.Value)), nil
	case domain.ActionStopBidding:
		return prefix + "WEIT", nil
	case domain.ActionPass:
		texts := make([]string, len(action.Cards))
		for i, c := range action.Cards {
			texts[i] = c.String()
		}
		return prefix + "SCHB," + strings.Join(texts, " "), nil
	case domain.ActionCardPlayed:
		return prefix + "TRCK," + action.Card.String(), nil
	case domain.ActionAnnounceTrump:
		return prefix + "TRMP," + string(action.Suit.Letter()), nil
	case domain.ActionQuestion:
		if action.Question == domain.QuestionYours {
			return prefix + "FRAG,pair", nil
		}
		return prefix + "FRAG," + string(action.Suit.Letter()), nil
	case domain.ActionAnswer:
		switch action.Answer {
		case domain.AnswerNoPair:
			return prefix + "ANTW,no", nil
		case domain.AnswerYesPair, domain.AnswerYesHalf:
			return prefix + "ANTW,yes," + string(action.Suit.Letter()), nil
		case domain.AnswerNoHalf:
			return prefix + "ANTW,no," + string(action.Suit.Letter()), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupported, action)
}
