package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"

	"marjapussi/internal/app"
	"marjapussi/internal/config"
	"marjapussi/internal/domain"
	"marjapussi/internal/ports"
	"marjapussi/internal/ports/postgres"
)

const defaultSeriesName = "marjapussi"

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats          [domain.SeatCount]string    `json:"seats"`            // User IDs, empty string means seat is empty
	Names          [domain.SeatCount]string    `json:"names"`            // Usernames captured when the seat was taken
	Name           string                      `json:"name"`             // Series name, the match id when known
	Tick           int64                       `json:"tick"`             // Current tick of the match
	LastActionTick int64                       `json:"last_action_tick"` // Tick of the last applied action
	IdleTicks      int64                       `json:"idle_ticks"`       // Ticks a seat may idle before an action is chosen, 0 disables
	GamesPerSeries int                         `json:"games_per_series"`
	Presences      map[string]runtime.Presence `json:"-"` // Map UserId -> Presence for targeted messaging
	App            *app.Service                `json:"-"`
	Series         *app.Series                 `json:"-"` // nil until all seats are taken
	Archive        *postgres.ArchiveStore      `json:"-"` // nil when archiving is disabled
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

// seatOf returns the seat held by userID.
func (ms *MatchState) seatOf(userID string) (domain.Seat, bool) {
	for i, seatUserID := range ms.Seats {
		if seatUserID != "" && seatUserID == userID {
			return domain.Seat(i), true
		}
	}
	return 0, false
}

// presenceOf returns the connected presence sitting at seat.
func (ms *MatchState) presenceOf(seat domain.Seat) (runtime.Presence, bool) {
	userID := ms.Seats[seat]
	if userID == "" {
		return nil, false
	}
	p, ok := ms.Presences[userID]
	return p, ok
}

// phaseLabel is the phase published in the match label.
func (ms *MatchState) phaseLabel() string {
	switch {
	case ms.Series == nil:
		return labelPhaseLobby
	case ms.Series.Finished():
		return labelPhaseFinished
	default:
		return string(ms.Series.Active().State.Phase.Kind)
	}
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if path := env[EnvConfigPath]; path != "" {
		if err := config.LoadGameConfig(path); err != nil {
			logger.Warn("MatchInit: Could not load game config: %v", err)
		}
	}

	state := newMatchState(config.TickRate(), config.TurnDurationSeconds(), config.GamesPerSeries())
	if id, ok := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string); ok && id != "" {
		state.Name = id
	}

	var archive ports.ArchivePort
	if dsn := env[EnvArchiveDSN]; dsn != "" && config.ArchiveEnabled() {
		store, err := postgres.Open(ctx, dsn)
		if err != nil {
			logger.Error("MatchInit: Could not open archive: %v", err)
		} else {
			state.Archive = store
			archive = store
		}
	}
	state.App = app.NewService(nil, archive)

	label, err := buildLabel(state.GetOpenSeatsCount(), state.phaseLabel())
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	return state, config.TickRate(), label
}

func newMatchState(tickRate, turnSeconds, games int) *MatchState {
	return &MatchState{
		Name:           defaultSeriesName,
		IdleTicks:      int64(tickRate * turnSeconds),
		GamesPerSeries: games,
		Presences:      make(map[string]runtime.Presence),
	}
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Seated players may always come back.
	if _, seated := matchState.seatOf(presence.GetUserId()); seated {
		return state, true, ""
	}
	if matchState.Series != nil || matchState.GetOpenSeatsCount() <= 0 {
		return state, false, "Match full"
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		if seat, seated := matchState.seatOf(p.GetUserId()); seated {
			logger.Debug("MatchJoin: User %s rejoined seat %d.", p.GetUserId(), seat)
			continue
		}

		assigned := false
		for i, seatUserID := range matchState.Seats {
			if seatUserID == "" {
				matchState.Seats[i] = p.GetUserId()
				matchState.Names[i] = p.GetUsername()
				assigned = true
				break
			}
		}
		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat was available.", p.GetUserId())
		}
	}

	if matchState.Series == nil && matchState.GetOpenSeatsCount() == 0 {
		mh.startSeries(ctx, matchState, dispatcher, logger)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastSeats(matchState, dispatcher, logger)
	mh.broadcastViews(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		// Seats stay reserved once the series has started so the player can rejoin.
		if matchState.Series != nil {
			continue
		}
		if seat, seated := matchState.seatOf(p.GetUserId()); seated {
			matchState.Seats[seat] = ""
			matchState.Names[seat] = ""
			logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), seat)
		}
	}

	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating match with no players.")
		mh.closeArchive(matchState)
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastSeats(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStart:
			mh.handleStart(ctx, matchState, dispatcher, logger, msg)
		case OpAction:
			mh.handleAction(ctx, matchState, dispatcher, logger, msg)
		case OpRequestView:
			mh.handleRequestView(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	mh.processIdleSeat(ctx, matchState, dispatcher, logger)

	return matchState
}

// processIdleSeat submits an action for the first waiting seat once it idled too long.
func (mh *matchHandler) processIdleSeat(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.IdleTicks <= 0 || state.Series == nil || state.Series.Finished() {
		return
	}
	if state.Tick-state.LastActionTick < state.IdleTicks {
		return
	}

	game := state.Series.Active()
	for _, seat := range app.WaitingSeats(game) {
		action, ok := state.App.AutoAction(game, seat)
		if !ok {
			continue
		}
		logger.Info("processIdleSeat: Seat %d idled since tick %d, applying %s", seat, state.LastActionTick, action)
		mh.applyAction(ctx, state, dispatcher, logger, "", action)
		return
	}
}

func (mh *matchHandler) startSeries(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.App == nil {
		state.App = app.NewService(nil, nil)
	}
	series, events, err := state.App.NewSeries(state.Name, state.Names, state.GamesPerSeries)
	if err != nil {
		logger.Error("startSeries: Failed to start series: %v", err)
		return
	}
	state.Series = series
	state.LastActionTick = state.Tick
	logger.Info("startSeries: Series %q started with %d games.", state.Name, state.GamesPerSeries)

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleStart(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	seat, ok := state.seatOf(senderID)
	if !ok {
		logger.Warn("handleStart: User %s has no seat.", senderID)
		mh.sendError(state, dispatcher, logger, senderID, errCodeForbidden, "no seat in this match")
		return
	}
	mh.applyAction(ctx, state, dispatcher, logger, senderID, domain.StartAction(seat))
}

func (mh *matchHandler) handleAction(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	seat, ok := state.seatOf(senderID)
	if !ok {
		logger.Warn("handleAction: User %s has no seat.", senderID)
		mh.sendError(state, dispatcher, logger, senderID, errCodeForbidden, "no seat in this match")
		return
	}

	var action domain.Action
	if err := json.Unmarshal(msg.GetData(), &action); err != nil {
		logger.Warn("handleAction: Invalid action from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, errCodeBadRequest, "invalid action payload")
		return
	}
	if action.Seat != seat {
		logger.Warn("handleAction: User %s (seat %d) sent an action for seat %d", senderID, seat, action.Seat)
		mh.sendError(state, dispatcher, logger, senderID, errCodeForbidden, fmt.Sprintf("action for seat %d, you hold seat %d", action.Seat, seat))
		return
	}

	mh.applyAction(ctx, state, dispatcher, logger, senderID, action)
}

func (mh *matchHandler) handleRequestView(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	seat, ok := state.seatOf(msg.GetUserId())
	if !ok {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), errCodeForbidden, "no seat in this match")
		return
	}
	mh.sendView(state, dispatcher, logger, seat)
}

// applyAction runs action through the series and dispatches the outcome. senderID receives
// the error when the action is rejected; an empty senderID only logs.
func (mh *matchHandler) applyAction(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, action domain.Action) {
	if state.Series == nil {
		mh.sendError(state, dispatcher, logger, senderID, errCodeConflict, "waiting for players")
		return
	}

	events, err := state.Series.Apply(ctx, action)
	if err != nil && len(events) == 0 {
		logger.Warn("applyAction: %s rejected: %v", action, err)
		code := errCodeBadRequest
		if errors.Is(err, app.ErrSeriesEnded) {
			code = errCodeConflict
		}
		mh.sendError(state, dispatcher, logger, senderID, code, err.Error())
		return
	}
	if err != nil {
		logger.Error("applyAction: %s applied with error: %v", action, err)
	}

	state.LastActionTick = state.Tick
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastViews(state, dispatcher, logger)
}

func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, data, err := encodeEvent(ev)
	if err != nil {
		logger.Error("Failed to encode event %v: %v", ev.Kind, err)
		return
	}

	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, seat := range ev.Recipients {
			if p, ok := state.presenceOf(seat); ok {
				recipients = append(recipients, p)
			}
		}

		// Private events must not fall back to a broadcast.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, data, recipients, nil, true)
}

// broadcastViews sends every connected seat its own view of the active game.
func (mh *matchHandler) broadcastViews(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Series == nil || state.Series.Finished() {
		return
	}
	for seat := domain.Seat(0); seat < domain.SeatCount; seat++ {
		mh.sendView(state, dispatcher, logger, seat)
	}
}

func (mh *matchHandler) sendView(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, seat domain.Seat) {
	presence, ok := state.presenceOf(seat)
	if !ok || state.Series == nil {
		return
	}
	view, ok := state.Series.ActiveView(seat)
	if !ok {
		return
	}
	data, err := json.Marshal(view)
	if err != nil {
		logger.Error("sendView: Failed to marshal view for seat %d: %v", seat, err)
		return
	}
	dispatcher.BroadcastMessage(OpGameView, data, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) broadcastSeats(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	msg := seatsMessage{Total: state.GamesPerSeries}
	if state.Series != nil {
		msg.Played = state.Series.Played()
	}
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}
		_, connected := state.Presences[userID]
		msg.Seats = append(msg.Seats, SeatInfo{
			Seat:      i,
			UserID:    userID,
			Username:  state.Names[i],
			Connected: connected,
		})
	}
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Error("broadcastSeats: Failed to marshal: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpSeatsUpdated, data, nil, nil, true)
}

func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	if userID == "" {
		return
	}
	data, err := buildError(code, message)
	if err != nil {
		logger.Error("Failed to marshal game error: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, data, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := buildLabel(state.GetOpenSeatsCount(), state.phaseLabel())
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) closeArchive(state *MatchState) {
	if state.Archive != nil {
		state.Archive.Close()
		state.Archive = nil
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated with %d grace seconds", graceSeconds)
	if matchState, ok := state.(*MatchState); ok {
		mh.closeArchive(matchState)
	}
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
