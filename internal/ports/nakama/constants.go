package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a match with free seats.
	RpcQuickMatch = "quick_match"

	// MatchNameMarjapussi is the authoritative match handler name registered with Nakama.
	MatchNameMarjapussi = "marjapussi_match"
)

// Runtime env keys read in MatchInit.
const (
	EnvConfigPath  = "marjapussi_config_path"
	EnvArchiveDSN  = "marjapussi_archive_dsn"
	labelGameValue = "marjapussi"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStart       int64 = 1
	OpAction      int64 = 2
	OpRequestView int64 = 3

	// Server -> Client events
	OpGameView      int64 = 101 // send privately
	OpGameEnded     int64 = 102
	OpGameError     int64 = 103 // send privately
	OpActionApplied int64 = 104
	OpHandUpdated   int64 = 105 // send privately
	OpTrickClosed   int64 = 106
	OpGameCreated   int64 = 107
	OpSeriesEnded   int64 = 108
	OpSeatsUpdated  int64 = 109
	OpGameStarted   int64 = 110
	OpUndone        int64 = 111
)

// Error codes carried by OpGameError.
const (
	errCodeBadRequest = 400
	errCodeForbidden  = 403
	errCodeConflict   = 409
)
