/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package charades

// Code identifies an error kind for clients. Codes are stable; messages are not.
type Code string

const (
	CodeValidation     Code = "validation"
	CodeNotFound       Code = "not-found"
	CodeDuplicateCode  Code = "duplicate-code"
	CodeDuplicateName  Code = "duplicate-name"
	CodeUnauthorized   Code = "unauthorized"
	CodeNotReady       Code = "not-ready"
	CodeGameInProgress Code = "game-in-progress"
	CodeRateLimited    Code = "rate-limited"
)

// Error is returned by every engine operation that rejects a request. It is
// surfaced to the requesting connection as an "error" event.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// Is matches on Code only, so errors.Is(err, ErrNotFound) holds for any
// not-found error regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func newError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

var (
	ErrValidation     = newError(CodeValidation, "Missing required fields.")
	ErrNotFound       = newError(CodeNotFound, "Game not found.")
	ErrDuplicateCode  = newError(CodeDuplicateCode, "Game code already exists.")
	ErrDuplicateName  = newError(CodeDuplicateName, "Player name already taken in this game.")
	ErrUnauthorized   = newError(CodeUnauthorized, "Only the host can do that.")
	ErrNotReady       = newError(CodeNotReady, "All players must be ready to start the game.")
	ErrGameInProgress = newError(CodeGameInProgress, "Game has already started.")
	ErrRateLimited    = newError(CodeRateLimited, "Slow down.")
)

var (
	errNotHostStart = newError(CodeUnauthorized, "Only the host can start the game.")
	errNotHostSkip  = newError(CodeUnauthorized, "Only the host can skip the round.")
	errNotPlaying   = newError(CodeUnauthorized, "The game is not in progress.")
	errBadPayload   = newError(CodeValidation, "Malformed payload.")
)
