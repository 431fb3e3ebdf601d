package game

import "errors"

// Precondition and validation failures are returned to the caller without
// mutating round state; every operation is safe to re-issue.
var (
	ErrNoParticipants     = errors.New("no participants joined")
	ErrUnknownParticipant = errors.New("participant not registered")
	ErrNoWinnerSelected   = errors.New("no winner selected")
	ErrRoundInactive      = errors.New("round not active")
	ErrPicksExhausted     = errors.New("all picks used")
	ErrTileAlreadyOpened  = errors.New("tile already opened")
	ErrInvalidTileIndex   = errors.New("invalid tile index")
	ErrForceDisabled      = errors.New("force mode disabled on server")
	ErrInvalidForceMode   = errors.New("invalid force mode")
	ErrInvalidPassword    = errors.New("invalid password")
)
