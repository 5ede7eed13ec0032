package engine

import "errors"

var (
	ErrInvalidClub      = errors.New("invalid club: distance must be at least 1")
	ErrInvalidRoll      = errors.New("invalid roll: dice values must be between 1 and 6")
	ErrTargetNotOffered = errors.New("target is not a valid option for this shot")
	ErrUnknownClub      = errors.New("club not in bag")
	ErrNoClubSelected   = errors.New("no club selected")
	ErrRoundComplete    = errors.New("round already complete")
	ErrInvalidCourse    = errors.New("invalid course")
)
