package engine

import "github.com/pkg/errors"

var (
	ErrInvalidTrialCount   = errors.New("trial count must be positive")
	ErrInvalidDuration     = errors.New("stimulus duration out of range")
	ErrInvalidSize         = errors.New("stimulus size must be positive")
	ErrTargetTooLarge      = errors.New("stimulus does not fit the drawable area")
	ErrExpectationPending  = errors.New("expected value already pending")
	ErrNoExpectation       = errors.New("no expected value pending")
	ErrBlockDone           = errors.New("block already complete")
	ErrBlockActive         = errors.New("a block is already running")
	ErrNoActiveBlock       = errors.New("no block is running")
	ErrNotAwaitingResponse = errors.New("not waiting for a response")
	ErrStopped             = errors.New("sequencer stopped")
)
