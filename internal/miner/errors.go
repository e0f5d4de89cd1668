package miner

import "errors"

// Sentinel errors surfaced at the CLI boundary (SPEC_FULL.md §7).
var (
	ErrInputUnavailable     = errors.New("miner: input database unavailable")
	ErrOutputUnavailable    = errors.New("miner: output destination unavailable")
	ErrMalformedLine        = errors.New("miner: malformed database line")
	ErrOutOfOrderTransition = errors.New("miner: state transition out of order")
)
