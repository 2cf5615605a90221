package campaign

import "errors"

// Recoverable simulation faults. The clock reports these to the journal
// and keeps going; callers of the manual ledger operations get them back
// directly.
var (
	// ErrInsufficientFunds means a debit would take a balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnboundAccount means a posting or objective has no account to
	// draw from or pay into.
	ErrUnboundAccount = errors.New("no account bound")

	// ErrMalformedEstimate means an objective has a non-positive month
	// estimate and cannot accrue progress.
	ErrMalformedEstimate = errors.New("non-positive month estimate")
)
