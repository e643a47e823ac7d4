package solwrap

import "errors"

// Flow-level error definitions. Lower layers (rpc, wrap, account, submit)
// define their own errors; these cover conditions decided by the pipeline
// itself before or after any network traffic.

var (
	// ErrInvalidAmount indicates a zero requested amount. Rejected before
	// any RPC call is made.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInsufficientFunds indicates the balance snapshot taken before
	// building the transaction cannot cover the requested amount.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnknownNetwork indicates a network name with no preset.
	ErrUnknownNetwork = errors.New("unknown network")
)
