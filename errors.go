package tokenledger

import "errors"

// Sentinel errors for every failure the engine can report. All failures
// are synchronous and leave state unchanged; none are retryable by the
// engine itself.
var (
	// Authorization errors
	ErrUnauthorized = errors.New("tokenledger: caller is not the owner")

	// Access gate errors
	ErrNotWhitelisted = errors.New("tokenledger: holder is not whitelisted")
	ErrAddressFrozen  = errors.New("tokenledger: holder is frozen")

	// Pause errors
	ErrSystemPaused = errors.New("tokenledger: system is paused")

	// Balance errors
	ErrAmountLocked        = errors.New("tokenledger: amount exceeds available vested balance")
	ErrInsufficientBalance = errors.New("tokenledger: insufficient balance")

	// Vesting errors
	ErrVestingAlreadyExists = errors.New("tokenledger: vesting schedule already exists")

	// Lifecycle errors
	ErrAlreadyInitialized = errors.New("tokenledger: engine already initialized")
	ErrNotInitialized     = errors.New("tokenledger: engine not initialized")

	// Store errors
	ErrHolderNotFound = errors.New("tokenledger: holder not found")
	ErrStoreClosed    = errors.New("tokenledger: store is closed")

	// General errors
	ErrInvalidInput = errors.New("tokenledger: invalid input")
)

// IsAccessDenied returns true if the error is a whitelist or freeze rejection.
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrNotWhitelisted) ||
		errors.Is(err, ErrAddressFrozen)
}

// IsFundsError returns true if the error relates to the holder's balance
// or its vesting lock.
func IsFundsError(err error) bool {
	return errors.Is(err, ErrAmountLocked) ||
		errors.Is(err, ErrInsufficientBalance)
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrHolderNotFound)
}
