package domain

import "errors"

// Error taxonomy shared by every core operation. Call sites wrap these with
// additional context via fmt.Errorf("%w: ..."), callers classify with
// errors.Is.
var (
	// ErrValidation reports malformed or missing input. Nothing is mutated.
	ErrValidation = errors.New("validation error")
	// ErrForbidden reports that the caller lacks rights over the target entity.
	ErrForbidden = errors.New("forbidden")
	// ErrStateConflict reports a transition that is not valid from the current
	// slot or campaign state.
	ErrStateConflict = errors.New("state conflict")
	// ErrInsufficientFunds reports a debit that would make a balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrNotFound reports a missing user, asset, campaign or slot.
	ErrNotFound = errors.New("not found")
)
