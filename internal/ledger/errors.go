package ledger

import "errors"

// Domain errors returned by ledger operations. The HTTP layer maps these to
// status codes; every failure leaves ledger state untouched.
var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrDuplicateAccount  = errors.New("username already taken")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSameAccount       = errors.New("cannot transfer to the same account")
)
