package domain

import "errors"

var (
	// Not-found errors
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrMerchantNotFound    = errors.New("merchant not found")

	// Request errors
	ErrCardNotSupported = errors.New("card services are currently unavailable, please try again later")

	// Processing errors
	ErrTransactionAlreadyPosted    = errors.New("transaction is already posted, unable to process")
	ErrTransactionNotProcessing    = errors.New("transaction is in an invalid state")
	ErrTransactionAlreadyValidated = errors.New("transaction already validated")
	ErrTransactionNotProcessed     = errors.New("transaction needs to be processed before it is posted")
	ErrTransactionStillPending     = errors.New("cannot post a transaction that is pending")
	ErrTransactionNotPosted        = errors.New("transaction has not been posted")
	ErrInvalidTransition           = errors.New("invalid lifecycle transition")

	// Conflict errors
	ErrTransactionPosted = errors.New("transaction is already posted")
)

// ErrorClass buckets business errors for surfacing to callers. The core
// never retries business errors; callers map classes to exit codes or
// transport statuses.
type ErrorClass int

const (
	ClassInternal ErrorClass = iota
	ClassNotFound
	ClassBadRequest
	ClassUnprocessable
	ClassConflict
)

// Classify maps a business error to its class. Unknown errors are
// internal.
func Classify(err error) ErrorClass {
	switch {
	case errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrTransactionNotFound),
		errors.Is(err, ErrMerchantNotFound):
		return ClassNotFound
	case errors.Is(err, ErrCardNotSupported),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrAmountTooLarge),
		errors.Is(err, ErrInvalidTransactionType),
		errors.Is(err, ErrInvalidTransactionMethod),
		errors.Is(err, ErrInvalidAccountNumber),
		errors.Is(err, ErrInvalidAccountKind),
		errors.Is(err, ErrInvalidMerchantCode),
		errors.Is(err, ErrInvalidOwnerName):
		return ClassBadRequest
	case errors.Is(err, ErrTransactionAlreadyPosted),
		errors.Is(err, ErrTransactionNotProcessing),
		errors.Is(err, ErrTransactionAlreadyValidated),
		errors.Is(err, ErrTransactionNotProcessed),
		errors.Is(err, ErrTransactionStillPending),
		errors.Is(err, ErrTransactionNotPosted),
		errors.Is(err, ErrInvalidTransition):
		return ClassUnprocessable
	case errors.Is(err, ErrTransactionPosted):
		return ClassConflict
	default:
		return ClassInternal
	}
}
