package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	AccountNotFound       ErrorCode = "account_not_found"
	InvalidAmount         ErrorCode = "invalid_amount"
	InvalidInput          ErrorCode = "invalid_input"
	CreditLimitExceeded   ErrorCode = "credit_limit_exceeded"
	PaymentExceedsBalance ErrorCode = "payment_exceeds_balance"
	OutOfOrderTransaction ErrorCode = "out_of_order_transaction"
	DayOutOfPeriod        ErrorCode = "day_out_of_period"
	DuplicateAccount      ErrorCode = "duplicate_account"
	InternalError         ErrorCode = "internal_error"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an AppError carrying the same code, so that
// errors.Is works against the predefined errors below even after WithDetails.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NewAppErrorf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetails returns a copy of e with details attached. The receiver is left
// untouched since the predefined errors are shared.
func (e *AppError) WithDetails(details string) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// HTTPStatus maps the error code to the status code the API responds with.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case AccountNotFound:
		return http.StatusNotFound
	case InvalidAmount, InvalidInput, DayOutOfPeriod:
		return http.StatusBadRequest
	case CreditLimitExceeded, PaymentExceedsBalance:
		return http.StatusUnprocessableEntity
	case OutOfOrderTransaction, DuplicateAccount:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// FromError extracts the AppError carried by err. Anything else is reported
// as an internal error with the original message kept as details.
func FromError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return NewAppError(InternalError, "an unexpected error occurred").WithDetails(err.Error())
}

// Predefined errors for common cases
var (
	ErrAccountNotFound        = NewAppError(AccountNotFound, "account not found")
	ErrInvalidAccountID       = NewAppError(InvalidInput, "invalid account id")
	ErrInvalidAmount          = NewAppError(InvalidAmount, "amount must be greater than zero")
	ErrInvalidRate            = NewAppError(InvalidInput, "annual rate must be greater than zero")
	ErrInvalidCreditLimit     = NewAppError(InvalidAmount, "credit limit must be greater than zero")
	ErrInvalidPeriodLength    = NewAppError(InvalidInput, "period length must be greater than zero")
	ErrCreditLimitExceeded    = NewAppError(CreditLimitExceeded, "draw exceeds available credit")
	ErrPaymentExceedsBalance  = NewAppError(PaymentExceedsBalance, "payment exceeds amount owed")
	ErrOutOfOrderTransaction  = NewAppError(OutOfOrderTransaction, "day precedes the most recent transaction")
	ErrDayOutOfPeriod         = NewAppError(DayOutOfPeriod, "day falls outside the billing period")
	ErrDuplicateAccount       = NewAppError(DuplicateAccount, "account already exists")
	ErrCannotBeginTransaction = NewAppError(InternalError, "cannot begin a transaction on this store")
)
