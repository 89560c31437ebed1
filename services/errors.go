package services

import "errors"

type ErrorCode string

const (
	CodeNotFound          ErrorCode = "NOT_FOUND"
	CodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	CodeInvalidStatus     ErrorCode = "INVALID_STATUS"
	CodeInvalidData       ErrorCode = "INVALID_DATA"
	CodeFraudLimitReached ErrorCode = "FRAUD_LIMIT_REACHED"
	CodePaymentFailed     ErrorCode = "PAYMENT_FAILED"
	CodeInternal          ErrorCode = "INTERNAL"
)

// ServiceError is the typed error every service operation returns on a
// business failure. Handlers map codes to HTTP statuses; jobs log them.
type ServiceError struct {
	Code    ErrorCode
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{Code: CodeNotFound, Message: message}
}

func NewUnauthorizedError(message string) *ServiceError {
	return &ServiceError{Code: CodeUnauthorized, Message: message}
}

func NewInvalidStatusError(message string) *ServiceError {
	return &ServiceError{Code: CodeInvalidStatus, Message: message}
}

func NewInvalidDataError(message string) *ServiceError {
	return &ServiceError{Code: CodeInvalidData, Message: message}
}

func NewFraudLimitError(message string) *ServiceError {
	return &ServiceError{Code: CodeFraudLimitReached, Message: message}
}

func NewPaymentFailedError(message string) *ServiceError {
	return &ServiceError{Code: CodePaymentFailed, Message: message}
}

func NewInternalError(message string) *ServiceError {
	return &ServiceError{Code: CodeInternal, Message: message}
}

// IsCode reports whether err carries the given service error code.
func IsCode(err error, code ErrorCode) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.Code == code
}

// AsServiceError unwraps err into a ServiceError, or wraps it as INTERNAL.
func AsServiceError(err error) *ServiceError {
	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}
	return NewInternalError(err.Error())
}
