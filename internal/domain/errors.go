package domain

import "errors"

// ErrorKind — стабильный машиночитаемый код ошибки.
type ErrorKind string

const (
	KindMissingCriteria      ErrorKind = "MissingCriteria"
	KindInvalidOrderNumber   ErrorKind = "InvalidOrderNumber"
	KindInvalidEmail         ErrorKind = "InvalidEmail"
	KindNotFound             ErrorKind = "NotFound"
	KindRateLimited          ErrorKind = "RateLimited"
	KindUpstreamUnavailable  ErrorKind = "UpstreamUnavailable"
	KindUpstreamAuthError    ErrorKind = "UpstreamAuthError"
	KindUpstreamAccessDenied ErrorKind = "UpstreamAccessDenied"
	KindInternalError        ErrorKind = "InternalError"
)

var messages = map[ErrorKind]string{
	KindMissingCriteria:      "Please provide an order number or email address",
	KindInvalidOrderNumber:   "Invalid order number format",
	KindInvalidEmail:         "Invalid email format",
	KindNotFound:             "Order not found. Please check your order number or email address.",
	KindRateLimited:          "Too many requests, please try again later.",
	KindUpstreamUnavailable:  "Order service is temporarily unavailable",
	KindUpstreamAuthError:    "Order service authentication failed",
	KindUpstreamAccessDenied: "Order service access denied",
	KindInternalError:        "Internal server error",
}

// Message — человекочитаемое сообщение для кода; внутренних деталей не содержит.
func (k ErrorKind) Message() string {
	if m, ok := messages[k]; ok {
		return m
	}
	return messages[KindInternalError]
}

// Error — ошибка поиска заказа с кодом и исходной причиной.
type Error struct {
	Kind ErrorKind
	Err  error
}

// NewError — конструктор Error; cause может быть nil.
func NewError(kind ErrorKind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Message — сообщение для клиента.
func (e *Error) Message() string { return e.Kind.Message() }

// KindOf — код ошибки; всё, что не *Error, считается внутренней ошибкой.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternalError
}
