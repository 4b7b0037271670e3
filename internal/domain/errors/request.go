package errors

import "fmt"

// RequestErrorKind tags the variant of RequestError.
type RequestErrorKind string

const (
	KindNetworkUnreachable RequestErrorKind = "network_unreachable"
	KindServerError        RequestErrorKind = "server_error"
	KindUnknown            RequestErrorKind = "unknown"
)

const (
	networkUnreachableMessage = "Connection Blocked. Please check your backend connection."
	unknownFallbackMessage    = "Unknown error occurred."
)

// RequestError is the classified outcome of a failed prediction call.
// Status is meaningful for KindServerError only; Message for KindUnknown only.
type RequestError struct {
	Kind    RequestErrorKind
	Status  int
	Message string
	cause   error
}

// NetworkUnreachable reports a transport failure where no response was received.
func NetworkUnreachable(cause error) *RequestError {
	return &RequestError{Kind: KindNetworkUnreachable, cause: cause}
}

// ServerError reports a response received with a non-2xx status.
func ServerError(status int) *RequestError {
	return &RequestError{Kind: KindServerError, Status: status}
}

// Unknown reports any other failure with the best available diagnostic text.
func Unknown(message string, cause error) *RequestError {
	return &RequestError{Kind: KindUnknown, Message: message, cause: cause}
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case KindNetworkUnreachable:
		if e.cause != nil {
			return fmt.Sprintf("network unreachable: %v", e.cause)
		}
		return "network unreachable"
	case KindServerError:
		return fmt.Sprintf("server error: status %d", e.Status)
	default:
		return fmt.Sprintf("unknown error: %s", e.Message)
	}
}

func (e *RequestError) Unwrap() error {
	return e.cause
}

// UserMessage is the text shown to the user for this error.
func (e *RequestError) UserMessage() string {
	switch e.Kind {
	case KindNetworkUnreachable:
		return networkUnreachableMessage
	case KindServerError:
		return fmt.Sprintf("Server Error: %d", e.Status)
	default:
		if e.Message == "" {
			return unknownFallbackMessage
		}
		return e.Message
	}
}
