package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// GenericMessage is shown when the API gave no usable message.
const GenericMessage = "Request failed. Please try again."

// ErrUnauthorized matches any *Error produced by a 401 response.
var ErrUnauthorized = errors.New("apiclient: unauthorized")

// Kind classifies why an operation was rejected.
type Kind int

const (
	// KindTransport: the request never produced a readable response.
	KindTransport Kind = iota + 1
	// KindHTTP: the API answered with a non-2xx status.
	KindHTTP
	// KindBusiness: 2xx with a {success:false} envelope.
	KindBusiness
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTP:
		return "http"
	case KindBusiness:
		return "business"
	}
	return "unknown"
}

// Error is the single rejected-operation type of the client. Message is
// always safe to show to the user.
type Error struct {
	Kind    Kind
	Method  string
	Path    string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "apiclient: %s %s: %s", e.Method, e.Path, e.Kind)
	if e.Status != 0 {
		fmt.Fprintf(&b, " %d", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil && !errors.Is(e.Err, ErrUnauthorized) {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Message returns the user-visible text for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return GenericMessage
}

// IsStatus reports whether err is an HTTP rejection with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindHTTP && apiErr.Status == status
}

// messageOf reads a server "message" value. NestJS validation errors send
// an array of strings; those are joined.
func messageOf(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.TrimSpace(strings.Join(list, ", "))
	}
	return ""
}

func orGeneric(msg string) string {
	if msg == "" {
		return GenericMessage
	}
	return msg
}
