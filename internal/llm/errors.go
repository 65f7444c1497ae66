// ABOUTME: Typed error kinds for completion call failures
// ABOUTME: Handlers map kinds to response text instead of inspecting error strings

package llm

import (
	"errors"
	"fmt"
)

// Kind classifies a completion call failure.
type Kind int

const (
	// KindUnknown is returned by KindOf for errors this package did not produce.
	KindUnknown Kind = iota
	// KindNetwork covers request construction, transport, timeout, and
	// non-2xx upstream statuses.
	KindNetwork
	// KindBadResponse covers undecodable bodies and responses missing the
	// expected choices/message/content shape.
	KindBadResponse
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindBadResponse:
		return "bad_response"
	default:
		return "unknown"
	}
}

// Error is the single error type produced by the completion client.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from err, or KindUnknown if err was not
// produced by this package.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

func networkErr(msg string, err error) *Error {
	return &Error{Kind: KindNetwork, Msg: msg, Err: err}
}

func badResponseErr(msg string, err error) *Error {
	return &Error{Kind: KindBadResponse, Msg: msg, Err: err}
}
