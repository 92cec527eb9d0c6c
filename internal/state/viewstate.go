package state

import (
	"encoding/json"
)

// Kind identifies the active ViewState variant
type Kind int

const (
	KindLoading Kind = iota
	KindSuccess
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "loading"
	}
}

// ViewState is the lifecycle of one asynchronous fetch: Loading, Success or Error.
// The zero value is Loading.
type ViewState[T any] struct {
	kind    Kind
	data    T
	message string
}

// Loading returns the pending state
func Loading[T any]() ViewState[T] {
	return ViewState[T]{kind: KindLoading}
}

// Success returns a completed state carrying data
func Success[T any](data T) ViewState[T] {
	return ViewState[T]{kind: KindSuccess, data: data}
}

// Failure returns a failed state carrying a human-readable message
func Failure[T any](message string) ViewState[T] {
	return ViewState[T]{kind: KindError, message: message}
}

// Kind returns the active variant
func (s ViewState[T]) Kind() Kind {
	return s.kind
}

func (s ViewState[T]) IsLoading() bool { return s.kind == KindLoading }
func (s ViewState[T]) IsSuccess() bool { return s.kind == KindSuccess }
func (s ViewState[T]) IsError() bool   { return s.kind == KindError }

// Data returns the payload when the state is Success
func (s ViewState[T]) Data() (T, bool) {
	if s.kind != KindSuccess {
		var zero T
		return zero, false
	}
	return s.data, true
}

// Message returns the failure text when the state is Error
func (s ViewState[T]) Message() (string, bool) {
	if s.kind != KindError {
		return "", false
	}
	return s.message, true
}

// Map transforms the payload of a Success state, passing Loading and Error through
func Map[T, U any](s ViewState[T], fn func(T) U) ViewState[U] {
	switch s.kind {
	case KindSuccess:
		return Success(fn(s.data))
	case KindError:
		return Failure[U](s.message)
	default:
		return Loading[U]()
	}
}

type viewStateJSON[T any] struct {
	Status  string `json:"status"`
	Data    *T     `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// MarshalJSON renders the state as {"status": ..., "data"|"message": ...}
func (s ViewState[T]) MarshalJSON() ([]byte, error) {
	out := viewStateJSON[T]{Status: s.kind.String()}
	switch s.kind {
	case KindSuccess:
		data := s.data
		out.Data = &data
	case KindError:
		out.Message = s.message
	}
	return json.Marshal(out)
}
