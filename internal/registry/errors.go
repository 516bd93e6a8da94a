package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCharacter reports a non-ASCII byte in a repository name.
	ErrInvalidCharacter = errors.New("invalid character")
	// ErrFetch reports a transport failure or an unexpected HTTP status.
	ErrFetch = errors.New("fetching error")
	// ErrDecode reports a response that does not match the expected schema.
	ErrDecode = errors.New("decoding error")
	// ErrNoImage reports an image token that holds no usable reference.
	ErrNoImage = errors.New("no image reference")
)

// InvalidCharacterError carries the offending rune and its byte offset.
type InvalidCharacterError struct {
	Name   string
	Char   rune
	Offset int
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("%s %q at offset %d in %q", ErrInvalidCharacter, e.Char, e.Offset, e.Name)
}

func (e *InvalidCharacterError) Is(target error) bool {
	return target == ErrInvalidCharacter
}

// FetchError wraps a failed request.
type FetchError struct {
	URL    string
	Status int
	Body   string
	Err    error
}

func (e *FetchError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", ErrFetch, e.URL, e.Err)
	case e.Body != "":
		return fmt.Sprintf("%s: %s: status %d: %s", ErrFetch, e.URL, e.Status, e.Body)
	default:
		return fmt.Sprintf("%s: %s: status %d", ErrFetch, e.URL, e.Status)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// DecodeError wraps a response that could not be interpreted.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrDecode, e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
