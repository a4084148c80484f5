package feasth

import (
	"fmt"
	"os"
)

type ErrorKind int

const (
	IOError ErrorKind = iota
	IntParseError
)

// ParseError tags a failure with its kind. The cause is kept as is.
type ParseError struct {
	Kind ErrorKind
	Err  error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case IOError:
		return fmt.Sprintf("IO Error: %v", e.Err)
	default:
		return fmt.Sprintf("Int Parse Error: %v", e.Err)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func ioError(err error) error {
	return &ParseError{Kind: IOError, Err: err}
}

func intParseError(err error) error {
	return &ParseError{Kind: IntParseError, Err: err}
}

// LoadFile reads the whole file into memory.
func LoadFile(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", ioError(err)
	}
	return string(data), nil
}
