package config

import (
	"errors"
	"fmt"
)

var (
	// ErrIO is matched by load errors caused by opening or reading the file.
	ErrIO = errors.New("config file could not be read")
	// ErrParse is matched by load errors caused by malformed or incomplete content.
	ErrParse = errors.New("config file could not be parsed")
)

// ErrorKind classifies a LoadError.
type ErrorKind int

const (
	// KindIO marks failures to open or read the file.
	KindIO ErrorKind = iota + 1
	// KindParse marks syntax errors, type mismatches and missing required fields.
	KindParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// LoadError describes why Load could not produce a Config.
type LoadError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	switch e.Kind {
	case KindIO:
		return fmt.Sprintf("read %s: %v", e.Path, e.Err)
	case KindParse:
		return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("load %s: %v", e.Path, e.Err)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match a LoadError against ErrIO or ErrParse.
func (e *LoadError) Is(target error) bool {
	switch target {
	case ErrIO:
		return e.Kind == KindIO
	case ErrParse:
		return e.Kind == KindParse
	}
	return false
}
