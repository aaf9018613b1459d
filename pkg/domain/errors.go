package domain

import "errors"

// ErrResultNotFound is returned when an expansion ID cannot be found in the store.
var ErrResultNotFound = errors.New("result not found")

// ErrUnknownPreprocessor is returned when a preprocessor name is not supported.
var ErrUnknownPreprocessor = errors.New("unknown preprocessor")

// ErrConfigOutdated is returned when the configuration file release does not match the binary.
var ErrConfigOutdated = errors.New("configuration file is out of date")

// ErrInputNotFound is returned when the root input file does not exist.
var ErrInputNotFound = errors.New("input file could not be found")

// ErrInputUnreadable is returned when the root input file exists but cannot be read.
var ErrInputUnreadable = errors.New("input file could not be read [IO issue]")

// ErrPathOutsideRoots is returned when a confined engine is given a search path outside its roots.
var ErrPathOutsideRoots = errors.New("search path outside the allowed roots")

// ErrUnconfinable is returned when a confined engine selects a preprocessor that reads files on its own.
var ErrUnconfinable = errors.New("preprocessor cannot be confined to roots")

// ErrInvalidID is returned when a result ID cannot name a stored record.
var ErrInvalidID = errors.New("invalid result ID")
