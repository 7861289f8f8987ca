package util

import (
	"fmt"
)

// MalformedInputError reports a hard parse failure with its source position.
// It aborts the run for the affected file; the caller decides whether to
// halt or skip.
type MalformedInputError struct {
	File string
	Line int
	Msg  string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("%s:%d: malformed input: %s", e.File, e.Line, e.Msg)
}

// AmbiguousExtractionError reports that more than one rule claimed the same
// argument of the same node. This is a configuration inconsistency, not a
// data error, and is fatal to the run.
type AmbiguousExtractionError struct {
	File  string
	Line  int
	Arg   int
	Rules [2]string
}

func (e *AmbiguousExtractionError) Error() string {
	return fmt.Sprintf("%s:%d: rules %q and %q both claim argument %d",
		e.File, e.Line, e.Rules[0], e.Rules[1], e.Arg)
}
