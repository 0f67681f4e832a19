package ocr

import (
	"errors"
	"fmt"
)

// Stage identifies the step of an invocation at which a failure occurred.
// Stage values double as process exit codes; callers depend on them staying
// fixed.
type Stage int

const (
	StageUsage       Stage = 2 // bad or missing arguments
	StageDependency  Stage = 3 // local engine or its libraries unavailable
	StageImageOpen   Stage = 4 // image file cannot be opened or read
	StageRecognition Stage = 5 // local engine failed while recognizing
	StageCapability  Stage = 6 // remote request could not be constructed
	StageCredential  Stage = 7 // required credential not configured
	StageTransport   Stage = 8 // remote request failed in transit
	StageParse       Stage = 9 // remote response violated the wire format
)

// Error ties an underlying failure to the stage that produced it.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap tags err with the stage it failed at. A nil err stays nil.
func Wrap(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Stage: stage, Err: err}
}

// Errorf builds a stage-tagged error from a format string.
func Errorf(stage Stage, format string, args ...any) error {
	return &Error{Stage: stage, Err: fmt.Errorf(format, args...)}
}

// ExitCode maps err to the process exit code. Errors carrying no stage
// report the generic failure code 1; nil reports success.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var stageErr *Error
	if errors.As(err, &stageErr) {
		return int(stageErr.Stage)
	}
	return 1
}
