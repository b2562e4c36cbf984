package questiongen

import "fmt"

// InterpretationError means the interpreter call failed or returned
// content that could not be mapped to curriculum skills. Fatal to the
// session start; the interpreter itself is never retried.
type InterpretationError struct {
	Err error
}

func (e *InterpretationError) Error() string {
	return fmt.Sprintf("question interpretation failed: %v", e.Err)
}

func (e *InterpretationError) Unwrap() error { return e.Err }

// ExhaustedError means the attempt budget was spent without a single
// accepted candidate.
type ExhaustedError struct {
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("generation exhausted: no candidate accepted after %d attempts", e.Attempts)
}

// DegradedError reports that the attempt budget ran out with some, but
// not all, requested items accepted. The pipeline still returns the
// partial result; callers detect degradation with errors.As and proceed
// with fewer questions.
type DegradedError struct {
	Requested int
	Generated int
	Attempts  int
}

func (e *DegradedError) Error() string {
	return fmt.Sprintf("degraded generation: %d of %d items after %d attempts", e.Generated, e.Requested, e.Attempts)
}
