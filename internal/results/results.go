// Package results defines the success/failure pair every service operation
// returns. Business failures travel in the Failure payload; infrastructure
// problems travel as ordinary Go errors alongside.
package results

// OperationResult holds at most one of a success or a failure payload.
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
}

// IsSuccess reports whether a success payload is present.
func (r OperationResult[S, F]) IsSuccess() bool {
	return r.Success != nil
}

// IsFailure reports whether a failure payload is present.
func (r OperationResult[S, F]) IsFailure() bool {
	return r.Failure != nil
}

// Success wraps a success payload.
func Success[S any, F any](s S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &s}
}

// Failure wraps a failure payload.
func Failure[S any, F any](f F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &f}
}
