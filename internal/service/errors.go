package service

import "errors"

// Domain error taxonomy. Handlers map these to typed response codes with
// errors.Is; services wrap them with context via fmt.Errorf("%w: ...").
var (
	// ErrInvalidRequest covers bad caller input, e.g. a non-positive
	// question count.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNoActiveSession is returned by session-dependent operations
	// when no test session is active for the user.
	ErrNoActiveSession = errors.New("no active test session")

	// ErrProvider is returned when an external collaborator (question
	// source, persistence, model API) failed or returned an unusable shape.
	ErrProvider = errors.New("provider error")

	// ErrInsufficientData is returned when pattern analysis is requested
	// with too few historical records.
	ErrInsufficientData = errors.New("not enough data to analyze patterns")

	// ErrParse is returned when a model response could not be interpreted
	// as the expected JSON shape.
	ErrParse = errors.New("failed to parse model response")

	// ErrAnalysisInProgress is returned when a pattern analysis for the
	// same user is already running.
	ErrAnalysisInProgress = errors.New("pattern analysis already in progress")
)
