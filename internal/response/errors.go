package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrTokenRequired ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid  ErrCode = "TOKEN_INVALID"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation           ErrCode = "VALIDATION_ERROR"
	ErrInvalidID            ErrCode = "INVALID_ID"
	ErrInvalidQuestionCount ErrCode = "INVALID_QUESTION_COUNT"

	// ─── Test sessions ─────────────────────────────────────────────────
	ErrNoActiveSession ErrCode = "NO_ACTIVE_SESSION"
	ErrNoResponses     ErrCode = "NO_RESPONSES"

	// ─── External collaborators ────────────────────────────────────────
	ErrProviderFailure ErrCode = "PROVIDER_ERROR"
	ErrModelParse      ErrCode = "MODEL_PARSE_ERROR"

	// ─── Pattern analysis ──────────────────────────────────────────────
	ErrInsufficientData   ErrCode = "INSUFFICIENT_DATA"
	ErrAnalysisInProgress ErrCode = "ANALYSIS_IN_PROGRESS"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid or has expired."
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "The supplied id is not valid."
	case ErrInvalidQuestionCount:
		return "The question count must be a positive number."
	case ErrNoActiveSession:
		return "There is no active test session. Start a test first."
	case ErrNoResponses:
		return "No responses were found for this test."
	case ErrProviderFailure:
		return "An external service failed. Please try again."
	case ErrModelParse:
		return "The AI response could not be understood. Please try again."
	case ErrInsufficientData:
		return "Not enough data to analyze patterns. Complete at least 5 questions."
	case ErrAnalysisInProgress:
		return "A pattern analysis is already running for this account."
	case ErrNotFound:
		return "The requested resource was not found."
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
