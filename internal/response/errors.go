package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials     ErrCode = "INVALID_CREDENTIALS"
	ErrUnauthorized           ErrCode = "UNAUTHORIZED"
	ErrTokenRequired          ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid           ErrCode = "TOKEN_INVALID"
	ErrInvalidCurrentPassword ErrCode = "INVALID_CURRENT_PASSWORD"
	ErrInvalidInviteToken     ErrCode = "INVALID_INVITE_TOKEN"
	ErrInvalidResetToken      ErrCode = "INVALID_RESET_TOKEN"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrPermissionDenied ErrCode = "PERMISSION_DENIED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound           ErrCode = "NOT_FOUND"
	ErrEmailTaken         ErrCode = "EMAIL_TAKEN"
	ErrAlreadyAssigned    ErrCode = "ALREADY_ASSIGNED"
	ErrNotAssigned        ErrCode = "NOT_ASSIGNED"
	ErrRoleUnchanged      ErrCode = "ROLE_UNCHANGED"
	ErrLeadNotConvertible ErrCode = "LEAD_NOT_CONVERTIBLE"
	ErrConflict           ErrCode = "CONFLICT"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
// Authentication failures deliberately share generic wording so responses
// do not reveal which factor failed.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Incorrect credentials."
	case ErrUnauthorized:
		return "Unauthorized."
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Authentication token is invalid or expired."
	case ErrInvalidCurrentPassword:
		return "Incorrect credentials."
	case ErrInvalidInviteToken:
		return "Invalid invite link."
	case ErrInvalidResetToken:
		return "Invalid token."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrPermissionDenied:
		return "You do not have permission to perform this action."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrEmailTaken:
		return "This email is already registered."
	case ErrAlreadyAssigned:
		return "User is already assigned this project."
	case ErrNotAssigned:
		return "User has not been assigned this project."
	case ErrRoleUnchanged:
		return "User already has this role."
	case ErrLeadNotConvertible:
		return "Lead must be in NEW or IN_PROGRESS state."
	case ErrConflict:
		return "Resource already exists."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Something went wrong."
	default:
		return "An unexpected error occurred."
	}
}
