package apperrors

// ErrorCode is the machine readable kind of an AppError
type ErrorCode string

const (
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeDuplicateEmail     ErrorCode = "DUPLICATE_EMAIL"
	CodeWrongPassword      ErrorCode = "WRONG_PASSWORD"
	CodeUnverified         ErrorCode = "UNVERIFIED"
	CodeInvalidTransition  ErrorCode = "INVALID_TRANSITION"
	CodePersistenceFailure ErrorCode = "PERSISTENCE_FAILURE"
	CodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeNotImplemented     ErrorCode = "NOT_IMPLEMENTED"
	CodeInternalError      ErrorCode = "INTERNAL_ERROR"
)
