package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidInterval      ErrorCode = 102
	ErrCodeInvalidPeriod        ErrorCode = 103
	ErrCodeInvalidDateRange     ErrorCode = 104
	ErrCodeInvalidFormat        ErrorCode = 105
	ErrCodeInvalidTicker        ErrorCode = 106

	// Series errors (200-299)
	ErrCodeEmptySeries         ErrorCode = 200
	ErrCodeMissingTimestamp    ErrorCode = 201
	ErrCodeDuplicateTimestamp  ErrorCode = 202
	ErrCodeUnorderedTimestamps ErrorCode = 203
	ErrCodeAllValuesMissing    ErrorCode = 204

	// Fetch errors (300-399)
	ErrCodeFetchFailed    ErrorCode = 300
	ErrCodeNoDataReturned ErrorCode = 301

	// Persistence errors (400-499)
	ErrCodeWriteFailed       ErrorCode = 400
	ErrCodeStatsFailed       ErrorCode = 401
	ErrCodeUnsupportedFormat ErrorCode = 402
	ErrCodeOutputPathFailed  ErrorCode = 403
)
