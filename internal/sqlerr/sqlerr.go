// Package sqlerr specifically handles database driver errors.
//
// It parses SQLSTATE codes from pgx and converts them into
// user-friendly API errors (e.g. a foreign key violation becomes a
// "Bad Request", a row-level security rejection becomes "Forbidden").
package sqlerr

// Code is a driver-independent category for a database error.
type Code string

const (
	Other                 Code = "other"
	NotNullViolation      Code = "not_null_violation"
	ForeignKeyViolation   Code = "foreign_key_violation"
	UniqueViolation       Code = "unique_violation"
	CheckViolation        Code = "check_violation"
	ExclusionViolation    Code = "exclusion_violation"
	InsufficientPrivilege Code = "insufficient_privilege"
	InvalidTextRepr       Code = "invalid_text_representation"
	RaiseException        Code = "raise_exception"
	NoDataFound           Code = "no_data_found"
	SerializationFailure  Code = "serialization_failure"
	DeadlockDetected      Code = "deadlock_detected"
	InvalidState          Code = "object_not_in_prerequisite_state"
)

// MapCode maps a Postgres SQLSTATE onto Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "23P01":
		return ExclusionViolation
	case "42501":
		return InsufficientPrivilege
	case "22P02":
		return InvalidTextRepr
	case "P0001":
		return RaiseException
	case "P0002":
		return NoDataFound
	case "40001":
		return SerializationFailure
	case "40P01":
		return DeadlockDetected
	case "55000":
		return InvalidState
	default:
		return Other
	}
}

// Severity mirrors the Postgres message severity.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// MapSeverity normalises the driver severity string.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityFatal, SeverityPanic, SeverityWarning, SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}

// Error is a structured database error converted from *pgconn.PgError.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return string(e.Severity) + ": " + e.Message + " (" + string(e.Code) + ", SQLSTATE " + e.DatabaseCode + ")"
}

func (e *Error) Unwrap() error {
	return e.driverErr
}
