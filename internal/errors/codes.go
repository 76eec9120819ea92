package errors

type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeConfigValidation Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError  Code = "CONFIG_READ_ERROR"
	CodeConfigParseError Code = "CONFIG_PARSE_ERROR"
	CodeConfigNotFound   Code = "CONFIG_NOT_FOUND"
	CodeNotImplemented   Code = "NOT_IMPLEMENTED"

	// Device configuration sources
	CodeSourceReadError Code = "SOURCE_READ_ERROR"
	CodeSourceNotFound  Code = "SOURCE_NOT_FOUND"

	// Filter host interface
	CodeUnknownFilter Code = "UNKNOWN_FILTER"
	CodeFilterArgs    Code = "FILTER_ARGS_ERROR"

	CodePatternError Code = "PATTERN_ERROR"
	CodeReportError  Code = "REPORT_ERROR"
	CodeAuditError   Code = "AUDIT_ERROR"
	// Returned when fail_on_drift is set and at least one device is not compliant.
	CodeDriftDetected Code = "DRIFT_DETECTED"
)

func (c Code) String() string {
	return string(c)
}
