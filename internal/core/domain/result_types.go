package domain

// ConfigPair is a baseline line and the running line of the same command family
// that replaced it.
type ConfigPair struct {
	Baseline string `json:"baseline"`
	Running  string `json:"running"`
}

// DiffResult is the outcome of comparing running lines against a baseline.
// ExtraConfigs is never populated: lines present only in the running
// configuration are not reported.
type DiffResult struct {
	HasDifferences   bool         `json:"has_differences"`
	MissingConfigs   []string     `json:"missing_configs"`
	ExtraConfigs     []string     `json:"extra_configs"`
	DifferentConfigs []ConfigPair `json:"different_configs"`
	Summary          string       `json:"summary"`
}

type AuditStatus string

const (
	StatusCompliant AuditStatus = "COMPLIANT"
	StatusDrifted   AuditStatus = "DRIFTED"
	StatusError     AuditStatus = "ERROR"
)

// AuditResult is one device's audit as produced by the engine.
type AuditResult struct {
	Device    string
	NetworkOS string
	Platform  Platform
	Status    AuditStatus
	Diff      DiffResult
	// DiffLines is a rendered baseline-to-running line diff ("- ", "+ ", "  ", "? " prefixes).
	DiffLines []string
	Error     error
}
