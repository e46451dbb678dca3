package dto

type ImportDiagnostic struct {
	Line    int    `json:"line"`
	UseCase string `json:"useCase,omitempty"`
	Reason  string `json:"reason"`
}

type ImportSummary struct {
	Total       int                `json:"total"`
	Inserted    int                `json:"inserted"`
	Skipped     int                `json:"skipped"`
	Duplicates  int                `json:"duplicates"`
	Errors      int                `json:"errors"`
	DryRun      bool               `json:"dryRun"`
	Diagnostics []ImportDiagnostic `json:"diagnostics"`
	// DiagnosticsTruncated is set once more rows needed a diagnostic than were kept.
	DiagnosticsTruncated bool `json:"diagnosticsTruncated"`
}
