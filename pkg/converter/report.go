package converter

import "time"

// Report summarizes a completed conversion run for the caller. All fields are
// informational; the run's success is signaled by Convert's error return.
type Report struct {
	// Direction is the concrete direction the run executed.
	Direction Direction

	// SourcePath and TargetPath are the resolved input and output files.
	SourcePath string
	TargetPath string

	// SourceHash and TargetHash are SHA-256 hex digests, computed before the
	// run and after the write respectively. TargetHash is empty when hash
	// validation is disabled.
	SourceHash string
	TargetHash string

	// BackupPath is the pre-overwrite backup, if one was created.
	BackupPath string

	// Counts of structural elements processed.
	Paragraphs int
	Headings   int
	Tables     int
	Lists      int
	Links      int

	// Duration is the wall-clock time of the run.
	Duration time.Duration

	// Warnings collects non-fatal issues (failed backup, unverifiable
	// metadata, encoding fallback).
	Warnings []string
}

func (r *Report) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

func (r *Report) finish(start time.Time) {
	r.Duration = time.Since(start)
}
