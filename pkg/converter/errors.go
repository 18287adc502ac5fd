package converter

import (
	"errors"

	"github.com/FSSCoding/fss-parse-word/pkg/converter/safety"
)

// Sentinel errors returned by Convert. Callers discriminate with errors.Is;
// every failure is terminal for the invocation and there are no automatic
// retries. Gate errors are re-exported from the safety package so they match
// at either level.
var (
	// ErrConfigValidation indicates the Options struct failed validation
	// before any file was touched.
	ErrConfigValidation = errors.New("invalid conversion options")

	// ErrMissingSource indicates the input path does not exist.
	ErrMissingSource = errors.New("source file does not exist")

	// ErrCollision indicates the target exists, shares the source's stem, and
	// holds different content. This rejection is unconditional: no force flag
	// bypasses it, because the target belongs to a different lineage.
	ErrCollision = safety.ErrCollision

	// ErrUserCancelled indicates the operator declined the overwrite prompt.
	ErrUserCancelled = safety.ErrUserCancelled

	// ErrNoTerminal indicates confirmation was required but no controlling
	// terminal is attached. Treated as a failure, never as an implicit yes.
	ErrNoTerminal = safety.ErrNoTerminal

	// ErrBackupFailed indicates the pre-overwrite backup copy failed. The
	// gate downgrades it to a warning; it never blocks the write on its own.
	ErrBackupFailed = safety.ErrBackupFailed

	// ErrStructuralConversion wraps any unexpected failure while walking the
	// document or markup. Partial output may exist; callers must not assume
	// atomicity of the destination.
	ErrStructuralConversion = errors.New("structural conversion failed")

	// ErrWriteFailed indicates the converted output could not be written.
	ErrWriteFailed = errors.New("failed to write output file")

	// ErrBinaryInput indicates the markup source looks like binary data and
	// cannot be parsed as text.
	ErrBinaryInput = errors.New("markup input appears to be binary")
)
