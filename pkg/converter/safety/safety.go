// Package safety implements the file-safety layer that gates every
// destructive write: content fingerprinting, conversion-collision detection,
// versioned backups, and interactive overwrite confirmation.
package safety

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/FSSCoding/fss-parse-word/pkg/util"
)

// Sentinel errors surfaced by the gate. The converter package re-exports
// these so callers can match them with errors.Is at either level.
var (
	ErrCollision     = errors.New("conversion collision detected")
	ErrUserCancelled = errors.New("user cancelled overwrite")
	ErrNoTerminal    = errors.New("confirmation required but no terminal attached")
	ErrBackupFailed  = errors.New("backup creation failed")
)

// Policy holds the four independent switches consulted before any
// destructive write. PreventOverwrite is the master switch for the prompt;
// collision detection is unconditional and not represented here.
type Policy struct {
	RequireConfirmation bool   `mapstructure:"require_confirmation" yaml:"require_confirmation"`
	CreateBackup        bool   `mapstructure:"create_backup" yaml:"create_backup"`
	ValidateHash        bool   `mapstructure:"check_hash" yaml:"check_hash"`
	PreventOverwrite    bool   `mapstructure:"prevent_overwrite" yaml:"prevent_overwrite"`
	BackupSuffix        string `mapstructure:"backup_suffix" yaml:"backup_suffix"`
}

// DefaultPolicy returns the policy used when no flags override it:
// everything on.
func DefaultPolicy() Policy {
	return Policy{
		RequireConfirmation: true,
		CreateBackup:        true,
		ValidateHash:        true,
		PreventOverwrite:    true,
		BackupSuffix:        ".backup",
	}
}

// hashBlockSize is the streaming block size used when fingerprinting files.
const hashBlockSize = 4096

// Fingerprint computes the SHA-256 hex digest of the file at path, streaming
// the content in fixed-size blocks. A missing file yields an empty digest and
// no error; that sentinel lets collision checks treat "absent" uniformly.
func Fingerprint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("open %s for hashing: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, hashBlockSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// IsCollision reports whether writing sourcePath's conversion over targetPath
// would destroy content from a different lineage: the target exists, shares
// the source's stem, and hashes differently. A target with identical content
// is an idempotent reconversion, not a collision.
func IsCollision(sourcePath, targetPath string) (bool, error) {
	if _, err := os.Stat(targetPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", targetPath, err)
	}
	if util.Stem(sourcePath) != util.Stem(targetPath) {
		return false, nil
	}

	sourceHash, err := Fingerprint(sourcePath)
	if err != nil {
		return false, err
	}
	targetHash, err := Fingerprint(targetPath)
	if err != nil {
		return false, err
	}
	return sourceHash != targetHash, nil
}
