package safety

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/FSSCoding/fss-parse-word/pkg/util"
)

// Backup copies path to a versioned backup name before it is overwritten.
// The first backup of "file.md" is "file.md.backup"; subsequent ones take
// ".backup.1", ".backup.2", and so on, so a prior backup is never clobbered.
// A missing path is a no-op returning "". Copy failures wrap ErrBackupFailed;
// the gate downgrades them to warnings.
func Backup(path, suffix string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("%w: stat %s: %w", ErrBackupFailed, path, err)
	}

	backupPath := util.NumberedBackup(path, suffix, func(candidate string) bool {
		_, statErr := os.Stat(candidate)
		return statErr == nil
	})

	if err := copyFile(path, backupPath, info); err != nil {
		return "", fmt.Errorf("%w: %w", ErrBackupFailed, err)
	}
	return backupPath, nil
}

// copyFile performs a byte-for-byte copy preserving the mode and timestamps
// where the platform allows.
func copyFile(src, dst string, info fs.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}

	// Timestamp preservation is best effort.
	_ = os.Chtimes(dst, info.ModTime(), info.ModTime())
	return nil
}
