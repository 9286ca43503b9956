package fileutil

import (
	"io"
	"os"
	"path/filepath"

	"github.com/thoreinstein/vsave/internal/errors"
)

// CopyTree recursively copies the contents of src into dst, preserving file
// permissions. Empty subdirectories are reproduced. Files already present in
// dst keep their siblings: entries with the same relative path are
// overwritten, everything else in dst is left alone.
//
// dst is created if it does not exist.
func CopyTree(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.Wrapf(err, "stat %s", src)
	}
	if !info.IsDir() {
		return errors.Newf("%s is not a directory", src)
	}

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", dst)
	}

	return copyDir(src, dst)
}

// CountTree returns the number of files in the tree rooted at dir.
// Directories themselves are not counted.
func CountTree(dir string) (int, error) {
	count := 0
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "walking %s", dir)
	}
	return count, nil
}

// copyDir recursively copies a directory from src to dst.
// dst is expected to already exist.
func copyDir(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, "reading directory %s", src)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := os.MkdirAll(dstPath, 0o755); err != nil {
				return errors.Wrapf(err, "creating directory %s", dstPath)
			}
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}

	return nil
}

// copyFile copies a single file from src to dst, preserving the source mode.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "opening source file %s", src)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return errors.Wrapf(err, "stat source file %s", src)
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return errors.Wrapf(err, "creating destination file %s", dst)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return errors.Wrapf(err, "copying %s", src)
	}

	if err := dstFile.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", dst)
	}

	// O_CREATE only applies the mode to new files; existing files keep theirs
	if err := os.Chmod(dst, srcInfo.Mode()); err != nil {
		return errors.Wrapf(err, "setting permissions on %s", dst)
	}

	return nil
}
