package gen

import (
	"bytes"
	"io/fs"
	"os"

	"github.com/cockroachdb/errors"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes every file into its package directory.
func WriteFiles(files []GeneratedFile) error {
	for _, file := range files {
		if file.Dir == "" {
			return errors.Newf("no directory for package %s", file.PkgPath)
		}

		if err := os.MkdirAll(file.Dir, dirPerm); err != nil {
			return errors.Wrapf(err, "creating directory %s", file.Dir)
		}

		if err := os.WriteFile(file.Path(), file.Content, filePerm); err != nil {
			return errors.Wrapf(err, "writing file %s", file.Path())
		}
	}

	return nil
}

// Stale returns the paths of files whose content on disk differs from the
// generated content, including files that do not exist yet.
func Stale(files []GeneratedFile) ([]string, error) {
	var stale []string

	for _, file := range files {
		current, err := os.ReadFile(file.Path())
		if errors.Is(err, fs.ErrNotExist) {
			stale = append(stale, file.Path())
			continue
		}

		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", file.Path())
		}

		if !bytes.Equal(current, file.Content) {
			stale = append(stale, file.Path())
		}
	}

	return stale, nil
}
