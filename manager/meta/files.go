package meta

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const tableFileName = "table.json"

var ErrOutsideStorage = errors.New("path resolves outside the storage folder")

func (m *MetaManager) getAbsStoragePath(segments ...string) string {

	pathSegments := []string{m.storagePath}
	pathSegments = append(pathSegments, segments...)

	return filepath.Join(pathSegments...)
}

// tableFolder resolves the folder of a table and refuses anything that is
// not a direct child of the storage path.
func (m *MetaManager) tableFolder(table string) (string, error) {

	root := filepath.Clean(m.storagePath)
	folder := m.getAbsStoragePath(table)

	rel, relErr := filepath.Rel(root, folder)
	if relErr != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || strings.ContainsRune(rel, filepath.Separator) {
		return "", fmt.Errorf("%w: table `%s`", ErrOutsideStorage, table)
	}

	return folder, nil
}

func (m *MetaManager) createStoragePathIfNotExists(folder string) (string, error) {

	if _, err := os.Stat(folder); err != nil {
		storageFolderErr := os.MkdirAll(folder, 0755)
		if storageFolderErr != nil {

			slog.Error("unable to create directory", "path", folder, "err", storageFolderErr)

			return "", storageFolderErr
		} else {
			slog.Debug("created table folder", "path", folder)
		}
	}

	return folder, nil
}

// TablePath returns the path of a file inside the table folder.
func (m *MetaManager) TablePath(table string, file string) (string, error) {

	folder, folderErr := m.tableFolder(table)
	if folderErr != nil {
		return "", folderErr
	}

	if file != filepath.Base(file) || file == "." || file == ".." {
		return "", fmt.Errorf("%w: file `%s`", ErrOutsideStorage, file)
	}

	return filepath.Join(folder, file), nil
}

// TableDir creates the table folder when missing.
func (m *MetaManager) TableDir(table string) (string, error) {

	folder, folderErr := m.tableFolder(table)
	if folderErr != nil {
		return "", folderErr
	}

	return m.createStoragePathIfNotExists(folder)
}
