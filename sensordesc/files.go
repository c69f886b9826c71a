package sensordesc

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// CleanedFileSuffix is appended to a description's path to name its normalized copy.
const CleanedFileSuffix = ".cleaned.json"

// CleanedFileName returns the path the normalized copy of path is written to.
func CleanedFileName(path string) string {
	return path + CleanedFileSuffix
}

// IsCleanedFile reports whether path names a normalized copy.
func IsCleanedFile(path string) bool {
	return strings.HasSuffix(path, CleanedFileSuffix)
}

// ReadSensorTypeFile reads and parses a sensor type description.
func ReadSensorTypeFile(path string) (*SensorType, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read sensor type file %q", path)
	}
	st, err := ParseSensorType(data)
	if err != nil {
		return nil, errors.Wrapf(err, "sensor type file %q", path)
	}
	return st, nil
}

// ReadVehicleFile reads and parses a vehicle description.
func ReadVehicleFile(path string) (*Vehicle, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read vehicle file %q", path)
	}
	v, err := ParseVehicle(data)
	if err != nil {
		return nil, errors.Wrapf(err, "vehicle file %q", path)
	}
	return v, nil
}

func readFile(path string) ([]byte, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer utils.UncheckedErrorFunc(f.Close)
	return io.ReadAll(f)
}

// WriteJSONFile writes data to path, replacing any existing file.
func WriteJSONFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return errors.Wrapf(err, "cannot write %q", path)
	}
	return nil
}

// JSONFilesInDirectory lists the JSON descriptions directly inside dir in sorted order, skipping
// normalized copies.
func JSONFilesInDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot list %q", dir)
	}
	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || IsCleanedFile(name) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}
