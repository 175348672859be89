package eval

import (
	"fmt"
	"os"
	"path/filepath"
)

// LoadTestCases loads every regular file in a directory as a test case. The
// file name becomes the record's name. An unreadable directory or file is
// fatal to the whole run.
func LoadTestCases(dir string) ([]*TestCase, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read test directory: %w", err)
	}

	var testCases []*TestCase
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read test case %s: %w", entry.Name(), err)
		}
		testCases = append(testCases, &TestCase{
			Name: entry.Name(),
			Raw:  string(data),
		})
	}

	return testCases, nil
}
