package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadFixture returns the raw bytes of a fixture file.
func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// LoadGolden decodes a JSON fixture into v, rejecting unknown fields so stale
// fixtures fail loudly when a command payload changes shape.
func LoadGolden(path string, v any) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
