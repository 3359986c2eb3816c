package testsupport

import "os"

// LoadFixture reads a testdata file relative to the calling test.
func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}
