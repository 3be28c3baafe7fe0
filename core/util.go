package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	NowFunc   = func() time.Time { return time.Now().UTC() } // mockable
	NewIDFunc = func() string { return uuid.NewString() }    // mockable
)

// NewID returns a fresh unique identifier for a stored entity.
func NewID() string { return NewIDFunc() }

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// Getwd tries to find the project root, i.e. the closest directory holding a go.mod.
// go-test changes the working directory to the test package being run during tests,
// so the current directory cannot be used as is.
// Falls back to the current directory outside a source tree (e.g. an installed binary).
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	currDir := wd
	for {
		if fi, err := os.Stat(filepath.Join(currDir, "go.mod")); err == nil && !fi.IsDir() {
			return currDir
		}
		newDir := filepath.Dir(currDir)
		if newDir == currDir {
			return wd
		}
		currDir = newDir
	}
}
