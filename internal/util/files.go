package util

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Stem returns the file name without its directory or extension.
func Stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Ext returns the lower-cased file extension without the leading dot.
func Ext(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// WaitFileStable waits until two consecutive size checks separated by delay
// agree, so a file still being written is not picked up half-way.
func WaitFileStable(path string, delay time.Duration) error {
	var lastSize int64 = -1
	for i := 0; i < 5; i++ {
		fi, err := os.Stat(path)
		if err != nil {
			return err
		}
		if fi.Size() == lastSize {
			return nil
		}
		lastSize = fi.Size()
		time.Sleep(delay)
	}
	return nil
}
