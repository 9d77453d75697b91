package util

import (
	"fmt"
	"math"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatMediaFileSize renders a byte count as a human-readable string using
// binary units, capped at GB. Precision is the number of decimal places.
func FormatMediaFileSize(bytes int64, precision int) (string, error) {
	if bytes < 0 {
		return "", fmt.Errorf("bytes cannot be negative: %d", bytes)
	}
	if bytes == 0 {
		return fmt.Sprintf("%.*f %s", precision, 0.0, sizeUnits[0]), nil
	}

	idx := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if idx > len(sizeUnits)-1 {
		idx = len(sizeUnits) - 1
	}
	value := float64(bytes) / math.Pow(1024, float64(idx))
	return fmt.Sprintf("%.*f %s", precision, value, sizeUnits[idx]), nil
}
