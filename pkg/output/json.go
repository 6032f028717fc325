// Package output provides standardized output helpers for the opsreport CLI:
// JSON encoding to stdout or files, and tab-aligned terminal tables for the
// post-run summary.
package output

import (
	"encoding/json"
	"io"
	"os"
)

// JSONTo writes any data structure as formatted JSON to the specified writer.
func JSONTo(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// JSONToFile writes any data structure as formatted JSON to a file.
// The file is created with 0644 permissions if it doesn't exist.
func JSONToFile(filename string, data interface{}) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return JSONTo(file, data)
}
