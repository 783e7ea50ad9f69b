package serializer

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-mcanim/engine/animation"
)

// WriteFile writes data to path in a single call. The file is created with mode 0644 or
// truncated if it exists, and is always closed before returning.
//
// Parameters:
//   - path: the destination file
//   - data: the bytes to write
//
// Returns:
//   - error: nil or an *animation.FileWriteError wrapping the open, write or close failure
func WriteFile(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return &animation.FileWriteError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &animation.FileWriteError{Path: path, Err: cerr}
		}
	}()

	n, err := f.Write(data)
	if err != nil {
		return &animation.FileWriteError{Path: path, Err: err}
	}
	if n != len(data) {
		return &animation.FileWriteError{Path: path, Err: fmt.Errorf("short write: %d of %d bytes", n, len(data))}
	}
	return nil
}
