package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// maxFramesFileSize caps the size of a frames file.
const maxFramesFileSize = 64 * 1024 * 1024 // 64MB

// LoadFrames reads frames from a JSON file of the form
//
//	[{"id": "f1", "pred": [[30, 50], [44, 70]], "gt": [[31, 51], [43, 70]]}]
//
// Point sets are not validated here; malformed frames are reported per
// frame when the harness scores them.
func LoadFrames(path string) ([]Frame, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("frames file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat frames file: %w", err)
	}
	if fileInfo.Size() > maxFramesFileSize {
		return nil, fmt.Errorf("frames file too large: %d bytes (max %d)", fileInfo.Size(), maxFramesFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read frames file: %w", err)
	}

	var frames []Frame
	if err := json.Unmarshal(data, &frames); err != nil {
		return nil, fmt.Errorf("failed to parse frames JSON: %w", err)
	}
	return frames, nil
}
