package podcast

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteSidecar writes the podcast metadata JSON next to the audio file.
func WriteSidecar(p Podcast, path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

// ReadSidecar loads podcast metadata from a sidecar file.
func ReadSidecar(path string) (Podcast, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Podcast{}, fmt.Errorf("read metadata: %w", err)
	}
	var p Podcast
	if err := json.Unmarshal(data, &p); err != nil {
		return Podcast{}, fmt.Errorf("parse metadata: %w", err)
	}
	return p, nil
}
