package batch

import (
	"encoding/json"
	"fmt"
	"os"

	"robot3d/internal/pose"
	"robot3d/internal/scenario"
)

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Index int        `json:"index"`
	Tick  uint64     `json:"tick"`
	Label string     `json:"label,omitempty"`
	Image string     `json:"image"`
	Modes []string   `json:"modes"`
	Pose  pose.State `json:"pose"`
}

// WriteManifest writes manifest.json describing frames to path.
func WriteManifest(path string, frames []scenario.Frame) error {
	entries := make([]ManifestEntry, len(frames))
	for i, fr := range frames {
		p := fr.Pose
		entries[i] = ManifestEntry{
			Index: fr.Index,
			Tick:  fr.Tick,
			Label: fr.Label,
			Image: FrameName(fr.Index),
			Modes: p.Modes(),
			Pose:  p,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write manifest %s: %w", path, err)
	}
	return nil
}
