package pipeline

import (
	"encoding/json"
	"time"

	"github.com/diskforge/diskforge/pkg/cache"
	"github.com/diskforge/diskforge/pkg/disk"
)

// Manifest records what a pipeline run produced. The kit command
// writes it alongside the exported files so a printout folder is
// self-describing.
type Manifest struct {
	RunID       string          `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Kind        string          `json:"kind,omitempty"`
	Style       string          `json:"style,omitempty"`
	Spec        disk.Spec       `json:"spec"`
	PlanHash    string          `json:"plan_hash,omitempty"`
	Entries     []ManifestEntry `json:"entries"`
}

// ManifestEntry describes one exported file.
type ManifestEntry struct {
	File   string `json:"file"`
	Format string `json:"format"`
	Size   int    `json:"size"`
	SHA256 string `json:"sha256"`
}

// NewManifest starts a manifest for a completed run.
func NewManifest(result *Result, opts Options) *Manifest {
	return &Manifest{
		RunID:       result.RunID,
		GeneratedAt: time.Now().UTC(),
		Kind:        opts.Kind,
		Style:       opts.Style,
		Spec:        opts.Spec,
		PlanHash:    result.PlanHash,
	}
}

// Add records an exported file.
func (m *Manifest) Add(file, format string, data []byte) {
	m.Entries = append(m.Entries, ManifestEntry{
		File:   file,
		Format: format,
		Size:   len(data),
		SHA256: cache.Hash(data),
	})
}

// Marshal encodes the manifest as indented JSON.
func (m *Manifest) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
