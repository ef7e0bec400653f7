package state

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// RunRecord summarizes one successful generation.
type RunRecord struct {
	// GameConfig is the openmw.cfg the run was resolved against
	GameConfig string `json:"gameConfig"`

	// GeneratedAt is when the overlay was written
	GeneratedAt time.Time `json:"generatedAt"`

	// OutputPath is the overlay file that was written
	OutputPath string `json:"outputPath"`

	// Checksum is the hash of the overlay bytes as written
	Checksum string `json:"checksum"`

	// Masters lists the contributing packages in load order
	Masters []MasterEntry `json:"masters"`

	// RecordCount is the total number of merged records
	RecordCount int `json:"recordCount"`

	Lights int `json:"lights"`
	Cells  int `json:"cells"`

	// Dropped is the number of patterns that failed to compile
	Dropped int `json:"dropped,omitempty"`

	// Failed lists packages that could not be parsed
	Failed []string `json:"failed,omitempty"`
}

// MasterEntry is one dependency of the overlay.
type MasterEntry struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// ComputeConfigID computes a stable ID for a game configuration path. It keys
// the run record file.
func ComputeConfigID(gameConfigPath string) string {
	sum := sha256.Sum256([]byte(gameConfigPath))
	return hex.EncodeToString(sum[:8])
}
