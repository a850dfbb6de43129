// Package seed holds the bundled default content used on first run and as the
// per-key fallback when stored data is missing or unreadable.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/khoahotran/scholar-folio/internal/domain/content"
)

//go:embed defaults.json
var defaultsJSON []byte

var defaults content.Snapshot

func init() {
	if err := json.Unmarshal(defaultsJSON, &defaults); err != nil {
		panic(fmt.Sprintf("seed: bundled defaults are invalid: %v", err))
	}
	defaults.Profile = defaults.Profile.Normalize()
	for _, c := range content.All() {
		if err := c.CheckIDs(&defaults); err != nil {
			panic(fmt.Sprintf("seed: bundled defaults: %v", err))
		}
	}
}

// Defaults returns a fresh copy of the bundled content.
func Defaults() content.Snapshot {
	return defaults.Clone()
}
