package bisca

import "github.com/wagiedev/bisca-engine-go/internal/profiles"

// Profile holds the engine settings for one difficulty level.
type Profile = profiles.Profile

// DefaultProfileID is the profile used by front ends when none is requested.
const DefaultProfileID = profiles.DefaultID

// Profiles returns every difficulty profile, easiest first.
func Profiles() []Profile { return profiles.All() }

// ProfileByID looks up a profile by ID, display name or alias.
// Returns nil if no profile matches.
func ProfileByID(id string) *Profile { return profiles.ByID(id) }
