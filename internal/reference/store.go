package reference

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/mixgrade/mixgrade/pkg/logging"
)

//go:embed profiles/*.json
var embeddedProfiles embed.FS

// NeutralGenre is the built-in fallback profile used when a requested genre
// has no reference data.
const NeutralGenre = "neutral"

// Store holds the loaded genre profiles. Profiles are read-only after load;
// Reload swaps the whole map atomically so concurrent scoring calls never
// observe a partially updated set.
type Store struct {
	profiles atomic.Pointer[map[string]*Profile]
	logger   logging.Logger
}

// NewStore creates a store populated with the embedded genre profiles.
func NewStore(logger logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	store := &Store{logger: logger}

	profiles, err := loadEmbedded()
	if err != nil {
		return nil, err
	}
	store.profiles.Store(&profiles)

	return store, nil
}

// LoadDir merges profiles from a directory on top of the current set.
// Directory profiles override embedded ones with the same genre id. The swap
// is atomic.
func (s *Store) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read profile directory: %w", err)
	}

	current := *s.profiles.Load()
	merged := make(map[string]*Profile, len(current)+len(entries))
	for genre, profile := range current {
		merged[genre] = profile
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read profile %s: %w", entry.Name(), err)
		}
		profile, err := ParseProfile(data)
		if err != nil {
			return fmt.Errorf("invalid profile %s: %w", entry.Name(), err)
		}
		merged[profile.Genre] = profile
		loaded++
	}

	s.profiles.Store(&merged)

	s.logger.Debug("Genre profiles loaded from directory", logging.Fields{
		"dir":    dir,
		"loaded": loaded,
		"total":  len(merged),
	})
	return nil
}

// Put inserts or replaces a single profile, swapping the whole map.
func (s *Store) Put(profile *Profile) {
	current := *s.profiles.Load()
	merged := make(map[string]*Profile, len(current)+1)
	for genre, p := range current {
		merged[genre] = p
	}
	merged[profile.Genre] = profile
	s.profiles.Store(&merged)
}

// Get returns the profile for a genre and whether it exists.
func (s *Store) Get(genre string) (*Profile, bool) {
	profiles := *s.profiles.Load()
	profile, ok := profiles[strings.ToLower(strings.TrimSpace(genre))]
	return profile, ok
}

// Neutral returns the built-in neutral profile.
func (s *Store) Neutral() *Profile {
	if profile, ok := s.Get(NeutralGenre); ok {
		return profile
	}
	// The embedded set always carries neutral; an empty profile still
	// resolves through defaults.
	return &Profile{Genre: NeutralGenre}
}

// Genres returns the available genre ids in sorted order.
func (s *Store) Genres() []string {
	profiles := *s.profiles.Load()
	genres := make([]string, 0, len(profiles))
	for genre := range profiles {
		genres = append(genres, genre)
	}
	sort.Strings(genres)
	return genres
}

func loadEmbedded() (map[string]*Profile, error) {
	entries, err := embeddedProfiles.ReadDir("profiles")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded profiles: %w", err)
	}

	profiles := make(map[string]*Profile, len(entries))
	for _, entry := range entries {
		data, err := embeddedProfiles.ReadFile("profiles/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded profile %s: %w", entry.Name(), err)
		}
		profile, err := ParseProfile(data)
		if err != nil {
			return nil, fmt.Errorf("invalid embedded profile %s: %w", entry.Name(), err)
		}
		profiles[profile.Genre] = profile
	}
	return profiles, nil
}
