// Package resolver locates the game's live save directory.
//
// Detection probes an ordered list of platform-specific candidate paths and
// returns the first one that exists and is a directory. Probing is a pure
// existence check with no side effects. The first successful resolution is
// cached for the remainder of the process; a manual override supplied by the
// user short-circuits probing entirely.
package resolver

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/cockroachdb/errors"

	vsmerrors "github.com/thoreinstein/vsave/internal/errors"
)

// SteamAppID is the Steam application ID for
// Star Trek Voyager - Across the Unknown.
const SteamAppID = "2643390"

// gameSaveSubdir is the save location inside the game's install or prefix,
// relative to the Windows local app data directory.
const gameSaveSubdir = "STVoyager/Saved/SaveGames"

// Resolver finds and caches the live save directory.
// It is safe for concurrent use.
type Resolver struct {
	mu         sync.Mutex
	candidates func() []string
	resolved   string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithOverride pre-resolves the save directory to the given path.
// The path is validated on first Resolve call, not here.
func WithOverride(path string) Option {
	return func(r *Resolver) {
		if path == "" {
			return
		}
		p := path
		r.candidates = func() []string { return []string{p} }
	}
}

// WithCandidates replaces the platform-specific candidate list.
// Intended for tests.
func WithCandidates(paths ...string) Option {
	return func(r *Resolver) {
		r.candidates = func() []string { return paths }
	}
}

// New creates a Resolver with the default platform candidate list.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		candidates: defaultCandidates,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the live save directory, probing candidates in priority
// order on the first call and returning the cached result afterwards.
// Returns ErrSaveDirNotFound if no candidate exists.
func (r *Resolver) Resolve() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.resolved != "" {
		return r.resolved, nil
	}

	for _, c := range r.candidates() {
		if isDir(c) {
			r.resolved = c
			return c, nil
		}
	}

	return "", vsmerrors.ErrSaveDirNotFound
}

// Set installs a manually chosen save directory for the remainder of the
// process. The path must exist and be a directory.
func (r *Resolver) Set(path string) error {
	if !isDir(path) {
		return errors.Wrapf(vsmerrors.ErrSaveDirNotFound, "%s", path)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolved = path
	return nil
}

// defaultCandidates returns the candidate save directories for the current OS,
// highest priority first.
func defaultCandidates() []string {
	switch runtime.GOOS {
	case "windows":
		return windowsCandidates()
	default:
		return linuxCandidates()
	}
}

// windowsCandidates covers the standard AppData location (non-Steam or
// Microsoft Store installs) followed by every Steam library root.
func windowsCandidates() []string {
	var candidates []string

	local := os.Getenv("LOCALAPPDATA")
	if local == "" {
		if home, err := os.UserHomeDir(); err == nil {
			local = filepath.Join(home, "AppData", "Local")
		}
	}
	if local != "" {
		candidates = append(candidates, filepath.Join(local, filepath.FromSlash(gameSaveSubdir)))
	}

	for _, lib := range steamLibraryRoots() {
		base := filepath.Join(lib, "steamapps", "common",
			"Star Trek Voyager - Across the Unknown",
			filepath.FromSlash(gameSaveSubdir))
		// Saves live under a 64-bit Steam ID subdirectory when present
		ids := steamIDSubdirs(base)
		if len(ids) > 0 {
			candidates = append(candidates, ids...)
		} else {
			candidates = append(candidates, base)
		}
	}

	return candidates
}

// linuxCandidates covers Proton prefixes for native Steam, Steam-in-Snap,
// and Steam-in-Flatpak installs.
func linuxCandidates() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	prefix := filepath.Join("steamapps", "compatdata", SteamAppID,
		"pfx", "drive_c", "users", "steamuser", "AppData", "Local",
		filepath.FromSlash(gameSaveSubdir))

	return []string{
		filepath.Join(home, ".local/share/Steam", prefix),
		filepath.Join(home, "snap/steam/common/.local/share/Steam", prefix),
		filepath.Join(home, ".var/app/com.valvesoftware.Steam/.local/share/Steam", prefix),
	}
}

// steamIDSubdirs returns subdirectories of base whose names look like 64-bit
// Steam IDs (15+ digit numbers), which hold the per-account saves.
func steamIDSubdirs(base string) []string {
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() && isSteamID(e.Name()) {
			dirs = append(dirs, filepath.Join(base, e.Name()))
		}
	}
	return dirs
}

func isSteamID(name string) bool {
	if len(name) < 15 {
		return false
	}
	for _, c := range name {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
