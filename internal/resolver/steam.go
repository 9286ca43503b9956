package resolver

import (
	"os"
	"path/filepath"
	"regexp"
)

// vdfPathRe extracts "path" entries from Steam's libraryfolders.vdf.
// The file is Valve's KeyValues format; the only keys we need are the
// quoted "path" values, one per library.
var vdfPathRe = regexp.MustCompile(`"path"\s*"([^"]+)"`)

// steamLibraryRoots returns all Steam library root folders on Windows,
// discovered via libraryfolders.vdf under the usual install locations.
func steamLibraryRoots() []string {
	var roots []string
	seen := map[string]bool{}

	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			roots = append(roots, p)
		}
	}

	for _, steamRoot := range steamInstallCandidates() {
		vdf := filepath.Join(steamRoot, "steamapps", "libraryfolders.vdf")
		if _, err := os.Stat(vdf); err != nil {
			continue
		}
		for _, lib := range parseVDFPaths(vdf) {
			add(lib)
		}
		add(steamRoot)
	}

	return roots
}

// steamInstallCandidates lists the directories Steam itself may be installed
// under on Windows.
func steamInstallCandidates() []string {
	var candidates []string

	envDirs := []struct {
		env      string
		fallback string
	}{
		{"ProgramFiles(x86)", `C:\Program Files (x86)`},
		{"ProgramFiles", `C:\Program Files`},
		{"LOCALAPPDATA", ""},
		{"USERPROFILE", ""},
	}

	for _, d := range envDirs {
		base := os.Getenv(d.env)
		if base == "" {
			base = d.fallback
		}
		if base == "" {
			continue
		}
		candidates = append(candidates, filepath.Join(base, "Steam"))
	}

	return candidates
}

// parseVDFPaths extracts existing library paths from a libraryfolders.vdf file.
func parseVDFPaths(vdfPath string) []string {
	data, err := os.ReadFile(vdfPath)
	if err != nil {
		return nil
	}

	var results []string
	seen := map[string]bool{}

	for _, m := range vdfPathRe.FindAllStringSubmatch(string(data), -1) {
		p := filepath.FromSlash(replaceDoubledSeparators(m[1]))
		if seen[p] {
			continue
		}
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			seen[p] = true
			results = append(results, p)
		}
	}

	return results
}

// replaceDoubledSeparators normalizes the escaped backslashes vdf files use
// on Windows ("C:\\\\Games" means C:\Games).
func replaceDoubledSeparators(p string) string {
	out := make([]rune, 0, len(p))
	var prev rune
	for _, c := range p {
		if c == '\\' && prev == '\\' {
			prev = 0
			continue
		}
		out = append(out, c)
		prev = c
	}
	return string(out)
}
