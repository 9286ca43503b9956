// Package paths provides cross-platform path resolution for vsave's own
// directories.
//
// The package wraps github.com/adrg/xdg for XDG Base Directory Specification
// compliance. On Linux, paths follow XDG conventions (~/.config, ~/.local/share);
// on macOS and Windows the platform-native equivalents are used.
//
// Two locations matter to vsave:
//
//	paths.ConfigDir()  // <ConfigHome>/vsave/ holds config.yaml
//	paths.BackupRoot() // <DataHome>/vsave/backups/ holds one subdirectory per snapshot
//
// Detection of the game's live save directory is a separate concern handled
// by the resolver package.
package paths
