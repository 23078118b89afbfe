package domain

import (
	"path/filepath"
	"runtime"
	"strings"
)

// FileScheme prefixes every stored photo reference
const FileScheme = "file://"

// Platform selects how a filesystem path is turned into a reference
type Platform int

const (
	PlatformDefault Platform = iota
	PlatformIOS
	PlatformAndroid
	PlatformWindows
)

func (p Platform) String() string {
	switch p {
	case PlatformIOS:
		return "ios"
	case PlatformAndroid:
		return "android"
	case PlatformWindows:
		return "windows"
	default:
		return "default"
	}
}

// PlatformFor maps a GOOS value onto a Platform
func PlatformFor(goos string) Platform {
	switch goos {
	case "ios":
		return PlatformIOS
	case "android":
		return PlatformAndroid
	case "windows":
		return PlatformWindows
	default:
		return PlatformDefault
	}
}

// CurrentPlatform is the platform of the running binary
func CurrentPlatform() Platform {
	return PlatformFor(runtime.GOOS)
}

// ToReference converts a path into a reference for the running platform
func ToReference(path string) string {
	return ReferenceFor(CurrentPlatform(), path)
}

// ReferenceFor converts a path into a file:// reference for platform p
func ReferenceFor(p Platform, path string) string {
	switch p {
	case PlatformIOS, PlatformAndroid:
		return FileScheme + path
	case PlatformWindows:
		// file:///C:/dir/photo.jpg
		slashed := strings.ReplaceAll(path, `\`, "/")
		if !strings.HasPrefix(slashed, "/") {
			slashed = "/" + slashed
		}
		return FileScheme + slashed
	default:
		return FileScheme + path
	}
}

// FromReference strips the scheme from a reference and returns a raw path.
// Values without the scheme are returned unchanged.
func FromReference(ref string) string {
	if !strings.HasPrefix(ref, FileScheme) {
		return ref
	}

	path := strings.TrimPrefix(ref, FileScheme)
	if isDriveForm(path) {
		return filepath.FromSlash(path[1:])
	}
	return path
}

// isDriveForm matches "/C:/..." left over from a windows reference
func isDriveForm(path string) bool {
	if len(path) < 3 || path[0] != '/' || path[2] != ':' {
		return false
	}
	c := path[1]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
