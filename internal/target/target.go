package target

import (
	"strconv"
	"strings"

	"snapp-packager/internal/packerrors"
)

// OS identifies a supported packaging target.
type OS string

const (
	// Mac32 is 32-bit macOS.
	Mac32 OS = "mac32"
	// Mac64 is 64-bit macOS.
	Mac64 OS = "mac64"
	// Lin32 is 32-bit Linux.
	Lin32 OS = "lin32"
	// Lin64 is 64-bit Linux.
	Lin64 OS = "lin64"
	// Win32 is 32-bit Windows.
	Win32 OS = "win32"
	// Win64 is 64-bit Windows.
	Win64 OS = "win64"
)

// Family groups targets that share a bundle layout.
type Family string

const (
	// FamilyMac produces a "<project>.app" application bundle.
	FamilyMac Family = "mac"
	// FamilyLinux produces a "<project>.snapp" directory bundle with a launcher.
	FamilyLinux Family = "linux"
	// FamilyWindows produces a "<filename>" tree with a fused executable.
	FamilyWindows Family = "windows"
)

// All returns the supported targets in a stable order.
func All() []OS {
	return []OS{Mac32, Mac64, Lin32, Lin64, Win32, Win64}
}

// Parse validates a raw OS identifier from a request.
func Parse(s string) (OS, error) {
	osID := OS(strings.ToLower(strings.TrimSpace(s)))
	switch osID {
	case Mac32, Mac64, Lin32, Lin64, Win32, Win64:
		return osID, nil
	default:
		return "", packerrors.Newf(packerrors.KindInvalidOperatingSystem, "unsupported operating system %q", s)
	}
}

// Family returns the bundle layout family for the target.
// The boolean is false for values that never passed Parse.
func (o OS) Family() (Family, bool) {
	switch o {
	case Mac32, Mac64:
		return FamilyMac, true
	case Lin32, Lin64:
		return FamilyLinux, true
	case Win32, Win64:
		return FamilyWindows, true
	default:
		return "", false
	}
}

// DesktopNative reports whether the embedded runtime runs with Node
// integration enabled. Mac and Windows targets ship the desktop-native
// runtime; Linux targets do not. The manifest "nodejs" flag is exactly
// this rule.
func (o OS) DesktopNative() bool {
	family, ok := o.Family()

	return ok && family != FamilyLinux
}

// Unix reports whether entry permission bits are meaningful for the target.
func (o OS) Unix() bool {
	family, ok := o.Family()

	return ok && family != FamilyWindows
}

// Resolution is the requested window size embedded in the manifest.
type Resolution struct {
	// Width in pixels, always positive.
	Width int
	// Height in pixels, always positive.
	Height int
}

// ParseResolution parses a "WxH" string such as "800x600".
// Both dimensions must be positive integers.
func ParseResolution(s string) (Resolution, error) {
	width, height, ok := strings.Cut(strings.TrimSpace(s), "x")
	if !ok {
		return Resolution{}, packerrors.Newf(packerrors.KindValidation, "resolution %q is not in WxH form", s)
	}

	w, err := strconv.Atoi(width)
	if err != nil || w <= 0 {
		return Resolution{}, packerrors.Newf(packerrors.KindValidation, "resolution width %q must be a positive integer", width)
	}

	h, err := strconv.Atoi(height)
	if err != nil || h <= 0 {
		return Resolution{}, packerrors.Newf(packerrors.KindValidation, "resolution height %q must be a positive integer", height)
	}

	return Resolution{Width: w, Height: h}, nil
}

// String renders the resolution back into "WxH" form.
func (r Resolution) String() string {
	return strconv.Itoa(r.Width) + "x" + strconv.Itoa(r.Height)
}
