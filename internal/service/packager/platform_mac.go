package packager

import (
	"bytes"
	"context"
	"path"

	"snapp-packager/internal/archive"
	"snapp-packager/internal/resources"
	"snapp-packager/internal/target"
)

const (
	// macBundleSuffix turns the project name into the application bundle root.
	macBundleSuffix = ".app"
	// macRuntimeBinDir is the subtree of the native runtime holding the
	// executables; it is copied entry by entry with executable bits, not as
	// part of the support tree.
	macRuntimeBinDir = "bin"
	// macPayloadEntry is the runtime bundle location inside the app bundle.
	macPayloadEntry = "Contents/Resources/app.nw"
	// macPlistEntry is the rendered property-list descriptor location.
	macPlistEntry = "Contents/Info.plist"
	// macIconEntry is the application icon location.
	macIconEntry = "Contents/Resources/snapp.icns"

	// placeholderShortName marks the short-name slot in the plist template.
	placeholderShortName = "{{SHORT_NAME}}"
	// shortNameLimit is the filename length at which the short-name slot
	// falls back to the fixed literal.
	shortNameLimit = 16
	// shortNameFallback replaces filenames too long for the short-name slot.
	shortNameFallback = "SnappApp"
)

// macExecutables are the native executables copied with executable bits
// into the fixed application and helper-app paths.
var macExecutables = []struct {
	// src is the file name under the runtime tree's bin directory.
	src string
	// dest is the destination path inside the application bundle.
	dest string
}{
	{"nwjs", "Contents/MacOS/nwjs"},
	{"nwjs Helper", "Contents/Frameworks/nwjs Helper.app/Contents/MacOS/nwjs Helper"},
	{"nwjs Helper EH", "Contents/Frameworks/nwjs Helper EH.app/Contents/MacOS/nwjs Helper EH"},
	{"nwjs Helper NP", "Contents/Frameworks/nwjs Helper NP.app/Contents/MacOS/nwjs Helper NP"},
}

// macStrategy produces the "<projectName>.app" application bundle.
type macStrategy struct {
	store       *resources.Store
	osID        target.OS
	projectName string
	filename    string
}

// root is the bundle directory every entry lives under.
func (s *macStrategy) root() string {
	return s.projectName + macBundleSuffix
}

// composeLayout copies the support tree, the four native executables, the
// icon and the rendered Info.plist. Every read failure here is fatal.
func (s *macStrategy) composeLayout(_ context.Context, b *archive.Builder) error {
	runtimeDir := s.store.RuntimeDir(s.osID)

	if err := b.AppendTreeFS(s.store.FS(), runtimeDir, path.Join(s.root(), "Contents"), macRuntimeBinDir); err != nil {
		return err
	}

	for _, exe := range macExecutables {
		src := path.Join(runtimeDir, macRuntimeBinDir, exe.src)
		if err := b.AppendFileFS(s.store.FS(), src, path.Join(s.root(), exe.dest), archive.ExecutableEntryMode); err != nil {
			return err
		}
	}

	if err := b.AppendFileFS(s.store.FS(), s.store.IconPath(resources.IconMac), path.Join(s.root(), macIconEntry), 0); err != nil {
		return err
	}

	template, err := s.store.Template(resources.TemplatePlist)
	if err != nil {
		return err
	}

	return b.Append(path.Join(s.root(), macPlistEntry), renderPlist(template, s.filename), 0)
}

// embedPayload appends the drained runtime bundle as the app.nw entry.
func (s *macStrategy) embedPayload(_ context.Context, b *archive.Builder, payload []byte) error {
	return b.Append(path.Join(s.root(), macPayloadEntry), payload, archive.ExecutableEntryMode)
}

// renderPlist substitutes the display filename and the short name into the
// property-list template. Filenames of shortNameLimit characters or more
// get the fixed fallback literal in the short-name slot.
func renderPlist(template []byte, filename string) []byte {
	shortName := filename
	if len(filename) >= shortNameLimit {
		shortName = shortNameFallback
	}

	rendered := substituteFilename(template, filename)

	return bytes.ReplaceAll(rendered, []byte(placeholderShortName), []byte(shortName))
}
