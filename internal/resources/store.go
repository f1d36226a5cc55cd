package resources

import (
	"io/fs"
	"os"
	"path"

	"snapp-packager/internal/packerrors"
	"snapp-packager/internal/target"
)

// Variant selects which static resource tree the runtime bundle embeds.
type Variant string

const (
	// VariantFull is the complete environment, selected by useCompleteSnap.
	VariantFull Variant = "full"
	// VariantReduced strips authoring tools down to the player.
	VariantReduced Variant = "reduced"
)

// VariantFor maps the request flag to a resource variant.
func VariantFor(useCompleteSnap bool) Variant {
	if useCompleteSnap {
		return VariantFull
	}

	return VariantReduced
}

// Store layout. The directory shape is part of the compatibility contract
// with existing resource bundles, so these are fixed, not configurable.
const (
	// variantsDir holds one static tree per variant, including the GUI
	// script template at its root.
	variantsDir = "variants"
	// runtimesDir holds the native runtime tree per OS.
	runtimesDir = "nwjs"
	// stubsDir holds the native launcher stubs for linux and windows.
	stubsDir = "stubs"
	// templatesDir holds platform descriptor and script templates.
	templatesDir = "templates"
	// iconsDir holds the shared application icons.
	iconsDir = "icons"

	// GUIScriptName is the base GUI script template inside each variant tree.
	GUIScriptName = "gui.js"

	// TemplatePlist is the macOS property-list descriptor template.
	TemplatePlist = "Info.plist.tpl"
	// TemplateLauncher is the linux launcher-script template.
	TemplateLauncher = "launcher.sh.tpl"
	// TemplateDesktopEntry is the linux desktop-entry template.
	TemplateDesktopEntry = "snapp.desktop.tpl"
	// TemplateMacMenu is the macOS menu/shortcut injection snippet.
	TemplateMacMenu = "mac-menu.js"
	// TemplateWinFullscreen is the windows fullscreen-toggle snippet.
	TemplateWinFullscreen = "win-fullscreen.js"

	// IconMac is the macOS application icon.
	IconMac = "snapp.icns"
	// IconPNG is the icon used by linux bundles and the runtime manifest.
	IconPNG = "snapp.png"
)

// Store is the read-only resource layout backing every request. It is safe
// for concurrent use: nothing is ever written through it.
type Store struct {
	// fsys is the root of the resource directory.
	fsys fs.FS
}

// NewStore wraps an existing filesystem, typically os.DirFS in production
// and fstest.MapFS in tests.
func NewStore(fsys fs.FS) *Store {
	return &Store{fsys: fsys}
}

// Open opens the store at a directory root.
func Open(root string) *Store {
	return NewStore(os.DirFS(root))
}

// FS exposes the underlying filesystem for subtree copies into archives.
func (s *Store) FS() fs.FS {
	return s.fsys
}

// VariantDir returns the static tree path for a variant.
func (s *Store) VariantDir(v Variant) string {
	return path.Join(variantsDir, string(v))
}

// GUIScript reads the base GUI script template for a variant.
func (s *Store) GUIScript(v Variant) ([]byte, error) {
	return s.read(path.Join(s.VariantDir(v), GUIScriptName))
}

// RuntimeDir returns the native runtime tree path for a target.
func (s *Store) RuntimeDir(osID target.OS) string {
	return path.Join(runtimesDir, string(osID))
}

// Template reads a platform template by name.
func (s *Store) Template(name string) ([]byte, error) {
	return s.read(path.Join(templatesDir, name))
}

// NativeStub reads the runnable binary prefix for a linux or windows target.
func (s *Store) NativeStub(osID target.OS) ([]byte, error) {
	name := string(osID)
	if family, _ := osID.Family(); family == target.FamilyWindows {
		name += ".exe"
	}

	return s.read(path.Join(stubsDir, name))
}

// IconPath returns the store path of a shared icon asset.
func (s *Store) IconPath(name string) string {
	return path.Join(iconsDir, name)
}

// read loads a store file, classifying failures as resource read errors.
func (s *Store) read(p string) ([]byte, error) {
	data, err := fs.ReadFile(s.fsys, p)
	if err != nil {
		return nil, packerrors.Wrap(packerrors.KindResourceRead, "read resource "+p, err)
	}

	return data, nil
}
