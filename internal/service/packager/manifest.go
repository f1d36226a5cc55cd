package packager

import (
	"encoding/json"
	"strings"

	"snapp-packager/internal/packerrors"
	"snapp-packager/internal/resources"
	"snapp-packager/internal/target"
)

const (
	// appIdentifier is the fixed application name in the runtime manifest.
	appIdentifier = "Snapp"
	// mainEntryFile is the fixed entry point the runtime opens at launch.
	mainEntryFile = "gui.html"
	// windowIcon is the fixed window icon inside the runtime bundle.
	windowIcon = "snapp.png"
	// manifestEntryName is the manifest entry inside the runtime bundle.
	manifestEntryName = "package.json"
	// bootstrapEntryName is the bootstrap script entry inside the runtime bundle.
	bootstrapEntryName = "gui.js"

	// payloadGlobal is the window property the runtime reads at launch to
	// load the embedded project. Renaming it breaks every shipped bundle.
	payloadGlobal = "SnappEmbeddedProject"

	// placeholderProjectName is substituted in the mac menu snippet.
	placeholderProjectName = "{{PROJECT_NAME}}"
)

// manifest is the runtime manifest serialized as package.json.
// Field order is fixed so repeated runs produce identical bytes.
type manifest struct {
	Name           string         `json:"name"`
	Main           string         `json:"main"`
	NodeJS         bool           `json:"nodejs"`
	SingleInstance bool           `json:"single-instance"`
	Window         manifestWindow `json:"window"`
}

// manifestWindow describes the runtime window.
type manifestWindow struct {
	Icon      string `json:"icon"`
	Title     string `json:"title"`
	Resizable bool   `json:"resizable"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// buildManifest renders the runtime manifest. Everything is fixed except
// the window title (the declared project name), the window size, and the
// nodejs flag, which follows target.DesktopNative.
func buildManifest(osID target.OS, projectName string, res target.Resolution) ([]byte, error) {
	m := manifest{
		Name:           appIdentifier,
		Main:           mainEntryFile,
		NodeJS:         osID.DesktopNative(),
		SingleInstance: true,
		Window: manifestWindow{
			Icon:      windowIcon,
			Title:     projectName,
			Resizable: true,
			Width:     res.Width,
			Height:    res.Height,
		},
	}

	data, err := json.MarshalIndent(&m, "", "  ")
	if err != nil {
		return nil, packerrors.Wrap(packerrors.KindStream, "encode runtime manifest", err)
	}

	return append(data, '\n'), nil
}

// bootstrapSnippet returns the per-OS injection appended after the base GUI
// script: the native menu/shortcut snippet for mac (with the project name
// substituted), the fullscreen-toggle snippet for windows, nothing for linux.
func bootstrapSnippet(store *resources.Store, osID target.OS, projectName string) (string, error) {
	family, _ := osID.Family()

	switch family {
	case target.FamilyMac:
		snippet, err := store.Template(resources.TemplateMacMenu)
		if err != nil {
			return "", err
		}

		return strings.ReplaceAll(string(snippet), placeholderProjectName, projectName), nil
	case target.FamilyWindows:
		snippet, err := store.Template(resources.TemplateWinFullscreen)
		if err != nil {
			return "", err
		}

		return string(snippet), nil
	default:
		return "", nil
	}
}

// buildBootstrapScript concatenates, in order: the base GUI script, the
// optional per-OS snippet, and the assignment handing the escaped project
// payload to the runtime.
func buildBootstrapScript(base, snippet, escapedPayload string) string {
	var b strings.Builder

	b.WriteString(base)
	ensureNewline(&b, base)

	if snippet != "" {
		b.WriteString(snippet)
		ensureNewline(&b, snippet)
	}

	b.WriteString("window.")
	b.WriteString(payloadGlobal)
	b.WriteString(" = \"")
	b.WriteString(escapedPayload)
	b.WriteString("\";\n")

	return b.String()
}

// escapeProjectPayload prepares the raw project XML for embedding in a
// double-quoted script string: newlines are stripped, then backslashes and
// double quotes are escaped.
func escapeProjectPayload(raw string) string {
	s := strings.NewReplacer("\r", "", "\n", "").Replace(raw)
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)

	return s
}

// ensureNewline terminates the previous chunk if it did not end with one.
func ensureNewline(b *strings.Builder, chunk string) {
	if !strings.HasSuffix(chunk, "\n") {
		b.WriteByte('\n')
	}
}
