package packager

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"snapp-packager/internal/target"
)

// TestBuildManifest checks the fixed fields and the request-driven ones.
func TestBuildManifest(t *testing.T) {
	t.Parallel()

	data, err := buildManifest(target.Mac64, "Counting", target.Resolution{Width: 800, Height: 600})
	require.NoError(t, err)

	var m manifest

	require.NoError(t, json.Unmarshal(data, &m))
	require.Equal(t, appIdentifier, m.Name)
	require.Equal(t, mainEntryFile, m.Main)
	require.True(t, m.SingleInstance)
	require.True(t, m.Window.Resizable)
	require.Equal(t, windowIcon, m.Window.Icon)
	require.Equal(t, "Counting", m.Window.Title)
	require.Equal(t, 800, m.Window.Width)
	require.Equal(t, 600, m.Window.Height)
}

// TestBuildManifestNodeJSRule verifies the nodejs flag is true exactly for
// mac and windows targets and false for linux targets.
func TestBuildManifestNodeJSRule(t *testing.T) {
	t.Parallel()

	for _, osID := range []target.OS{target.Mac32, target.Mac64, target.Win32, target.Win64} {
		data, err := buildManifest(osID, "P", target.Resolution{Width: 1, Height: 1})
		require.NoError(t, err)

		var m manifest

		require.NoError(t, json.Unmarshal(data, &m))
		require.True(t, m.NodeJS, osID)
	}

	for _, osID := range []target.OS{target.Lin32, target.Lin64} {
		data, err := buildManifest(osID, "P", target.Resolution{Width: 1, Height: 1})
		require.NoError(t, err)

		var m manifest

		require.NoError(t, json.Unmarshal(data, &m))
		require.False(t, m.NodeJS, osID)
	}
}

// TestBuildManifestDeterministic produces identical bytes across runs.
func TestBuildManifestDeterministic(t *testing.T) {
	t.Parallel()

	first, err := buildManifest(target.Lin64, "Same", target.Resolution{Width: 640, Height: 480})
	require.NoError(t, err)

	second, err := buildManifest(target.Lin64, "Same", target.Resolution{Width: 640, Height: 480})
	require.NoError(t, err)
	require.Equal(t, first, second)
}

// TestBuildBootstrapScript checks the concatenation order: base script,
// optional snippet, payload assignment.
func TestBuildBootstrapScript(t *testing.T) {
	t.Parallel()

	script := buildBootstrapScript("base();", "snippet();", "payload")
	baseIdx := strings.Index(script, "base();")
	snippetIdx := strings.Index(script, "snippet();")
	payloadIdx := strings.Index(script, "window."+payloadGlobal+" = \"payload\";")

	require.GreaterOrEqual(t, baseIdx, 0)
	require.Greater(t, snippetIdx, baseIdx)
	require.Greater(t, payloadIdx, snippetIdx)
	require.True(t, strings.HasSuffix(script, "\n"))

	// Without a snippet the assignment directly follows the base script.
	script = buildBootstrapScript("base();\n", "", "payload")
	require.Equal(t, "base();\nwindow."+payloadGlobal+" = \"payload\";\n", script)
}

// TestEscapeProjectPayload strips newlines and escapes quoting characters.
func TestEscapeProjectPayload(t *testing.T) {
	t.Parallel()

	raw := "<project name=\"A\">\r\n<note>back\\slash</note>\n</project>"
	escaped := escapeProjectPayload(raw)

	require.NotContains(t, escaped, "\n")
	require.NotContains(t, escaped, "\r")
	require.Equal(t, `<project name=\"A\"><note>back\\slash</note></project>`, escaped)
}
