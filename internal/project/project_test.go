package project

import (
	"testing"

	"github.com/stretchr/testify/require"

	"snapp-packager/internal/packerrors"
)

// TestExtractName resolves the name attribute of the first project element.
func TestExtractName(t *testing.T) {
	t.Parallel()

	name, err := ExtractName(`<project name="Counting" app="Snap! 8.2, https://snap.berkeley.edu" version="2"><stage/></project>`)
	require.NoError(t, err)
	require.Equal(t, "Counting", name)

	// Nested under another root element.
	name, err = ExtractName(`<snapdata><project name="Maze Game"><scenes/></project></snapdata>`)
	require.NoError(t, err)
	require.Equal(t, "Maze Game", name)
}

// TestExtractNameShortCircuits proves the scan stops at the first match:
// malformed content after the matching element is never tokenized.
func TestExtractNameShortCircuits(t *testing.T) {
	t.Parallel()

	name, err := ExtractName(`<project name="Early"><thing></mismatched>< < broken`)
	require.NoError(t, err)
	require.Equal(t, "Early", name)
}

// TestExtractNameSkipsEmptyName keeps scanning past project elements whose
// name attribute is missing or empty.
func TestExtractNameSkipsEmptyName(t *testing.T) {
	t.Parallel()

	name, err := ExtractName(`<root><project name=""/><project other="x"/><project name="Found"/></root>`)
	require.NoError(t, err)
	require.Equal(t, "Found", name)
}

// TestExtractNameMissing fails hard when the document ends without a match.
func TestExtractNameMissing(t *testing.T) {
	t.Parallel()

	for _, doc := range []string{
		``,
		`<stage width="480" height="360"/>`,
		`<root><project name=""/></root>`,
	} {
		_, err := ExtractName(doc)
		require.Error(t, err, doc)
		require.Equal(t, packerrors.KindMissingProjectName, packerrors.KindOf(err), doc)
	}
}

// TestExtractNameParseError propagates scanner failures as XML parse errors.
func TestExtractNameParseError(t *testing.T) {
	t.Parallel()

	_, err := ExtractName(`<root><bad attr
	`)
	require.Error(t, err)
	require.Equal(t, packerrors.KindXMLParse, packerrors.KindOf(err))
}

// TestDescribe returns the raw document alongside the extracted name.
func TestDescribe(t *testing.T) {
	t.Parallel()

	raw := `<project name="Pong"/>`

	desc, err := Describe(raw)
	require.NoError(t, err)
	require.Equal(t, raw, desc.RawXML)
	require.Equal(t, "Pong", desc.Name)

	_, err = Describe(`<empty/>`)
	require.Error(t, err)
}
