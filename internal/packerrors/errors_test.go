package packerrors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestKindOf verifies classification extraction through wrapped chains.
func TestKindOf(t *testing.T) {
	t.Parallel()

	err := Wrap(KindResourceRead, "read launcher template", fs.ErrNotExist)
	require.Equal(t, KindResourceRead, KindOf(err))
	require.True(t, IsKind(err, KindResourceRead))
	require.ErrorIs(t, err, fs.ErrNotExist)

	// Classification survives another layer of wrapping.
	outer := fmt.Errorf("compose linux layout: %w", err)
	require.Equal(t, KindResourceRead, KindOf(outer))

	require.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}

// TestWrapNil ensures Wrap is a no-op for nil causes.
func TestWrapNil(t *testing.T) {
	t.Parallel()

	require.Nil(t, Wrap(KindStream, "finalize", nil))
}

// TestClientFault checks the request-versus-environment split used by transports.
func TestClientFault(t *testing.T) {
	t.Parallel()

	require.True(t, KindValidation.ClientFault())
	require.True(t, KindXMLParse.ClientFault())
	require.True(t, KindMissingProjectName.ClientFault())
	require.True(t, KindInvalidOperatingSystem.ClientFault())
	require.False(t, KindResourceRead.ClientFault())
	require.False(t, KindStream.ClientFault())
	require.False(t, KindUnknown.ClientFault())
}

// TestCodes ensures every kind has a distinct stable code.
func TestCodes(t *testing.T) {
	t.Parallel()

	kinds := []Kind{
		KindUnknown,
		KindValidation,
		KindXMLParse,
		KindMissingProjectName,
		KindResourceRead,
		KindInvalidOperatingSystem,
		KindStream,
	}

	seen := make(map[string]struct{}, len(kinds))
	for _, k := range kinds {
		code := k.Code()
		require.NotEmpty(t, code)

		_, duplicate := seen[code]
		require.False(t, duplicate, code)

		seen[code] = struct{}{}
	}
}
