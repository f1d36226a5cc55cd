package packager

import (
	"context"
	"path"

	"snapp-packager/internal/archive"
	"snapp-packager/internal/resources"
	"snapp-packager/internal/target"
)

// windowsExeSuffix is appended to the fused executable entry.
const windowsExeSuffix = ".exe"

// windowsStrategy produces a "<filename>" tree with a fused executable.
// Windows entries carry no permission bits, so everything gets the default
// mode.
type windowsStrategy struct {
	store    *resources.Store
	osID     target.OS
	filename string
}

// composeLayout copies the native library tree under the filename
// directory; no per-file transform applies.
func (s *windowsStrategy) composeLayout(_ context.Context, b *archive.Builder) error {
	return b.AppendTreeFS(s.store.FS(), s.store.RuntimeDir(s.osID), s.filename)
}

// embedPayload fuses the .exe stub with the runtime bundle into
// "<filename>/<filename>.exe".
func (s *windowsStrategy) embedPayload(_ context.Context, b *archive.Builder, payload []byte) error {
	stub, err := s.store.NativeStub(s.osID)
	if err != nil {
		return err
	}

	return b.Append(path.Join(s.filename, s.filename+windowsExeSuffix), fuseStub(stub, payload), 0)
}
