package packager

import (
	"bytes"
	"context"

	"snapp-packager/internal/archive"
	"snapp-packager/internal/packerrors"
	"snapp-packager/internal/resources"
	"snapp-packager/internal/target"
)

// placeholderFilename is substituted into platform templates (property
// list, launcher script, desktop entry).
const placeholderFilename = "{{FILENAME}}"

// platformStrategy builds the OS-specific final package. Each variant
// implements the same two steps: the layout (everything except the runtime
// payload) and the single embedding entry that consumes the drained
// runtime bundle.
type platformStrategy interface {
	// composeLayout appends every outer entry that does not depend on the
	// runtime bundle bytes.
	composeLayout(ctx context.Context, b *archive.Builder) error
	// embedPayload appends the one entry derived from the fully drained
	// runtime bundle.
	embedPayload(ctx context.Context, b *archive.Builder, payload []byte) error
}

// strategyFor selects the platform strategy for a request. Unsupported
// targets fail here, before any archive entry or store read happens.
func strategyFor(store *resources.Store, req *Request, projectName string) (platformStrategy, error) {
	family, ok := req.OS.Family()
	if !ok {
		return nil, packerrors.Newf(packerrors.KindInvalidOperatingSystem, "unsupported operating system %q", string(req.OS))
	}

	switch family {
	case target.FamilyMac:
		return &macStrategy{store: store, osID: req.OS, projectName: projectName, filename: req.Filename}, nil
	case target.FamilyLinux:
		return &linuxStrategy{store: store, osID: req.OS, projectName: projectName, filename: req.Filename}, nil
	default:
		return &windowsStrategy{store: store, osID: req.OS, filename: req.Filename}, nil
	}
}

// substituteFilename renders a platform template with the display filename.
func substituteFilename(template []byte, filename string) []byte {
	return bytes.ReplaceAll(template, []byte(placeholderFilename), []byte(filename))
}

// fuseStub concatenates the native stub with the runtime bundle bytes into
// one self-contained runnable blob, byte-exact and in that order.
func fuseStub(stub, payload []byte) []byte {
	blob := make([]byte, 0, len(stub)+len(payload))
	blob = append(blob, stub...)
	blob = append(blob, payload...)

	return blob
}
