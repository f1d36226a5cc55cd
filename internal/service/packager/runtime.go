package packager

import (
	"context"

	"snapp-packager/internal/archive"
	"snapp-packager/internal/logger"
	"snapp-packager/internal/resources"
)

// runtimeComposer assembles the inner runtime bundle: the manifest, the
// static resource tree for the selected variant, and the bootstrap script
// carrying the project payload.
type runtimeComposer struct {
	// store is the shared read-only resource store.
	store *resources.Store
}

// compose appends every runtime bundle entry to b. The caller finalizes b.
func (c *runtimeComposer) compose(ctx context.Context, b *archive.Builder, req *Request, projectName string) error {
	variant := resources.VariantFor(req.UseCompleteSnap)

	logger.DebugKV(ctx, "Composing runtime bundle", "variant", string(variant))

	manifestData, err := buildManifest(req.OS, projectName, req.Resolution)
	if err != nil {
		return err
	}

	if err = b.Append(manifestEntryName, manifestData, 0); err != nil {
		return err
	}

	// The GUI script template is consumed below, not copied verbatim.
	if err = b.AppendTreeFS(c.store.FS(), c.store.VariantDir(variant), "", resources.GUIScriptName); err != nil {
		return err
	}

	base, err := c.store.GUIScript(variant)
	if err != nil {
		return err
	}

	snippet, err := bootstrapSnippet(c.store, req.OS, projectName)
	if err != nil {
		return err
	}

	script := buildBootstrapScript(string(base), snippet, escapeProjectPayload(req.ProjectXML))

	return b.Append(bootstrapEntryName, []byte(script), 0)
}
