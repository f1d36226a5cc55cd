// Package packager implements the packaging pipeline: it extracts the
// project's declared name, composes the inner runtime bundle (manifest,
// static resources, bootstrap script) and the OS-specific final package
// concurrently, drains the finalized runtime bundle into memory, embeds it
// per platform (directly for mac, fused with a native stub for linux and
// windows), and hands back the finished archive as a single stream.
package packager
