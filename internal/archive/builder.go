package archive

import (
	"archive/zip"
	"io"
	"io/fs"
	"path"

	"github.com/klauspost/compress/flate"

	"snapp-packager/internal/packerrors"
)

// DefaultEntryMode is applied to entries that do not ask for specific bits.
const DefaultEntryMode fs.FileMode = 0o644

// ExecutableEntryMode marks an entry runnable on unix-family targets.
const ExecutableEntryMode fs.FileMode = 0o755

// Builder is an append-only zip archive under construction. Entry names are
// unique per archive, entries may only be added before Finalize, and the
// produced bytes may only be consumed after Finalize. A Builder serves a
// single archive; it is not safe for concurrent use.
type Builder struct {
	// writer produces the zip container.
	writer *zip.Writer
	// names tracks appended entry names to reject duplicates.
	names map[string]struct{}
	// finalized is set once Finalize has been called.
	finalized bool
}

// New creates a builder writing the archive to w. The Deflate method is
// backed by the klauspost flate encoder.
func New(w io.Writer) *Builder {
	writer := zip.NewWriter(w)
	writer.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})

	return &Builder{
		writer: writer,
		names:  make(map[string]struct{}),
	}
}

// Append writes content as a named entry. A zero mode falls back to
// DefaultEntryMode, keeping entries non-executable unless asked otherwise.
func (b *Builder) Append(name string, content []byte, mode fs.FileMode) error {
	entry, err := b.create(name, mode)
	if err != nil {
		return err
	}

	if _, err = entry.Write(content); err != nil {
		return packerrors.Wrap(packerrors.KindStream, "write entry "+name, err)
	}

	return nil
}

// AppendFileFS copies a single file from fsys into the archive under name.
func (b *Builder) AppendFileFS(fsys fs.FS, src, name string, mode fs.FileMode) error {
	entry, err := b.create(name, mode)
	if err != nil {
		return err
	}

	file, err := fsys.Open(src)
	if err != nil {
		return packerrors.Wrap(packerrors.KindResourceRead, "open "+src, err)
	}

	defer func() {
		_ = file.Close()
	}()

	if _, err = io.Copy(entry, file); err != nil {
		return packerrors.Wrap(packerrors.KindStream, "copy "+src+" into "+name, err)
	}

	return nil
}

// AppendTreeFS copies every file under srcDir in fsys into the archive,
// preserving relative paths below destPrefix. Entries get DefaultEntryMode.
// A skip value excludes the relative path it names, file or whole subtree.
func (b *Builder) AppendTreeFS(fsys fs.FS, srcDir, destPrefix string, skip ...string) error {
	return fs.WalkDir(fsys, srcDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return packerrors.Wrap(packerrors.KindResourceRead, "walk "+srcDir, err)
		}

		if d.IsDir() {
			return nil
		}

		rel := p
		if srcDir != "." {
			var relErr error

			rel, relErr = relativeTo(srcDir, p)
			if relErr != nil {
				return relErr
			}
		}

		for _, s := range skip {
			if rel == s || hasPathPrefix(rel, s) {
				return nil
			}
		}

		return b.AppendFileFS(fsys, p, path.Join(destPrefix, rel), DefaultEntryMode)
	})
}

// Finalize closes the archive. No entries may be appended afterwards and the
// destination writer holds the complete container once it returns.
func (b *Builder) Finalize() error {
	if b.finalized {
		return packerrors.New(packerrors.KindStream, "archive already finalized")
	}

	b.finalized = true

	if err := b.writer.Close(); err != nil {
		return packerrors.Wrap(packerrors.KindStream, "finalize archive", err)
	}

	return nil
}

// Len reports how many entries have been appended so far.
func (b *Builder) Len() int {
	return len(b.names)
}

// create validates ordering and uniqueness, then opens a new entry writer.
func (b *Builder) create(name string, mode fs.FileMode) (io.Writer, error) {
	if b.finalized {
		return nil, packerrors.New(packerrors.KindStream, "append "+name+" after finalize")
	}

	if name == "" {
		return nil, packerrors.New(packerrors.KindStream, "entry name is empty")
	}

	if _, exists := b.names[name]; exists {
		return nil, packerrors.New(packerrors.KindStream, "duplicate entry "+name)
	}

	if mode == 0 {
		mode = DefaultEntryMode
	}

	header := &zip.FileHeader{
		Name:   name,
		Method: zip.Deflate,
	}
	header.SetMode(mode)

	entry, err := b.writer.CreateHeader(header)
	if err != nil {
		return nil, packerrors.Wrap(packerrors.KindStream, "create entry "+name, err)
	}

	b.names[name] = struct{}{}

	return entry, nil
}

// relativeTo strips the srcDir prefix from p.
func relativeTo(srcDir, p string) (string, error) {
	prefix := srcDir + "/"
	if len(p) <= len(prefix) || p[:len(prefix)] != prefix {
		return "", packerrors.New(packerrors.KindStream, "path "+p+" escapes "+srcDir)
	}

	return p[len(prefix):], nil
}

// hasPathPrefix reports whether rel lies inside the subtree named by s.
func hasPathPrefix(rel, s string) bool {
	return len(rel) > len(s)+1 && rel[:len(s)+1] == s+"/"
}
