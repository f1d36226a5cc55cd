package packager

import (
	"context"
	"path"

	"golang.org/x/sync/errgroup"

	"snapp-packager/internal/archive"
	"snapp-packager/internal/logger"
	"snapp-packager/internal/resources"
	"snapp-packager/internal/target"
)

const (
	// linuxBundleSuffix turns the project name into the bundle root directory.
	linuxBundleSuffix = ".snapp"
	// linuxLauncherEntry is the launcher script name inside the bundle root.
	linuxLauncherEntry = "launcher.sh"
	// linuxDesktopSuffix names the top-level desktop entry after the filename.
	linuxDesktopSuffix = ".desktop"
)

// linuxStrategy produces the "<projectName>.snapp" directory bundle.
type linuxStrategy struct {
	store       *resources.Store
	osID        target.OS
	projectName string
	filename    string
}

// root is the bundle directory the native tree and launcher live under.
func (s *linuxStrategy) root() string {
	return s.projectName + linuxBundleSuffix
}

// composeLayout copies the native library tree and the icon, then reads the
// launcher and desktop-entry templates concurrently. A missing launcher
// template is fatal; a missing desktop-entry template is logged and the
// entry is omitted.
func (s *linuxStrategy) composeLayout(ctx context.Context, b *archive.Builder) error {
	if err := b.AppendTreeFS(s.store.FS(), s.store.RuntimeDir(s.osID), s.root()); err != nil {
		return err
	}

	if err := b.AppendFileFS(s.store.FS(), s.store.IconPath(resources.IconPNG), path.Join(s.root(), resources.IconPNG), 0); err != nil {
		return err
	}

	var (
		launcher   []byte
		desktop    []byte
		desktopErr error
	)

	// The two template reads are independent; join them before writing.
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error

		launcher, err = s.store.Template(resources.TemplateLauncher)

		return err
	})

	g.Go(func() error {
		// Tolerated: the error is examined after the join.
		desktop, desktopErr = s.store.Template(resources.TemplateDesktopEntry)

		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	err := b.Append(path.Join(s.root(), linuxLauncherEntry), substituteFilename(launcher, s.filename), archive.ExecutableEntryMode)
	if err != nil {
		return err
	}

	if desktopErr != nil {
		logger.WarnKV(ctx, "Desktop entry template unavailable, omitting the entry", "error", desktopErr.Error())

		return nil
	}

	return b.Append(s.filename+linuxDesktopSuffix, substituteFilename(desktop, s.filename), archive.ExecutableEntryMode)
}

// embedPayload fuses the native launcher stub with the runtime bundle into
// the single runnable program at "<root>/<filename>".
func (s *linuxStrategy) embedPayload(_ context.Context, b *archive.Builder, payload []byte) error {
	stub, err := s.store.NativeStub(s.osID)
	if err != nil {
		return err
	}

	return b.Append(path.Join(s.root(), s.filename), fuseStub(stub, payload), archive.ExecutableEntryMode)
}
