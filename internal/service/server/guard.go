package server

import (
	"context"
	"os"
	"runtime"
	"strings"

	"github.com/mitchellh/go-ps"

	"snapp-packager/internal/logger"
)

// baseExecutableName is the packager binary name without platform extension.
const baseExecutableName = "snapp-packager"

// isServerRunningNow reports whether another packager process is visible in
// the process table. Two servers sharing a resource root and port are never
// intended, so the serve mode refuses to start alongside one.
func isServerRunningNow(ctx context.Context) bool {
	processList, err := ps.Processes()
	if err != nil {
		logger.Warnf(ctx, "Unable to inspect the process table: %v", err)

		return false
	}

	thisProcessID := os.Getpid()
	executable := serverExecutable()

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() == executable {
			logger.InfoKV(ctx, "Found a running packager server", "pid", process.Pid())

			return true
		}
	}

	return false
}

// serverExecutable returns the platform-specific binary name.
func serverExecutable() string {
	return baseExecutableName + executableExtension()
}

// executableExtension returns ".exe" on Windows and "" elsewhere.
func executableExtension() string {
	if strings.Contains(strings.ToLower(runtime.GOOS), "windows") {
		return ".exe"
	}

	return ""
}
