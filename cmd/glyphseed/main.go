package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/provide-io/glyphseed/go/glyphseed/pkg"
	gserrors "github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/errors"
)

const version = "0.1.0"

// Exit codes
const (
	ExitError       = 1
	ExitPanic       = 101
	ExitVerifyError = 102
	ExitInvalidArgs = 105
	ExitIOError     = 106
)

func getBuildTimestamp() string {
	// Try to get vcs.time from build info
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	// Fallback to binary modification time
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "PANIC: %v\n", r)
			debug.PrintStack()
			os.Exit(ExitPanic)
		}
	}()

	// Handle --version or -V before cobra parses other flags
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-V") {
		printVersion(os.Stdout)
		os.Exit(0)
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	var pathErr *os.PathError
	switch {
	case errors.Is(err, pkg.ErrVerificationFailed):
		return ExitVerifyError
	case errors.As(err, &pathErr):
		return ExitIOError
	case errors.Is(err, errInvalidArgs),
		errors.Is(err, gserrors.ErrUnsupportedLanguage),
		errors.Is(err, gserrors.ErrUnsupportedCharset),
		errors.Is(err, gserrors.ErrInvalidLength):
		return ExitInvalidArgs
	default:
		return ExitError
	}
}
