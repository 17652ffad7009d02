// Package permissions parses and checks the file modes of secret files.
package permissions

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Default permission constants (user-only access)
const (
	DefaultFilePerms os.FileMode = 0o600
	DefaultDirPerms  os.FileMode = 0o700

	// otherAccess covers every group and world bit.
	otherAccess os.FileMode = 0o077
)

// ParseOctalString parses an octal permission string such as "600",
// "0600" or "0o600". An empty string yields DefaultFilePerms.
func ParseOctalString(s string) (os.FileMode, error) {
	if s == "" {
		return DefaultFilePerms, nil
	}

	trimmed := strings.TrimPrefix(s, "0o")
	trimmed = strings.TrimPrefix(trimmed, "0")
	if trimmed == "" {
		return 0, nil
	}

	val, err := strconv.ParseUint(trimmed, 8, 16)
	if err != nil {
		return DefaultFilePerms, fmt.Errorf("invalid permission string %q: %w", s, err)
	}
	if val > 0o777 {
		return DefaultFilePerms, fmt.Errorf("invalid permission string %q: only rwx bits are allowed", s)
	}
	return os.FileMode(val), nil
}

// FormatOctal formats a permission value as an octal string
func FormatOctal(perm os.FileMode) string {
	return fmt.Sprintf("0%o", perm.Perm())
}

// IsPrivate reports whether only the owner may access a file with perm.
func IsPrivate(perm os.FileMode) bool {
	return perm.Perm()&otherAccess == 0
}

// CheckPrivate returns the mode of path and whether it is private.
func CheckPrivate(path string) (os.FileMode, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, false, err
	}
	return info.Mode().Perm(), IsPrivate(info.Mode()), nil
}
