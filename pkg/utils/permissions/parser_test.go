package permissions

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOctalString(t *testing.T) {
	testCases := []struct {
		input    string
		expected os.FileMode
		wantErr  bool
	}{
		{"", DefaultFilePerms, false},
		{"600", 0o600, false},
		{"0600", 0o600, false},
		{"0o640", 0o640, false},
		{"0", 0, false},
		{"789", DefaultFilePerms, true},
		{"7777", DefaultFilePerms, true},
		{"rw", DefaultFilePerms, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseOctalString(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestFormatOctal(t *testing.T) {
	assert.Equal(t, "0600", FormatOctal(0o600))
	assert.Equal(t, "0755", FormatOctal(os.ModeDir|0o755))
}

func TestIsPrivate(t *testing.T) {
	assert.True(t, IsPrivate(0o600))
	assert.True(t, IsPrivate(0o700))
	assert.False(t, IsPrivate(0o640))
	assert.False(t, IsPrivate(0o604))
}

func TestCheckPrivate(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX modes only")
	}
	path := filepath.Join(t.TempDir(), "secret")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	require.NoError(t, os.Chmod(path, 0o600))

	mode, private, err := CheckPrivate(path)
	require.NoError(t, err)
	assert.True(t, private)
	assert.Equal(t, os.FileMode(0o600), mode)

	require.NoError(t, os.Chmod(path, 0o644))
	_, private, err = CheckPrivate(path)
	require.NoError(t, err)
	assert.False(t, private)

	_, _, err = CheckPrivate(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
