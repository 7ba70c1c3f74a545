package storage

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveAndRead(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC) }

	path, err := s.Save([]byte("99999999999999\n"), "black list.txt", "imports")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, filepath.Join("imports", "2025", "03")))
	assert.True(t, strings.HasSuffix(path, "_black_list.txt"))
	assert.True(t, s.Exists(path))

	data, err := s.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "99999999999999\n", string(data))
}

func TestLocalStorage_FullPathStaysInsideBase(t *testing.T) {
	base := t.TempDir()
	s, err := NewLocalStorage(base)
	require.NoError(t, err)

	full := s.GetFullPath("../../etc/passwd")
	assert.True(t, strings.HasPrefix(full, base))
	assert.False(t, s.Exists("../../etc/passwd"))
}
