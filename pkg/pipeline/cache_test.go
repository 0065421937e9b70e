package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCache = `# This is the CMakeCache file.
// For build in directory: /build
CMAKE_MAKE_PROGRAM:FILEPATH=/usr/bin/make
# comment
OTHER:STRING=x
EMPTY:STRING=
`

func TestParseCacheVariable(t *testing.T) {
	tests := []struct {
		name     string
		variable string
		expected string
		wantErr  bool
	}{
		{name: "build tool entry", variable: "CMAKE_MAKE_PROGRAM", expected: "/usr/bin/make"},
		{name: "other entry", variable: "OTHER", expected: "x"},
		{name: "empty value", variable: "EMPTY", expected: ""},
		{name: "absent variable", variable: "MISSING", wantErr: true},
		{name: "comment lines are not entries", variable: "# comment", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := ParseCacheVariable(strings.NewReader(sampleCache), tt.variable)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, Is(err, DomainCache, CodeVariableMissing))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestReadCacheVariable(t *testing.T) {
	tmpDir := t.TempDir()
	cachePath := filepath.Join(tmpDir, CacheFileName)
	require.NoError(t, os.WriteFile(cachePath, []byte(sampleCache), 0644))

	value, err := ReadCacheVariable(cachePath, BuildToolVariable)
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/make", value)
}

func TestReadCacheVariableUnreadableFile(t *testing.T) {
	_, err := ReadCacheVariable(filepath.Join(t.TempDir(), "missing", CacheFileName), BuildToolVariable)
	assert.Error(t, err)
	assert.True(t, Is(err, DomainCache, CodeCacheUnreadable))
}
