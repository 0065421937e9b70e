package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironmentOverride(t *testing.T) {
	base := NewEnvironment([]string{"PATH=/usr/bin", "CC=gcc"})

	merged := base.Override(map[string]string{
		"CC":      "clang",
		"DESTDIR": "/tmp/stage",
	})

	assert.Equal(t, "clang", merged["CC"])
	assert.Equal(t, "/tmp/stage", merged["DESTDIR"])
	assert.Equal(t, "/usr/bin", merged["PATH"])
	// the base environment is untouched
	assert.Equal(t, "gcc", base["CC"])
}

func TestEnvironmentOverrideExpandsReferences(t *testing.T) {
	base := NewEnvironment([]string{"PATH=/usr/bin"})

	merged := base.Override(map[string]string{"PATH": "/opt/cmake/bin:$PATH"})

	assert.Equal(t, "/opt/cmake/bin:/usr/bin", merged["PATH"])
}

func TestEnvironmentExpandLeavesUnknownReferences(t *testing.T) {
	env := NewEnvironment([]string{"KNOWN=yes"})

	assert.Equal(t, "yes $MISSING ${ALSO_MISSING} $ ${",
		env.Expand("$KNOWN $MISSING ${ALSO_MISSING} $ ${"))
}

func TestEnvironmentExpandAll(t *testing.T) {
	env := NewEnvironment([]string{"TARGET=install"})

	assert.Equal(t, []string{"--target", "install"},
		env.ExpandAll([]string{"--target", "${TARGET}"}))
}

func TestEnvironmentPairsSorted(t *testing.T) {
	env := Environment{"B": "2", "A": "1"}
	assert.Equal(t, []string{"A=1", "B=2"}, env.Pairs())
}
