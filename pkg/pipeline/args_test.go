package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCMakeCall(t *testing.T) {
	tests := []struct {
		name          string
		generator     string
		preloadScript string
		buildType     string
		cmakeArgs     string
		expected      []string
	}{
		{
			name:     "no optional fields",
			expected: []string{"cmake", "/src"},
		},
		{
			name:      "generator only",
			generator: "Ninja",
			expected:  []string{"cmake", "-G", "Ninja", "/src"},
		},
		{
			name:          "preload script only",
			preloadScript: "cache-init.cmake",
			expected:      []string{"cmake", "-C", "cache-init.cmake", "/src"},
		},
		{
			name:      "build type yields a single -D pair",
			buildType: "Debug",
			expected:  []string{"cmake", "-D", "CMAKE_BUILD_TYPE=Debug", "/src"},
		},
		{
			name:      "blank optionals produce no tokens",
			generator: "  ",
			buildType: "\t",
			expected:  []string{"cmake", "/src"},
		},
		{
			name:      "extra args tokenized before trailing source dir",
			cmakeArgs: "--foo --bar baz",
			expected:  []string{"cmake", "--foo", "--bar", "baz", "/src"},
		},
		{
			name:          "all fields in order",
			generator:     "Unix Makefiles",
			preloadScript: "pre.cmake",
			buildType:     "Release",
			cmakeArgs:     "-Wdev",
			expected: []string{
				"cmake", "-G", "Unix Makefiles", "-C", "pre.cmake",
				"-D", "CMAKE_BUILD_TYPE=Release", "-Wdev", "/src",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := CMakeCall("cmake", tt.generator, tt.preloadScript, "/src", tt.buildType, tt.cmakeArgs)
			assert.Equal(t, tt.expected, args)
			assert.Equal(t, "/src", args[len(args)-1], "source dir must be last")
		})
	}
}

func TestCMakeCallIsPure(t *testing.T) {
	first := CMakeCall("cmake", "Ninja", "", "/src", "Debug", "-Wdev")
	second := CMakeCall("cmake", "Ninja", "", "/src", "Debug", "-Wdev")
	assert.Equal(t, first, second)
}

func TestToolCall(t *testing.T) {
	assert.Equal(t, []string{"make"}, ToolCall("make"))
	assert.Equal(t, []string{"make", "-j4", "install"}, ToolCall("make", "-j4", "install"))
}

func TestToolCallWithCMake(t *testing.T) {
	args := ToolCallWithCMake("cmake", "/build", "--target", "install")
	assert.Equal(t, []string{"cmake", "--build", "/build", "--target", "install"}, args)
}

func TestTokenize(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("   "))
	assert.Equal(t, []string{"--foo", "--bar", "baz"}, Tokenize("--foo  --bar\tbaz"))
}
