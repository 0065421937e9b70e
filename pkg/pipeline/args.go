package pipeline

import "strings"

// CMakeCall constructs the command line that generates the build scripts.
//
// cmakeBin is the cmake binary, as an absolute or relative path. generator,
// preloadScript, buildType and cmakeArgs may be empty, in which case the
// corresponding tokens are omitted. sourceDir is always the last argument.
func CMakeCall(cmakeBin, generator, preloadScript, sourceDir, buildType, cmakeArgs string) []string {
	args := []string{cmakeBin}

	if generator = strings.TrimSpace(generator); generator != "" {
		args = append(args, "-G", generator)
	}
	if preloadScript = strings.TrimSpace(preloadScript); preloadScript != "" {
		args = append(args, "-C", preloadScript)
	}
	if buildType = strings.TrimSpace(buildType); buildType != "" {
		args = append(args, "-D", "CMAKE_BUILD_TYPE="+buildType)
	}
	args = append(args, Tokenize(cmakeArgs)...)
	args = append(args, sourceDir)
	return args
}

// ToolCall constructs the command line that invokes the build tool directly.
func ToolCall(toolBin string, toolArgs ...string) []string {
	args := make([]string, 0, len(toolArgs)+1)
	args = append(args, toolBin)
	args = append(args, toolArgs...)
	return args
}

// ToolCallWithCMake constructs the command line that has cmake dispatch to
// whichever build tool the generator configured, via `cmake --build`.
func ToolCallWithCMake(cmakeBin, buildDir string, toolArgs ...string) []string {
	args := make([]string, 0, len(toolArgs)+3)
	args = append(args, cmakeBin, "--build", buildDir)
	args = append(args, toolArgs...)
	return args
}

// Tokenize splits a raw argument string on whitespace. There are no quoting
// semantics; the invoked process is the ultimate validator of its arguments.
func Tokenize(raw string) []string {
	return strings.Fields(raw)
}
