package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// BuildToolVariable is the cache variable that records the path of the build
// tool the generator configured.
const BuildToolVariable = "CMAKE_MAKE_PROGRAM"

// ParseCacheVariable scans a CMakeCache.txt stream for the named variable and
// returns its value. Entries have the line-oriented form `name:type=value`;
// comment lines starting with `#` or `//` are skipped. Returns a
// variable_missing error if the variable is not present.
func ParseCacheVariable(r io.Reader, name string) (string, error) {
	prefix := name + ":"

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		if idx := strings.IndexByte(line, '='); idx >= 0 {
			return line[idx+1:], nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", Wrap(DomainCache, CodeCacheUnreadable, "failed to read cache", err)
	}
	return "", New(DomainCache, CodeVariableMissing,
		fmt.Sprintf("variable %s not found in cache", name))
}

// ReadCacheVariable reads the named variable from the cache file at path.
func ReadCacheVariable(path, name string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", Wrap(DomainCache, CodeCacheUnreadable,
			fmt.Sprintf("failed to open cache file %s", path), err)
	}
	defer f.Close()

	value, err := ParseCacheVariable(f, name)
	if err != nil {
		if Is(err, DomainCache, CodeVariableMissing) {
			return "", New(DomainCache, CodeVariableMissing,
				fmt.Sprintf("failed to get value of variable %s from %s", name, path))
		}
		return "", err
	}
	return value, nil
}
