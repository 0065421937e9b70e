package pipeline

import (
	"sort"
	"strings"
)

// Environment is a mutable set of environment variables assembled from
// KEY=VALUE pairs and per-step overrides.
type Environment map[string]string

// NewEnvironment builds an Environment from KEY=VALUE pairs. Later pairs win.
func NewEnvironment(pairs []string) Environment {
	env := make(Environment, len(pairs))
	for _, pair := range pairs {
		if idx := strings.IndexByte(pair, '='); idx >= 0 {
			env[pair[:idx]] = pair[idx+1:]
		}
	}
	return env
}

// Override applies the given variables on top of the environment. Values may
// reference existing variables with $NAME or ${NAME} syntax.
func (e Environment) Override(vars map[string]string) Environment {
	merged := make(Environment, len(e)+len(vars))
	for k, v := range e {
		merged[k] = v
	}
	for k, v := range vars {
		merged[k] = merged.Expand(v)
	}
	return merged
}

// Expand substitutes $NAME and ${NAME} references against the environment.
// References to variables that are not set are left as written.
func (e Environment) Expand(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '$' {
			b.WriteByte(s[i])
			i++
			continue
		}
		name, width := scanVarRef(s[i+1:])
		if width == 0 {
			b.WriteByte('$')
			i++
			continue
		}
		if value, ok := e[name]; ok {
			b.WriteString(value)
		} else {
			b.WriteString(s[i : i+1+width])
		}
		i += 1 + width
	}
	return b.String()
}

// scanVarRef reads a variable reference following a `$`: either `{NAME}` or a
// run of name characters. width is the number of bytes consumed after the
// dollar sign, zero when no reference starts there.
func scanVarRef(s string) (name string, width int) {
	if s == "" {
		return "", 0
	}
	if s[0] == '{' {
		if end := strings.IndexByte(s, '}'); end > 1 {
			return s[1:end], end + 1
		}
		return "", 0
	}
	i := 0
	for i < len(s) && isNameByte(s[i]) {
		i++
	}
	return s[:i], i
}

func isNameByte(c byte) bool {
	return c == '_' ||
		'a' <= c && c <= 'z' ||
		'A' <= c && c <= 'Z' ||
		'0' <= c && c <= '9'
}

// ExpandAll expands every argument in the list.
func (e Environment) ExpandAll(args []string) []string {
	expanded := make([]string, len(args))
	for i, arg := range args {
		expanded[i] = e.Expand(arg)
	}
	return expanded
}

// Pairs returns the environment as sorted KEY=VALUE pairs.
func (e Environment) Pairs() []string {
	pairs := make([]string, 0, len(e))
	for k, v := range e {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return pairs
}
