package stacktrace

import "strings"

const marker = "/internal/"

// InternalPaths extracts the "internal/<pkg>/<file>.go:<line>" locations from a
// raw debug.Stack() dump, innermost first. Runtime and dependency frames are
// dropped.
func InternalPaths(stack []byte) []string {
	var paths []string
	for line := range strings.Lines(string(stack)) {
		line = strings.TrimSpace(line)

		loc, _, _ := strings.Cut(line, " +0x")
		if !strings.Contains(loc, ".go:") {
			continue
		}

		idx := strings.Index(loc, marker)
		if idx == -1 {
			continue
		}
		paths = append(paths, loc[idx+1:])
	}
	return paths
}
