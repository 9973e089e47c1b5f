package asnops

import (
	"bufio"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/golangsnmp/asnops/internal/types"
)

// PathEnv names the environment variable that adjusts the search path.
// A leading colon appends to the current list, a trailing colon prepends,
// and anything else replaces it.
const PathEnv = "ASNOPS_PATH"

type pathOp int

const (
	pathReplace pathOp = iota
	pathAppend
	pathPrepend
)

// SearchPaths returns the directories searched for specification
// documents, deduplicated and filtered to directories that exist. Load
// with WithSearchPaths reads each of them recursively.
//
// The list starts from the built-in defaults, is adjusted by "path" lines
// in /etc/asnops.conf and ~/.asnopsrc, and finally by ASNOPS_PATH. All
// three use the same colon semantics as PathEnv.
func SearchPaths() []string {
	return discoverSearchPaths(types.Logger{})
}

func discoverSearchSources(logger types.Logger) []Source {
	dirs := discoverSearchPaths(logger)
	var sources []Source
	for _, d := range dirs {
		if src, err := DirTree(d); err == nil {
			sources = append(sources, src)
		}
	}
	logger.Log(slog.LevelDebug, "search paths discovered", slog.Int("dirs", len(sources)))
	return sources
}

func discoverSearchPaths(logger types.Logger) []string {
	paths := defaultSearchPaths()
	for _, cf := range searchConfigFiles() {
		paths = applyConfigFile(cf, paths, parseConfigLine, logger)
	}
	if v := os.Getenv(PathEnv); v != "" {
		paths = applyPathEnv(v, paths)
	}
	return filterExistingDirs(dedup(paths))
}

func defaultSearchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".asnops", "specs"))
	}
	paths = append(paths,
		"/usr/share/asnops/specs",
		"/usr/local/share/asnops/specs",
	)
	return paths
}

func searchConfigFiles() []string {
	files := []string{"/etc/asnops.conf"}
	if home, err := os.UserHomeDir(); err == nil {
		files = append(files, filepath.Join(home, ".asnopsrc"))
	}
	return files
}

// parseConfigLine parses a single config line of the form "path <dirs>".
// Blank lines and lines starting with '#' are ignored.
func parseConfigLine(line string) (pathOp, []string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return 0, nil, false
	}

	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "path" {
		return 0, nil, false
	}

	op, dirs := parseColonSemantic(fields[1])
	return op, dirs, true
}

// parseColonSemantic interprets leading/trailing colon semantics.
// Leading colon = append, trailing colon = prepend, neither = replace.
func parseColonSemantic(value string) (pathOp, []string) {
	if strings.HasPrefix(value, ":") {
		return pathAppend, splitPaths(strings.TrimPrefix(value, ":"))
	}
	if strings.HasSuffix(value, ":") {
		return pathPrepend, splitPaths(strings.TrimSuffix(value, ":"))
	}
	return pathReplace, splitPaths(value)
}

func applyPathEnv(value string, current []string) []string {
	op, dirs := parseColonSemantic(value)
	return applyOp(op, dirs, current)
}

func applyOp(op pathOp, dirs, current []string) []string {
	switch op {
	case pathAppend:
		return append(current, dirs...)
	case pathPrepend:
		return append(dirs, current...)
	default:
		return dirs
	}
}

func applyConfigFile(path string, current []string, parseLine func(string) (pathOp, []string, bool), logger types.Logger) []string {
	f, err := os.Open(path)
	if err != nil {
		return current
	}
	defer f.Close() //nolint:errcheck // best-effort config file read

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		op, dirs, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		current = applyOp(op, dirs, current)
	}
	if err := scanner.Err(); err != nil {
		logger.Log(slog.LevelDebug, "error reading config file", slog.String("path", path), slog.Any("error", err))
	}
	return current
}

func splitPaths(s string) []string {
	if s == "" {
		return nil
	}
	var result []string
	for _, p := range strings.Split(s, ":") {
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func dedup(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	var result []string
	for _, p := range paths {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			result = append(result, p)
		}
	}
	return result
}

func filterExistingDirs(paths []string) []string {
	var result []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err == nil && info.IsDir() {
			result = append(result, p)
		}
	}
	return result
}
