package asnops

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// DefaultExtensions are the file extensions recognized as specification
// documents. Empty string matches files with no extension.
var DefaultExtensions = []string{"", ".asn", ".asn1", ".exp", ".txt"}

// Source provides specification documents.
type Source interface {
	// ListFiles returns the paths of all documents known to this source,
	// in the order Load merges them.
	ListFiles() ([]string, error)

	// Open opens a document by a path returned from ListFiles.
	// Returns fs.ErrNotExist if the path does not belong to this source.
	Open(path string) (io.ReadCloser, error)

	// Find locates a document by name (file name without extension).
	// Returns the content, the document path, or fs.ErrNotExist if not found.
	Find(name string) (io.ReadCloser, string, error)
}

// SourceOption configures a source.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	extensions  []string
	noHeuristic bool
}

func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		extensions: DefaultExtensions,
	}
}

func newSourceConfig(opts []SourceOption) sourceConfig {
	cfg := defaultSourceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithExtensions sets the file extensions to recognize for this source.
func WithExtensions(exts ...string) SourceOption {
	return func(c *sourceConfig) {
		c.extensions = exts
	}
}

// WithNoHeuristic disables the content check that skips files which
// cannot hold definitions (binary data, no "::=").
func WithNoHeuristic() SourceOption {
	return func(c *sourceConfig) {
		c.noHeuristic = true
	}
}

// ownedSource is implemented by every source in this package. It routes a
// listed path back to the source that produced it.
type ownedSource interface {
	owns(path string) bool
	heuristicFor(path string) bool
}

// heuristicFor reports whether the content check applies to path.
// Sources from outside this package always get the check.
func heuristicFor(src Source, path string) bool {
	if o, ok := src.(ownedSource); ok {
		return o.heuristicFor(path)
	}
	return true
}

// --- Dir Source (single directory, lazy) ---

type dirSource struct {
	path   string
	config sourceConfig
}

// Dir creates a Source that searches a single directory (no recursion).
// Files are looked up lazily on each call.
func Dir(path string, opts ...SourceOption) (Source, error) {
	if err := checkDir(path); err != nil {
		return nil, err
	}
	return &dirSource{path: path, config: newSourceConfig(opts)}, nil
}

// MustDir is like Dir but panics on error.
func MustDir(path string, opts ...SourceOption) Source {
	src, err := Dir(path, opts...)
	if err != nil {
		panic(err)
	}
	return src
}

func (s *dirSource) Find(name string) (io.ReadCloser, string, error) {
	for _, ext := range s.config.extensions {
		fullPath := filepath.Join(s.path, name+ext)
		f, err := os.Open(fullPath)
		if err == nil {
			return f, fullPath, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fullPath, err
		}
	}
	return nil, "", fs.ErrNotExist
}

func (s *dirSource) ListFiles() ([]string, error) {
	extSet := makeExtensionSet(s.config.extensions)
	var files []string

	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(s.path, entry.Name())
		if hasValidExtension(path, extSet) {
			files = append(files, path)
		}
	}
	return files, nil
}

func (s *dirSource) Open(path string) (io.ReadCloser, error) {
	if !s.owns(path) {
		return nil, fs.ErrNotExist
	}
	return os.Open(path)
}

func (s *dirSource) owns(path string) bool {
	return filepath.Dir(path) == filepath.Clean(s.path)
}

func (s *dirSource) heuristicFor(string) bool { return !s.config.noHeuristic }

// --- DirTree Source (recursive directory, indexed) ---

type treeSource struct {
	index  map[string]string // document name -> first file path, for Find
	paths  []string          // every matching file, sorted
	config sourceConfig
}

// DirTree creates a Source that recursively indexes a directory tree.
// It walks the tree once at construction. ListFiles reports every file
// with a recognized extension, including files that share a name in
// different directories or with different extensions. Find resolves a
// name to the first such file in walk order.
func DirTree(root string, opts ...SourceOption) (Source, error) {
	if err := checkDir(root); err != nil {
		return nil, err
	}

	cfg := newSourceConfig(opts)
	extSet := makeExtensionSet(cfg.extensions)
	index := make(map[string]string)
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !hasValidExtension(path, extSet) {
			return nil
		}

		paths = append(paths, path)
		name := documentNameFromPath(path)
		if _, exists := index[name]; !exists {
			index[name] = path
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(paths)
	return &treeSource{index: index, paths: paths, config: cfg}, nil
}

// MustDirTree is like DirTree but panics on error.
func MustDirTree(root string, opts ...SourceOption) Source {
	src, err := DirTree(root, opts...)
	if err != nil {
		panic(err)
	}
	return src
}

func (s *treeSource) Find(name string) (io.ReadCloser, string, error) {
	path, ok := s.index[name]
	if !ok {
		return nil, "", fs.ErrNotExist
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, path, err
	}
	return f, path, nil
}

func (s *treeSource) ListFiles() ([]string, error) {
	return slices.Clone(s.paths), nil
}

func (s *treeSource) Open(path string) (io.ReadCloser, error) {
	if !s.owns(path) {
		return nil, fs.ErrNotExist
	}
	return os.Open(path)
}

func (s *treeSource) owns(path string) bool {
	_, ok := slices.BinarySearch(s.paths, path)
	return ok
}

func (s *treeSource) heuristicFor(string) bool { return !s.config.noHeuristic }

// --- FS Source (for embed.FS, testing, http filesystems) ---

type fsSource struct {
	name   string
	fsys   fs.FS
	config sourceConfig

	once  sync.Once
	index map[string]string // document name -> first file path, for Find
	paths []string          // every matching file, sorted
	err   error
}

// FS creates a Source backed by an fs.FS (e.g., embed.FS).
// The name prefixes reported paths ("name:path").
// It lazily indexes the filesystem on first use. Like DirTree, it lists
// every matching file and resolves Find to the first file with the name.
func FS(name string, fsys fs.FS, opts ...SourceOption) Source {
	return &fsSource{
		name:   name,
		fsys:   fsys,
		config: newSourceConfig(opts),
	}
}

func (s *fsSource) load() error {
	s.once.Do(func() {
		s.index, s.paths, s.err = s.buildIndex()
	})
	return s.err
}

func (s *fsSource) Find(name string) (io.ReadCloser, string, error) {
	if err := s.load(); err != nil {
		return nil, "", err
	}

	path, ok := s.index[name]
	if !ok {
		return nil, "", fs.ErrNotExist
	}
	f, err := s.fsys.Open(path)
	if err != nil {
		return nil, s.name + ":" + path, err
	}
	return f, s.name + ":" + path, nil
}

func (s *fsSource) ListFiles() ([]string, error) {
	if err := s.load(); err != nil {
		return nil, err
	}

	files := make([]string, 0, len(s.paths))
	for _, path := range s.paths {
		files = append(files, s.name+":"+path)
	}
	return files, nil
}

func (s *fsSource) Open(path string) (io.ReadCloser, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	if !s.owns(path) {
		return nil, fs.ErrNotExist
	}
	return s.fsys.Open(strings.TrimPrefix(path, s.name+":"))
}

func (s *fsSource) owns(path string) bool {
	rel, ok := strings.CutPrefix(path, s.name+":")
	if !ok || s.load() != nil {
		return false
	}
	_, found := slices.BinarySearch(s.paths, rel)
	return found
}

func (s *fsSource) heuristicFor(string) bool { return !s.config.noHeuristic }

func (s *fsSource) buildIndex() (map[string]string, []string, error) {
	extSet := makeExtensionSet(s.config.extensions)
	index := make(map[string]string)
	var paths []string

	err := fs.WalkDir(s.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !hasValidExtension(path, extSet) {
			return nil
		}

		paths = append(paths, path)
		name := documentNameFromPath(path)
		if _, exists := index[name]; !exists {
			index[name] = path
		}
		return nil
	})
	slices.Sort(paths)
	return index, paths, err
}

// --- Files Source (explicit file list) ---

type filesSource struct {
	paths  []string
	config sourceConfig
}

// Files creates a Source over an explicit list of files, kept in the
// given order. Extensions are not filtered; the files need not exist
// until they are opened.
func Files(paths []string, opts ...SourceOption) Source {
	return &filesSource{paths: slices.Clone(paths), config: newSourceConfig(opts)}
}

func (s *filesSource) Find(name string) (io.ReadCloser, string, error) {
	for _, path := range s.paths {
		if documentNameFromPath(path) == name {
			f, err := os.Open(path)
			return f, path, err
		}
	}
	return nil, "", fs.ErrNotExist
}

func (s *filesSource) ListFiles() ([]string, error) {
	return slices.Clone(s.paths), nil
}

func (s *filesSource) Open(path string) (io.ReadCloser, error) {
	if !s.owns(path) {
		return nil, fs.ErrNotExist
	}
	return os.Open(path)
}

func (s *filesSource) owns(path string) bool {
	return slices.Contains(s.paths, path)
}

func (s *filesSource) heuristicFor(string) bool { return !s.config.noHeuristic }

// --- Multi Source (combines multiple sources) ---

type multiSource struct {
	sources []Source
}

// Multi combines multiple sources into one.
// Find tries each source in order, returning the first match.
// ListFiles concatenates the sources' lists in order.
func Multi(sources ...Source) Source {
	return &multiSource{sources: sources}
}

func (s *multiSource) Find(name string) (io.ReadCloser, string, error) {
	for _, src := range s.sources {
		r, path, err := src.Find(name)
		if err == nil {
			return r, path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, path, err
		}
	}
	return nil, "", fs.ErrNotExist
}

func (s *multiSource) ListFiles() ([]string, error) {
	var files []string
	for _, src := range s.sources {
		f, err := src.ListFiles()
		if err != nil {
			return nil, err
		}
		files = append(files, f...)
	}
	return files, nil
}

func (s *multiSource) Open(path string) (io.ReadCloser, error) {
	for _, src := range s.sources {
		r, err := src.Open(path)
		if err == nil {
			return r, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, fs.ErrNotExist
}

func (s *multiSource) owns(path string) bool {
	return s.owner(path) != nil
}

func (s *multiSource) heuristicFor(path string) bool {
	if o := s.owner(path); o != nil {
		return o.heuristicFor(path)
	}
	return true
}

func (s *multiSource) owner(path string) ownedSource {
	for _, src := range s.sources {
		if o, ok := src.(ownedSource); ok && o.owns(path) {
			return o
		}
	}
	return nil
}

// --- Helpers ---

func checkDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &os.PathError{Op: "open", Path: path, Err: os.ErrInvalid}
	}
	return nil
}

func makeExtensionSet(extensions []string) map[string]struct{} {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = struct{}{}
	}
	return set
}

func hasValidExtension(path string, extSet map[string]struct{}) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := extSet[ext]
	return ok
}

func documentNameFromPath(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext)
}

