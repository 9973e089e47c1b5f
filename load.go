package asnops

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"

	"github.com/golangsnmp/asnops/catalog"
	"github.com/golangsnmp/asnops/internal/types"
)

// WithSearchPaths appends the directories found by SearchPaths after the
// given source, each read recursively like DirTree. When Load is called with a nil source, the search paths
// alone are used.
func WithSearchPaths() ParseOption {
	return func(c *parseConfig) { c.searchPaths = true }
}

// Load parses every document of source and merges the results into one
// catalog. Documents are parsed in parallel and merged in the order
// source.ListFiles reports them, with the same duplicate policy that
// applies within a document. Files that cannot hold definitions are
// skipped (see WithNoHeuristic). The first failing document aborts the
// load; its error is prefixed with the document path.
//
// Example:
//
//	cat, err := asnops.Load(ctx,
//	    asnops.MustDirTree("./specs"),
//	    asnops.WithLogger(slog.Default()),
//	)
func Load(ctx context.Context, source Source, opts ...ParseOption) (*Catalog, error) {
	cfg := newParseConfig(opts)
	source, err := resolveSource(source, cfg)
	if err != nil {
		return nil, err
	}

	files, err := source.ListFiles()
	if err != nil {
		return nil, err
	}
	return loadFiles(ctx, source, files, cfg)
}

// LoadNamed parses only the named documents (file names without
// extension), looked up with source.Find, and merges them in the given
// order. A name that no source provides is an error wrapping
// fs.ErrNotExist.
func LoadNamed(ctx context.Context, names []string, source Source, opts ...ParseOption) (*Catalog, error) {
	cfg := newParseConfig(opts)
	source, err := resolveSource(source, cfg)
	if err != nil {
		return nil, err
	}

	logger := types.Logger{L: cfg.logger}
	merged := catalog.New()
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, path, err := source.Find(name)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", name, err)
		}
		cat, err := parseReader(r, path, heuristicFor(source, path), cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if cat == nil {
			continue
		}
		if err := mergeCatalog(merged, cat, cfg.strictDuplicates); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		logger.Log(slog.LevelDebug, "document loaded",
			slog.String("name", name),
			slog.String("path", path),
			slog.Int("definitions", cat.Len()))
	}
	return merged, nil
}

func resolveSource(source Source, cfg parseConfig) (Source, error) {
	var sources []Source
	if source != nil {
		sources = append(sources, source)
	}
	if cfg.searchPaths {
		sources = append(sources, discoverSearchSources(types.Logger{L: cfg.logger})...)
	}
	switch len(sources) {
	case 0:
		return nil, ErrNoSources
	case 1:
		return sources[0], nil
	default:
		return Multi(sources...), nil
	}
}

// loadFiles parses files in parallel, bounded by the number of CPUs.
func loadFiles(ctx context.Context, source Source, files []string, cfg parseConfig) (*Catalog, error) {
	logger := types.Logger{L: cfg.logger}
	if len(files) == 0 {
		return catalog.New(), nil
	}

	logger.Log(slog.LevelInfo, "parallel loading", slog.Int("files", len(files)))

	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]*catalog.Catalog, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.NumCPU())

	for i, path := range files {
		wg.Add(1)
		go func() {
			defer wg.Done()

			select {
			case <-workCtx.Done():
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			if workCtx.Err() != nil {
				return
			}

			r, err := source.Open(path)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", path, err)
				cancel()
				return
			}
			cat, err := parseReader(r, path, heuristicFor(source, path), cfg)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", path, err)
				cancel()
				return
			}
			results[i] = cat
		}()
	}
	wg.Wait()

	if err := firstError(errs); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged := catalog.New()
	for i, cat := range results {
		if cat == nil {
			continue
		}
		if err := mergeCatalog(merged, cat, cfg.strictDuplicates); err != nil {
			return nil, fmt.Errorf("%s: %w", files[i], err)
		}
	}

	logger.Log(slog.LevelInfo, "parallel loading complete",
		slog.Int("files", len(files)),
		slog.Int("definitions", merged.Len()))
	return merged, nil
}

// parseReader reads and parses one document. It returns nil, nil for
// content the heuristic rejects.
func parseReader(r io.ReadCloser, path string, heuristic bool, cfg parseConfig) (*Catalog, error) {
	content, err := io.ReadAll(r)
	_ = r.Close()
	if err != nil {
		return nil, err
	}

	logger := types.Logger{L: cfg.logger}
	if heuristic && !looksLikeSpecContent(content) {
		logger.Log(slog.LevelDebug, "content rejected by heuristic", slog.String("path", path))
		return nil, nil
	}

	docCfg := cfg
	if cfg.logger != nil {
		docCfg.logger = cfg.logger.With(slog.String("document", path))
	}
	return parseBytes(content, docCfg)
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// mergeCatalog adds the definitions of src to dst in order.
func mergeCatalog(dst, src *catalog.Catalog, strict bool) error {
	if src == nil {
		return nil
	}
	for name, def := range src.All() {
		if strict && dst.Has(name) {
			return fmt.Errorf("%s %s: %w", def.Kind, name, ErrDuplicateDefinition)
		}
		dst.Set(def)
	}
	return nil
}

var sigAssign = []byte("::=")

const binaryCheckSize = 1024

// looksLikeSpecContent rejects binary files and files without any "::="
// assignment, which cannot contain a definition.
func looksLikeSpecContent(content []byte) bool {
	if len(content) == 0 {
		return false
	}

	checkLen := min(binaryCheckSize, len(content))
	if bytes.IndexByte(content[:checkLen], 0) >= 0 {
		return false
	}
	return bytes.Contains(content, sigAssign)
}
