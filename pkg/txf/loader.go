package txf

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
)

// FileExtensions lists the extensions DiscoverFiles treats as TXF files.
var FileExtensions = []string{".txf", ".sxf", ".sit"}

// DocumentSet is an ordered collection of loaded documents.
type DocumentSet struct {
	Entries []*Entry
}

// Entry is one loaded file.
type Entry struct {
	Path     string
	Document *Document
}

// ObjectCount returns the total number of objects over all entries.
func (s *DocumentSet) ObjectCount() int {
	n := 0
	for _, e := range s.Entries {
		n += e.Document.ObjectCount()
	}
	return n
}

// LoadOptions controls parallel loading behavior and error handling.
type LoadOptions struct {
	// Parallel enables concurrent loading.
	Parallel bool

	// Workers is the number of loader goroutines.
	// If 0, defaults to runtime.NumCPU(). Only used when Parallel is true.
	Workers int

	// SkipErrors causes loading to continue when individual files fail.
	// Failed files are skipped and their errors collected.
	// When false, the first error stops loading and is returned alone.
	SkipErrors bool

	// Progress is called after each file is processed with (loaded, total).
	Progress func(loaded, total int)

	// OnLoad is called once per processed file with the outcome and the time
	// spent parsing it. Calls happen on the collecting goroutine, one at a time.
	OnLoad func(path string, doc *Document, err error, elapsed time.Duration)

	// ErrorLog receives one line per failed file.
	ErrorLog io.Writer

	// ParseOptions is passed to the parser for every file.
	ParseOptions ParseOptions

	// Cache, if set, is consulted before parsing and filled afterwards.
	Cache *DocumentCache
}

// DefaultLoadOptions returns load options with sensible defaults.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Parallel:     true,
		Workers:      runtime.NumCPU(),
		SkipErrors:   true,
		ParseOptions: DefaultParseOptions(),
	}
}

// LoadFile parses one file, going through cache when it is non-nil.
func LoadFile(path string, parser Parser, opts ParseOptions, cache *DocumentCache) (*Document, error) {
	load := func() (*Document, error) {
		return parser.ParseWithOptions(path, opts)
	}
	if cache == nil {
		return load()
	}
	return cache.Get(path, load)
}

// LoadFilesParallel loads multiple TXF files with a worker pool.
//
// Documents are returned in the order of paths, minus the files that failed.
// With SkipErrors the errors of all failed files are returned alongside;
// without it loading stops at the first failure, which is returned alone.
//
// Example:
//
//	set, errs := txf.LoadFilesParallel(paths, txf.NewParser(), txf.LoadOptions{
//	    Parallel:   true,
//	    SkipErrors: true,
//	    Progress: func(loaded, total int) {
//	        fmt.Printf("\rLoading: %d/%d", loaded, total)
//	    },
//	    ErrorLog: os.Stderr,
//	})
func LoadFilesParallel(paths []string, parser Parser, opts LoadOptions) (*DocumentSet, []error) {
	if len(paths) == 0 {
		return &DocumentSet{Entries: []*Entry{}}, nil
	}

	if !opts.Parallel {
		return loadFilesSerial(paths, parser, opts)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	type loadResult struct {
		index   int
		doc     *Document
		err     error
		elapsed time.Duration
	}

	jobs := make(chan int, len(paths))
	results := make(chan loadResult, len(paths))
	// closed on early exit so idle workers stop picking up jobs
	done := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				select {
				case <-done:
					return
				default:
				}
				start := time.Now()
				doc, err := LoadFile(paths[index], parser, opts.ParseOptions, opts.Cache)
				results <- loadResult{
					index:   index,
					doc:     doc,
					err:     err,
					elapsed: time.Since(start),
				}
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	docs := make(map[int]*Document)
	var errs []error
	loaded := 0

	for result := range results {
		loaded++
		path := paths[result.index]

		if opts.OnLoad != nil {
			opts.OnLoad(path, result.doc, result.err, result.elapsed)
		}
		if opts.Progress != nil {
			opts.Progress(loaded, len(paths))
		}

		if result.err != nil {
			err := fmt.Errorf("%s: %w", path, result.err)
			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "Error loading file: %v\n", err)
			}
			if opts.SkipErrors {
				errs = append(errs, err)
				continue
			}
			close(done)
			// results is buffered, so workers never block on send
			return nil, []error{err}
		}

		docs[result.index] = result.doc
	}

	entries := make([]*Entry, 0, len(docs))
	for i := range paths {
		if doc, ok := docs[i]; ok {
			entries = append(entries, &Entry{Path: paths[i], Document: doc})
		}
	}

	return &DocumentSet{Entries: entries}, errs
}

// loadFilesSerial loads files one at a time (fallback when Parallel=false).
func loadFilesSerial(paths []string, parser Parser, opts LoadOptions) (*DocumentSet, []error) {
	entries := make([]*Entry, 0, len(paths))
	var errs []error

	for i, path := range paths {
		start := time.Now()
		doc, err := LoadFile(path, parser, opts.ParseOptions, opts.Cache)
		elapsed := time.Since(start)

		if opts.OnLoad != nil {
			opts.OnLoad(path, doc, err, elapsed)
		}
		if opts.Progress != nil {
			opts.Progress(i+1, len(paths))
		}

		if err != nil {
			err := fmt.Errorf("%s: %w", path, err)
			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "Error loading file: %v\n", err)
			}
			if opts.SkipErrors {
				errs = append(errs, err)
				continue
			}
			return nil, []error{err}
		}

		entries = append(entries, &Entry{Path: path, Document: doc})
	}

	return &DocumentSet{Entries: entries}, errs
}

// DiscoverFiles walks root and returns every file with a TXF extension
// (case-insensitive), sorted by path. A root that is itself a file is
// returned as is.
func DiscoverFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if path == root || hasTXFExtension(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	sort.Strings(paths)
	return paths, nil
}

func hasTXFExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range FileExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
