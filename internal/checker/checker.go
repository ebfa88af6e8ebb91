package checker

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/nikbrunner/pathmark/internal/model"
	"golang.org/x/sync/errgroup"
)

// Status represents the health of a bookmarked path.
type Status int

const (
	Healthy    Status = iota // exists and can be opened
	Missing                  // no longer exists
	Unreadable               // exists but cannot be opened or listed
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Missing:
		return "missing"
	case Unreadable:
		return "unreadable"
	default:
		return "unknown"
	}
}

// Result holds the check result for a single bookmark.
type Result struct {
	Bookmark model.Bookmark
	Status   Status
	Error    string // set for Unreadable
}

// ProgressFunc is called after each path is checked.
// completed is the number of paths checked so far, total is the total count.
type ProgressFunc func(completed, total int)

// Check stats every bookmark path with at most concurrency workers.
// Results are in input order. Cancelling ctx stops the check and returns
// the context's error.
func Check(ctx context.Context, bookmarks []model.Bookmark, concurrency int, onProgress ProgressFunc) ([]Result, error) {
	if len(bookmarks) == 0 {
		return nil, nil
	}
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]Result, len(bookmarks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var progressMu sync.Mutex
	completed := 0

	for i := range bookmarks {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = checkPath(bookmarks[i])

			if onProgress != nil {
				progressMu.Lock()
				completed++
				onProgress(completed, len(bookmarks))
				progressMu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// checkPath checks a single path and returns the result.
func checkPath(b model.Bookmark) Result {
	result := Result{Bookmark: b}

	info, err := os.Stat(b.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		result.Status = Missing
		return result
	case err != nil:
		result.Status = Unreadable
		result.Error = err.Error()
		return result
	}

	f, err := os.Open(b.Path)
	if err != nil {
		result.Status = Unreadable
		result.Error = err.Error()
		return result
	}
	defer f.Close()

	if info.IsDir() {
		if _, err := f.Readdirnames(1); err != nil && err != io.EOF {
			result.Status = Unreadable
			result.Error = err.Error()
			return result
		}
	}

	result.Status = Healthy
	return result
}

// Summary counts results by status.
func Summary(results []Result) map[Status]int {
	counts := make(map[Status]int)
	for _, r := range results {
		counts[r.Status]++
	}
	return counts
}

// Filter returns the results with the given status.
func Filter(results []Result, status Status) []Result {
	var out []Result
	for _, r := range results {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}
