package preflight

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"

	"snapname/internal/config"
)

const checkTimeout = 10 * time.Second

// Result is the outcome of a single check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// ModelLister is the slice of the Ollama client preflight needs.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
	Model() string
}

// Run executes all checks concurrently and returns them in a fixed order.
// The returned error is non-nil only on internal failure, never on a failed
// check; inspect the Results for that.
func Run(ctx context.Context, cfg *config.Config, lister ModelLister) ([]Result, error) {
	runCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	results := make([]Result, 2)
	group, groupCtx := errgroup.WithContext(runCtx)

	group.Go(func() error {
		results[0] = CheckOllama(groupCtx, lister)
		return nil
	})
	group.Go(func() error {
		results[1] = CheckWatchDirectory(cfg.Paths.WatchDir)
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// AllPassed reports whether every check succeeded.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

// CheckOllama probes the endpoint by listing installed models. The
// configured model not being installed is reported in the detail but does
// not fail the check; Ollama can pull it on first use.
func CheckOllama(ctx context.Context, lister ModelLister) Result {
	result := Result{Name: "ollama"}

	models, err := lister.ListModels(ctx)
	if err != nil {
		result.Detail = fmt.Sprintf("endpoint unreachable: %v", err)
		return result
	}

	result.Passed = true
	want := lister.Model()
	for _, m := range models {
		if m == want || strings.SplitN(m, ":", 2)[0] == want {
			result.Detail = fmt.Sprintf("model %s installed", want)
			return result
		}
	}
	result.Detail = fmt.Sprintf("reachable, model %s not installed yet", want)
	return result
}

// CheckWatchDirectory verifies the watch directory exists, is a directory,
// and is readable by this process.
func CheckWatchDirectory(dir string) Result {
	result := Result{Name: "watch directory"}

	info, err := os.Stat(dir)
	if err != nil {
		result.Detail = fmt.Sprintf("cannot stat %s: %v", dir, err)
		return result
	}
	if !info.IsDir() {
		result.Detail = fmt.Sprintf("%s is not a directory", dir)
		return result
	}
	if err := unix.Access(dir, unix.R_OK); err != nil {
		result.Detail = fmt.Sprintf("%s is not readable: %v", dir, err)
		return result
	}

	result.Passed = true
	result.Detail = dir
	return result
}
