package rename

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrRenameFailed indicates the filesystem rename call itself failed; the
// source file is left untouched at its original path.
var ErrRenameFailed = errors.New("rename failed")

// Plan describes a computed rename before it commits.
type Plan struct {
	Directory string
	BaseName  string
	Extension string
	FinalPath string
}

// PlanFor computes a destination for sourcePath using baseName and the
// source's original extension, appending _1, _2, … until the path is unused.
// The destination stays in the source's directory. Uniqueness holds at
// computation time only; the check-then-rename window is an accepted race.
func PlanFor(sourcePath, baseName string) Plan {
	dir := filepath.Dir(sourcePath)
	ext := filepath.Ext(sourcePath)

	final := filepath.Join(dir, baseName+ext)
	for counter := 1; pathExists(final); counter++ {
		final = filepath.Join(dir, fmt.Sprintf("%s_%d%s", baseName, counter, ext))
	}

	return Plan{
		Directory: dir,
		BaseName:  baseName,
		Extension: ext,
		FinalPath: final,
	}
}

// Apply performs exactly one rename of sourcePath to the plan's final path
// and returns that path. On failure the source remains at its original
// location and the error wraps ErrRenameFailed.
func Apply(sourcePath string, plan Plan) (string, error) {
	if err := os.Rename(sourcePath, plan.FinalPath); err != nil {
		return "", fmt.Errorf("%w: %s -> %s: %v", ErrRenameFailed, sourcePath, plan.FinalPath, err)
	}
	return plan.FinalPath, nil
}

// To plans and applies in one step.
func To(sourcePath, baseName string) (string, error) {
	return Apply(sourcePath, PlanFor(sourcePath, baseName))
}

func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
