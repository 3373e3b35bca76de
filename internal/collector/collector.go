package collector

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/observatory-platform/repodeps/internal/pkgmgr"
	"github.com/observatory-platform/repodeps/internal/utils/logger"
	"github.com/observatory-platform/repodeps/internal/utils/slice"
)

// Options configures a collection run.
type Options struct {
	// Root is the output file root name ("pkg" produces pkg.list, pkg.info,
	// pkg.dep and, when any stderr occurred, pkg.errors).
	Root string
	// WorkDir is where the final files are promoted to.
	WorkDir string
	// ProgressWriter receives the progress bar; defaults to os.Stderr.
	ProgressWriter io.Writer
}

// Collector drives the sequential list/info/deplist collection loop.
type Collector struct {
	mgr  *pkgmgr.Manager
	opts Options
}

func New(mgr *pkgmgr.Manager, opts Options) *Collector {
	if opts.Root == "" {
		opts.Root = "pkg"
	}
	if opts.WorkDir == "" {
		opts.WorkDir = "."
	}
	if opts.ProgressWriter == nil {
		opts.ProgressWriter = os.Stderr
	}
	return &Collector{mgr: mgr, opts: opts}
}

// Run collects package metadata for every repository matching the given
// patterns. All output accumulates in a staging directory; the final
// <root>.list, <root>.info and <root>.dep files are only promoted once every
// collection step has finished. Cancelling the context removes the staging
// directory and leaves any previous output files untouched.
func (c *Collector) Run(ctx context.Context, repoPatterns []string) error {
	log := logger.Logger()

	if len(repoPatterns) == 0 {
		return fmt.Errorf("no repository patterns given")
	}
	repoPatterns = slice.Dedup(repoPatterns)
	filters, err := CompileFilters(repoPatterns)
	if err != nil {
		return err
	}

	var errLog strings.Builder

	log.Infof("listing available packages with %s", c.mgr.Tool())
	listOut, listErr, err := c.mgr.ListAvailable(ctx)
	errLog.WriteString(listErr)
	if err != nil {
		return fmt.Errorf("listing available packages: %w", err)
	}

	rows := FilterRows(ParseList(listOut), filters)
	log.Infof("matched %d packages across %d repository patterns", len(rows), len(repoPatterns))
	if len(rows) == 0 {
		log.Warnf("no packages matched repository patterns %v", repoPatterns)
	}

	// Staging lives inside WorkDir so the promotion renames stay on one
	// filesystem. After promotion only the empty directory remains, so the
	// deferred removal is safe on every exit path.
	staging := filepath.Join(c.opts.WorkDir, ".repodeps-"+uuid.NewString())
	if err := os.MkdirAll(staging, 0755); err != nil {
		return fmt.Errorf("creating staging directory %s: %w", staging, err)
	}
	defer os.RemoveAll(staging)

	listPath := filepath.Join(staging, c.opts.Root+".list")
	var listBuf strings.Builder
	for _, row := range rows {
		listBuf.WriteString(row.Name)
		listBuf.WriteByte('\n')
	}
	if err := os.WriteFile(listPath, []byte(listBuf.String()), 0644); err != nil {
		return fmt.Errorf("writing package list: %w", err)
	}

	infoPath := filepath.Join(staging, c.opts.Root+".info")
	depPath := filepath.Join(staging, c.opts.Root+".dep")
	infoFile, err := os.Create(infoPath)
	if err != nil {
		return fmt.Errorf("creating info file: %w", err)
	}
	defer infoFile.Close()
	depFile, err := os.Create(depPath)
	if err != nil {
		return fmt.Errorf("creating dep file: %w", err)
	}
	defer depFile.Close()

	bar := progressbar.NewOptions(len(rows),
		progressbar.OptionSetWriter(c.opts.ProgressWriter),
		progressbar.OptionSetDescription("collecting"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
	)

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("collection interrupted: %w", err)
		}
		bar.Describe(fmt.Sprintf("collecting %s", row.Name))

		// A single package's query error does not fail the run; its
		// stderr lands in the error log for later inspection.
		infoOut, infoErr, err := c.mgr.Info(ctx, row.Name)
		errLog.WriteString(infoErr)
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("collection interrupted: %w", ctx.Err())
			}
			log.Warnf("info query for %s failed: %v", row.Name, err)
		}
		if _, err := infoFile.WriteString(infoOut); err != nil {
			return fmt.Errorf("writing info for %s: %w", row.Name, err)
		}

		depOut, depErr, err := c.mgr.Deplist(ctx, row.Name)
		errLog.WriteString(depErr)
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("collection interrupted: %w", ctx.Err())
			}
			log.Warnf("deplist query for %s failed: %v", row.Name, err)
		}
		if _, err := depFile.WriteString(depOut); err != nil {
			return fmt.Errorf("writing deplist for %s: %w", row.Name, err)
		}

		bar.Add(1)
	}
	bar.Finish()

	if err := infoFile.Close(); err != nil {
		return fmt.Errorf("closing info file: %w", err)
	}
	if err := depFile.Close(); err != nil {
		return fmt.Errorf("closing dep file: %w", err)
	}

	errPath := ""
	if errLog.Len() > 0 {
		errPath = filepath.Join(staging, c.opts.Root+".errors")
		if err := os.WriteFile(errPath, []byte(errLog.String()), 0644); err != nil {
			return fmt.Errorf("writing error log: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("collection interrupted: %w", err)
	}

	// All steps succeeded; promote the staged files together.
	for _, name := range []string{c.opts.Root + ".list", c.opts.Root + ".info", c.opts.Root + ".dep"} {
		if err := os.Rename(filepath.Join(staging, name), filepath.Join(c.opts.WorkDir, name)); err != nil {
			return fmt.Errorf("promoting %s: %w", name, err)
		}
	}
	finalErrPath := filepath.Join(c.opts.WorkDir, c.opts.Root+".errors")
	if errPath != "" {
		if err := os.Rename(errPath, finalErrPath); err != nil {
			return fmt.Errorf("promoting error log: %w", err)
		}
		log.Warnf("some queries produced errors, see %s", finalErrPath)
	} else {
		// A stale error log from an earlier run would be misleading.
		if err := os.Remove(finalErrPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing stale error log: %w", err)
		}
	}

	log.Infof("collected metadata for %d packages into %s", len(rows),
		filepath.Join(c.opts.WorkDir, c.opts.Root+".*"))
	return nil
}
