// Package export writes command output to disk so that a reader never
// sees a half written file.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// ErrExists is returned by [WriteFile] with [WithNoClobber] when the
// destination is already present.
var ErrExists = errors.New("destination exists")

// Option defines optional settings for [WriteFile].
type Option func(*options) error

type options struct {
	perm      fs.FileMode
	noClobber bool
}

// WithPerm sets the permission bits of the written file. Defaults to 0o644.
func WithPerm(perm fs.FileMode) Option {
	return func(opts *options) error {
		if perm&^fs.ModePerm != 0 {
			return fmt.Errorf("perm %v has non permission bits set", perm)
		}
		opts.perm = perm
		return nil
	}
}

// WithNoClobber refuses to replace an existing destination, including one
// created while the write was in progress. It needs a filesystem that
// supports hard links.
func WithNoClobber() Option {
	return func(opts *options) error {
		opts.noClobber = true
		return nil
	}
}

// WriteFile streams whatever write produces into a temp file in the same
// directory as destPath, then renames it to destPath (or links it, with
// [WithNoClobber]). On any error,
// including ctx being done before the rename, the temp file is removed
// and destPath is left untouched.
func WriteFile(ctx context.Context, destPath string, logger *slog.Logger, write func(io.Writer) error, optFns ...Option) error {
	if destPath == "" {
		return errors.New("destPath must not be empty")
	}

	opts := options{perm: 0o644}
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return fmt.Errorf("applying option: %w", err)
		}
	}

	if opts.noClobber {
		if _, err := os.Stat(destPath); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, destPath)
		}
	}

	file, err := os.CreateTemp(filepath.Dir(destPath), ".clearlydefined-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	var successful bool
	defer func() {
		if err := file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			logger.Error("defer closing temp file", "error", err)
		}
		if !successful {
			if err := os.Remove(file.Name()); err != nil {
				logger.Error("failed to remove temp file", "error", err)
			}
		}
	}()

	if err := write(&contextWriter{ctx: ctx, w: file}); err != nil {
		return fmt.Errorf("writing %s: %w", destPath, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := file.Chmod(opts.perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if !opts.noClobber {
		if err := os.Rename(file.Name(), destPath); err != nil {
			return fmt.Errorf("renaming temp file: %w", err)
		}
		successful = true
		logger.Debug("wrote file", "path", destPath)
		return nil
	}

	// Link fails if destPath appeared while writing, unlike Rename which
	// would replace it. The deferred cleanup drops the temp name either way.
	if err := os.Link(file.Name(), destPath); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExists, destPath)
		}
		return fmt.Errorf("linking temp file: %w", err)
	}

	logger.Debug("wrote file", "path", destPath)

	return nil
}

// contextWriter stops accepting writes once ctx is done.
type contextWriter struct {
	ctx context.Context
	w   io.Writer
}

func (cw *contextWriter) Write(p []byte) (int, error) {
	if err := cw.ctx.Err(); err != nil {
		return 0, err
	}

	return cw.w.Write(p)
}
