package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/olusolaa/config-baseline-auditor/internal/core/ports"
	"github.com/olusolaa/config-baseline-auditor/internal/errors"
)

const SourceTypeFile = "file"

// maxConfigBytes bounds a single configuration file. Device configurations are
// text and rarely exceed a few megabytes.
const maxConfigBytes = 32 << 20

type Config struct {
	// BaseDir resolves relative device paths. Empty means the working directory.
	BaseDir string `mapstructure:"base_dir"`
}

// Source reads configuration text from a filesystem.
type Source struct {
	fs      afero.Fs
	baseDir string
	logger  ports.Logger
}

func NewSource(cfg Config, fs afero.Fs, logger ports.Logger) (*Source, error) {
	if fs == nil {
		return nil, errors.New(errors.CodeInternal, "file source requires a filesystem")
	}
	if logger == nil {
		return nil, errors.New(errors.CodeInternal, "file source requires a logger")
	}
	return &Source{
		fs:      fs,
		baseDir: cfg.BaseDir,
		logger:  logger.WithFields(map[string]any{"source": SourceTypeFile}),
	}, nil
}

func (s *Source) Type() string { return SourceTypeFile }

func (s *Source) Read(ctx context.Context, location string) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if location == "" {
		return "", errors.New(errors.CodeSourceNotFound, "empty configuration path")
	}

	path := s.resolve(location)
	info, err := s.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewUserFacing(errors.CodeSourceNotFound,
				fmt.Sprintf("configuration file %s does not exist", path),
				"Check the device paths and settings.base_dir.")
		}
		return "", errors.Wrap(err, errors.CodeSourceReadError, "stat "+path)
	}
	if info.IsDir() {
		return "", errors.NewUserFacing(errors.CodeSourceReadError,
			fmt.Sprintf("configuration path %s is a directory", path), "")
	}
	if info.Size() > maxConfigBytes {
		return "", errors.Newf(errors.CodeSourceReadError,
			"configuration file %s is %d bytes, limit is %d", path, info.Size(), maxConfigBytes)
	}

	raw, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeSourceReadError, "reading "+path)
	}
	s.logger.Debugf(ctx, "Read %d bytes from %s", len(raw), path)
	return string(raw), nil
}

func (s *Source) resolve(location string) string {
	if filepath.IsAbs(location) || s.baseDir == "" {
		return location
	}
	return filepath.Join(s.baseDir, location)
}
