// Package confkit holds small configuration helpers shared by the CLI and
// the dashboard server: path resolution relative to the main config file,
// typed file loading through go-zero, and split-file sections.
package confkit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeromicro/go-zero/core/conf"
)

// ResolvePath expands environment variables in file and resolves it
// against base when it is relative.
func ResolvePath(base, file string) string {
	file = os.ExpandEnv(file)
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(base, file)
}

// BaseDir returns the directory holding the main config file. Section
// files are resolved against it.
func BaseDir(mainPath string) string {
	return filepath.Dir(mainPath)
}

// LoadFile reads a config file into T via go-zero's conf loader,
// optionally substituting ${VAR} references from the environment.
func LoadFile[T any](path string, useEnv bool) (*T, error) {
	var cfg T
	var opts []conf.Option
	if useEnv {
		opts = append(opts, conf.UseEnv())
	}
	if err := conf.Load(path, &cfg, opts...); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return &cfg, nil
}

// Section points at an optional companion config file. The main config
// carries only the file name; Hydrate fills Value from it.
type Section[T any] struct {
	File  string `json:",optional"`
	Value *T     `json:"-"`
}

// Hydrate resolves File against base and loads it through loader. A
// section without a file is left empty and is not an error. On success
// File is rewritten to the resolved path.
func (s *Section[T]) Hydrate(base string, loader func(string) (*T, error)) error {
	if s.File == "" {
		return nil
	}
	path := ResolvePath(base, s.File)
	v, err := loader(path)
	if err != nil {
		return err
	}
	s.File, s.Value = path, v
	return nil
}
