// Package registry maps configured sensor names to their logs. A Registry is
// built once at startup and never changes afterwards.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sensorlog-service/internal/domain"
	"sensorlog-service/internal/infrastructure/repository/filelog"
	"sensorlog-service/internal/logging"
)

type Registry struct {
	root string
	logs map[string]*filelog.Log
}

// Open creates the root directory if needed and binds one Log per distinct
// sensor name. Any failure here is fatal for startup.
func Open(root string, names []string, logger *logging.Logger, opts ...filelog.Option) (*Registry, error) {
	if strings.TrimSpace(root) == "" {
		root = "."
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create log root %s: %w", root, err)
	}

	if logger != nil {
		opts = append([]filelog.Option{filelog.WithLogger(logger)}, opts...)
	}

	r := &Registry{root: root, logs: make(map[string]*filelog.Log, len(names))}
	files := make(map[string]string, len(names))

	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, ok := r.logs[name]; ok {
			continue
		}
		if err := validateName(name); err != nil {
			return nil, err
		}

		file := filelog.FileName(name)
		if other, ok := files[file]; ok {
			return nil, fmt.Errorf("sensors %q and %q would share log file %s", other, name, file)
		}
		files[file] = name

		l, err := filelog.New(name, root, opts...)
		if err != nil {
			return nil, err
		}
		r.logs[name] = l
	}

	logger.Info("registry opened", "root", root, "sensors", len(r.logs))
	return r, nil
}

func validateName(name string) error {
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, filepath.Separator) {
		return fmt.Errorf("invalid sensor name %q", name)
	}
	return nil
}

// Lookup returns the log for a configured sensor or an error wrapping
// domain.ErrNotFound.
func (r *Registry) Lookup(name string) (domain.ReadingLog, error) {
	l, ok := r.logs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrNotFound, name)
	}
	return l, nil
}

// Names returns the configured sensor names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.logs))
	for name := range r.logs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Root() string {
	return r.root
}

var _ domain.LogDirectory = (*Registry)(nil)
