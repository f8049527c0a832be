package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// DirProvider loads YAML catalog documents from a directory and its
// immediate subdirectories. Files that fail to read or parse are skipped.
type DirProvider struct {
	Dir string
	Log *zap.Logger
}

// NewDirProvider creates a DirProvider rooted at dir.
func NewDirProvider(dir string, log *zap.Logger) *DirProvider {
	if log == nil {
		log = zap.NewNop()
	}
	return &DirProvider{Dir: dir, Log: log}
}

func (p *DirProvider) Assessments(ctx context.Context) ([]Assessment, error) {
	files, err := p.files()
	if err != nil {
		return nil, err
	}

	var out []Assessment
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(f)
		if err != nil {
			p.Log.Warn("skipping catalog file", zap.String("file", f), zap.Error(err))
			continue
		}
		as, err := DecodeYAML(data)
		if err != nil {
			p.Log.Warn("skipping catalog file", zap.String("file", f), zap.Error(err))
			continue
		}
		p.Log.Debug("loaded catalog file", zap.String("file", f), zap.Int("assessments", len(as)))
		out = append(out, as...)
	}
	return out, nil
}

func (p *DirProvider) files() ([]string, error) {
	entries, err := os.ReadDir(p.Dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		path := filepath.Join(p.Dir, e.Name())
		if !e.IsDir() {
			if isYAML(e.Name()) {
				files = append(files, path)
			}
			continue
		}
		sub, err := os.ReadDir(path)
		if err != nil {
			p.Log.Warn("skipping catalog subdirectory", zap.String("dir", path), zap.Error(err))
			continue
		}
		for _, s := range sub {
			if !s.IsDir() && isYAML(s.Name()) {
				files = append(files, filepath.Join(path, s.Name()))
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
