package catalogsource

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type localConfig struct {
	Dir string `json:"dir"`
}

type localSource struct {
	dir string
}

func init() {
	Register("local", createLocalSource)
}

func createLocalSource(args interface{}) (Source, error) {
	config := &localConfig{}
	if err := decodeConfig(args, config); err != nil {
		return nil, err
	}
	if config.Dir == "" {
		return nil, fmt.Errorf("local source dir is required")
	}
	return &localSource{dir: config.Dir}, nil
}

func (s *localSource) Type() string {
	return "local"
}

func (s *localSource) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	_ = ctx
	if !validKey(key) || strings.Contains(key, "\\") {
		return nil, fmt.Errorf("invalid catalog key: %q", key)
	}
	return os.Open(filepath.Join(s.dir, filepath.FromSlash(key)))
}
