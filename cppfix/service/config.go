package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/viant/afs"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the target used when no path is given.
const DefaultPath = "src/GeodesicLine3.cpp"

type Config struct {
	// DefaultPath replaces DefaultPath for callers that omit a path.
	DefaultPath string `json:"defaultPath,omitempty" yaml:"defaultPath,omitempty"`
	Rules       *Rules `json:"rules,omitempty" yaml:"rules,omitempty"`
	// DiffBytes caps preview patch size (default 8192).
	DiffBytes int `json:"diffBytes,omitempty" yaml:"diffBytes,omitempty"`
	// SkipGitStatus disables worktree inspection of local targets.
	SkipGitStatus bool `json:"skipGitStatus,omitempty" yaml:"skipGitStatus,omitempty"`
	// Root confines targets; relative paths resolve against it and escapes are rejected.
	Root string `json:"root,omitempty" yaml:"root,omitempty"`
	// AllowRemote permits afs URLs (mem://, gs://...) as targets.
	AllowRemote bool `json:"allowRemote,omitempty" yaml:"allowRemote,omitempty"`
	// If true, return tool results in the `data` field instead of `text`.
	UseData bool `json:"useData,omitempty" yaml:"useData,omitempty"`

	Logger *zap.Logger `json:"-" yaml:"-"`
}

// LoadConfig reads a YAML config from any afs supported URL (file path, mem://, gs://...).
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config %v", URL)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "invalid config %v", URL)
	}
	return cfg, nil
}
