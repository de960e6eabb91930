package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/viant/afs"
	"go.uber.org/zap"
)

type Service struct {
	fs          afs.Service
	logger      *zap.Logger
	matchers    *matchers
	defaultPath string
	diffBytes   int
	gitStatus   bool
	useText     bool
	root        string
	allowRemote bool
}

func NewService(cfg *Config) *Service {
	if cfg == nil {
		cfg = &Config{}
	}
	rules := cfg.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	s := &Service{
		fs:          afs.New(),
		logger:      cfg.Logger,
		matchers:    rules.compile(),
		defaultPath: strings.TrimSpace(cfg.DefaultPath),
		diffBytes:   8192,
		gitStatus:   !cfg.SkipGitStatus,
		useText:     !cfg.UseData,
		allowRemote: cfg.AllowRemote,
	}
	if root := strings.TrimSpace(cfg.Root); root != "" {
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
		if resolved, err := filepath.EvalSymlinks(root); err == nil {
			root = resolved
		}
		s.root = root
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.defaultPath == "" {
		s.defaultPath = DefaultPath
	}
	if cfg.DiffBytes > 0 {
		s.diffBytes = cfg.DiffBytes
	}
	return s
}

// DefaultPath returns the target used for an empty input path.
func (s *Service) DefaultPath() string { return s.defaultPath }

// Logger returns the service logger.
func (s *Service) Logger() *zap.Logger { return s.logger }

// UseTextField reports whether tool results should be returned as JSON text.
func (s *Service) UseTextField() bool { return s.useText }

// Patch rewrites the target in place. The file is always rewritten, even when no pass matched.
func (s *Service) Patch(ctx context.Context, in *PatchInput) (*PatchOutput, error) {
	path, location, err := s.target(in)
	if err != nil {
		return nil, err
	}
	runID := RunID(ctx)
	text, err := s.read(ctx, path, location)
	if err != nil {
		return nil, err
	}
	mode, err := s.writeMode(path, location)
	if err != nil {
		return nil, err
	}
	out, res := s.run(path, location, text)
	if err := s.fs.Upload(ctx, location, mode, strings.NewReader(res.Text)); err != nil {
		return nil, accessError("write", path, err)
	}
	s.logger.Info("patched source",
		zap.String("run", runID),
		zap.String("caller", Caller(ctx)),
		zap.String("path", path),
		zap.Bool("changed", out.Changed),
		zap.Int("includes", out.Includes),
		zap.Int("prints", out.Prints),
		zap.Int("continuations", out.Continuations),
		zap.Int("noOps", out.NoOps))
	return out, nil
}

// Preview runs the passes without writing and returns a line patch of the changes.
func (s *Service) Preview(ctx context.Context, in *PatchInput) (*PreviewOutput, error) {
	path, location, err := s.target(in)
	if err != nil {
		return nil, err
	}
	text, err := s.read(ctx, path, location)
	if err != nil {
		return nil, err
	}
	out, res := s.run(path, location, text)
	ret := &PreviewOutput{PatchOutput: *out}
	ret.Diff, ret.Truncated = linePatch(text, res.Text, s.diffBytes)
	s.logger.Debug("previewed source",
		zap.String("run", RunID(ctx)),
		zap.String("path", path),
		zap.Bool("changed", out.Changed),
		zap.Bool("truncated", ret.Truncated))
	return ret, nil
}

func (s *Service) run(path, location, text string) (*PatchOutput, *Result) {
	var status *GitStatus
	if s.gitStatus {
		status = worktreeStatus(location)
	}
	res := s.matchers.apply(text)
	return &PatchOutput{
		Path:          path,
		Changed:       res.Changed(),
		Includes:      res.Includes,
		Prints:        res.Prints,
		Continuations: res.Continuations,
		NoOps:         res.NoOps,
		LinesBefore:   lineCount(text),
		LinesAfter:    lineCount(res.Text),
		Git:           status,
	}, res
}

func (s *Service) read(ctx context.Context, path, location string) (string, error) {
	ok, err := s.fs.Exists(ctx, location)
	if err != nil {
		return "", accessError("read", path, err)
	}
	if !ok {
		return "", accessError("read", path, os.ErrNotExist)
	}
	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return "", accessError("read", path, err)
	}
	return string(data), nil
}

// writeMode fails when a local target cannot be opened for writing and returns its permission bits,
// so an upload keeps the original mode.
func (s *Service) writeMode(path, location string) (os.FileMode, error) {
	if !filepath.IsAbs(location) {
		return 0o644, nil
	}
	info, err := os.Stat(location)
	if err != nil {
		return 0, accessError("write", path, err)
	}
	f, err := os.OpenFile(location, os.O_WRONLY, 0)
	if err != nil {
		return 0, accessError("write", path, err)
	}
	_ = f.Close()
	return info.Mode().Perm(), nil
}

// target returns the caller facing path and the afs location. Local paths are made absolute
// (relative to Root when set) with symlinks resolved, so writes reach the linked file.
func (s *Service) target(in *PatchInput) (string, string, error) {
	path := ""
	if in != nil {
		path = strings.TrimSpace(in.Path)
	}
	if path == "" {
		path = s.defaultPath
	}
	if strings.Contains(path, "://") {
		if !s.allowRemote {
			return "", "", errors.Wrapf(ErrRemoteTarget, "%v", path)
		}
		return path, path, nil
	}
	location := path
	if s.root != "" && !filepath.IsAbs(location) {
		location = filepath.Join(s.root, location)
	}
	location, err := filepath.Abs(location)
	if err != nil {
		return "", "", accessError("read", path, err)
	}
	if resolved, err := filepath.EvalSymlinks(location); err == nil {
		location = resolved
	}
	if s.root != "" {
		rel, err := filepath.Rel(s.root, location)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", "", errors.Wrapf(ErrOutsideRoot, "%v", path)
		}
	}
	return path, location, nil
}
