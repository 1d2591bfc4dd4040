package devserver

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

var ErrNoBundlerCommand = errors.New("devserver: no bundler command configured")

// Bundler runs an external asset bundler command (esbuild, vite build,
// tailwindcss) whenever source files change.
type Bundler struct {
	command string
	dir     string
	env     []string
	timeout time.Duration
	log     *slog.Logger
}

// BundlerOption configures a Bundler.
type BundlerOption func(*Bundler)

// WithBundlerDir sets the working directory for the command.
func WithBundlerDir(dir string) BundlerOption {
	return func(b *Bundler) {
		b.dir = dir
	}
}

// WithBundlerEnv appends environment variables in KEY=VALUE form.
func WithBundlerEnv(env ...string) BundlerOption {
	return func(b *Bundler) {
		b.env = append(b.env, env...)
	}
}

// WithBundlerTimeout bounds a single bundler run. Default is one minute.
func WithBundlerTimeout(d time.Duration) BundlerOption {
	return func(b *Bundler) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithBundlerLogger sets the logger.
func WithBundlerLogger(log *slog.Logger) BundlerOption {
	return func(b *Bundler) {
		if log != nil {
			b.log = log
		}
	}
}

// NewBundler creates a bundler runner. The command is split on whitespace,
// the first token being the executable.
func NewBundler(command string, opts ...BundlerOption) (*Bundler, error) {
	if strings.TrimSpace(command) == "" {
		return nil, ErrNoBundlerCommand
	}

	b := &Bundler{
		command: command,
		timeout: time.Minute,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Run executes one bundler pass. Command output goes to the process
// stdout/stderr so bundler diagnostics reach the developer unchanged.
func (b *Bundler) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	parts := strings.Fields(b.command)
	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	cmd.Dir = b.dir
	cmd.Env = append(os.Environ(), b.env...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	start := time.Now()
	err := cmd.Run()
	if err != nil {
		b.log.Warn("bundler run failed",
			slog.String("command", b.command),
			slog.String("error", err.Error()),
		)
		return err
	}

	b.log.Info("bundler run finished",
		slog.String("command", b.command),
		slog.Duration("took", time.Since(start)),
	)
	return nil
}
