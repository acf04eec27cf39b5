package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlstyle/internal/logging"
	"github.com/yaklabco/mdlstyle/pkg/config"
	"github.com/yaklabco/mdlstyle/pkg/fsutil"
)

const defaultDebounce = 150 * time.Millisecond

type watchFlags struct {
	check    checkFlags
	debounce time.Duration
}

func newWatchCommand() *cobra.Command {
	var cfg config.Config
	flags := &watchFlags{check: checkFlags{format: "text"}}

	cmd := &cobra.Command{
		Use:   "watch [style]",
		Short: "Re-check a style file whenever it changes",
		Long: `Check a style file, then watch it and check again after every change
until interrupted with Ctrl+C.`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Style = styleArg(args)
			if cmd.Flags().Changed("unknown-rules") {
				cfg.UnknownRules = config.UnknownRulesPolicy(flags.check.unknownRules)
			}
			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			cmd.SetContext(logging.WithPrefix(ctx, "watch"))
			return runWatch(cmd, &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.check.unknownRules, "unknown-rules", "warn",
		"unknown rule policy: defer, warn, fail")
	cmd.Flags().BoolVar(&flags.check.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.check.compact, "compact", false, "print a one-line summary")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", defaultDebounce, "quiet period before re-checking")

	return cmd
}

func runWatch(cmd *cobra.Command, cliCfg *config.Config, flags *watchFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cfg, err := loadSettings(cmd, cliCfg)
	if err != nil {
		return err
	}
	// Pin the resolved path so later runs do not rediscover another file.
	cliCfg.Style = cfg.Style

	check := func() {
		err := runCheck(cmd, cliCfg, &flags.check, BuildInfo{})
		if err != nil && !errors.Is(err, ErrProblemsFound) {
			logger.Error("check failed", logging.FieldError, err)
		}
	}

	check()
	logger.Info("watching for changes", logging.FieldStyle, cfg.Style, logging.FieldDuration, flags.debounce)

	err = watchFile(ctx, cfg.Style, flags.debounce, check)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// watchFile calls onChange after path's content changes and then stays
// unchanged for the debounce period. It watches the parent directory so
// editors that replace the file are followed. It returns when ctx is done.
func watchFile(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	logger := logging.FromContext(ctx)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}

	// The last snapshot filters out events that leave the content as it was.
	_, last, err := fsutil.ReadFile(ctx, absPath)
	if err != nil && !errors.Is(err, fsutil.ErrNotFound) {
		return err
	}

	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			logger.Debug("change detected", logging.FieldPath, event.Name, "op", event.Op.String())
			timer.Reset(debounce)

		case <-timer.C:
			content, snap, err := fsutil.ReadFile(ctx, absPath)
			if err != nil {
				if errors.Is(err, fsutil.ErrNotFound) {
					logger.Warn("style file removed; waiting for it to return", logging.FieldPath, path)
					last = nil
					continue
				}
				return err
			}
			if last != nil && last.Matches(content) {
				continue
			}
			last = snap
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", logging.FieldError, err)
		}
	}
}
