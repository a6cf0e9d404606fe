// Package cli is the inkwell command line client. It drives a single-client
// store whose session is kept in the configured KV between invocations.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/baharkarakas/inkwell/internal/app"
	"github.com/baharkarakas/inkwell/internal/apperr"
	"github.com/baharkarakas/inkwell/internal/config"
	"github.com/baharkarakas/inkwell/internal/logger"
	"github.com/baharkarakas/inkwell/internal/store"
)

type session struct {
	cfg   config.Config
	app   *app.App
	store *store.Store
	stop  func()
	in    *bufio.Reader

	verbose bool
}

// Execute runs one inkwell invocation and releases storage afterwards.
func Execute(ctx context.Context, cfg config.Config, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	root, s := newRootCmd(cfg)
	defer s.close()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func newRootCmd(cfg config.Config) (*cobra.Command, *session) {
	s := &session{cfg: cfg}

	root := &cobra.Command{
		Use:           "inkwell",
		Short:         "Write and browse blog posts from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.open(cmd)
		},
	}
	root.PersistentFlags().StringVar(&s.cfg.StorageDriver, "storage", cfg.StorageDriver, "storage driver: memory|sqlite|postgres")
	root.PersistentFlags().StringVar(&s.cfg.SQLitePath, "db", cfg.SQLitePath, "sqlite database file")
	root.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "log actions to stderr")

	root.AddCommand(
		loginCmd(s),
		registerCmd(s),
		logoutCmd(s),
		whoamiCmd(s),
		postsCmd(s),
	)
	return root, s
}

func (s *session) open(cmd *cobra.Command) error {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if s.verbose {
		log = logger.NewWithWriter(s.cfg.Env, cmd.ErrOrStderr())
	}
	a, err := app.New(cmd.Context(), s.cfg, log)
	if err != nil {
		return err
	}
	st, stop, err := a.NewStore(cmd.Context())
	if err != nil {
		a.Close()
		return err
	}
	s.app, s.store, s.stop = a, st, stop
	s.in = bufio.NewReader(cmd.InOrStdin())
	return nil
}

func (s *session) close() {
	if s.stop != nil {
		s.stop()
	}
	if s.app != nil {
		s.app.Close()
	}
	s.app, s.store, s.stop = nil, nil, nil
}

func (s *session) requireLogin() error {
	if !s.store.IsAuthenticated() {
		return fmt.Errorf("%w: run `inkwell login` first", apperr.ErrNotAuthenticated)
	}
	return nil
}
