package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"
	slogctx "github.com/veqryn/slog-context"

	"github.com/liftlog/liftlog-go/client/auth/store"
	"github.com/liftlog/liftlog-go/session"
)

// Run parses arguments, assembles a session backed by the file credential
// store and dispatches the requested action.
func Run(args []string) error {
	options := &Options{}
	if _, err := flags.ParseArgs(options, args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if options.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slogctx.NewHandler(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}), nil))
	slog.SetDefault(logger)
	ctx := slogctx.NewCtx(context.Background(), logger)

	cfg, err := LoadConfig(options.ConfigPath)
	if err != nil {
		return err
	}
	if options.BaseURL != "" {
		cfg.BaseURL = options.BaseURL
	}

	sess, err := session.New(cfg.BaseURL,
		session.WithStore(store.NewFileStore(cfg.CredentialsFile)))
	if err != nil {
		return err
	}
	app := &App{session: sess, options: options, out: os.Stdout}
	return app.Dispatch(ctx, options.Args.Action)
}
