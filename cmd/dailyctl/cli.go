package main

import (
	"context"
	"encoding/json"
	"io"
	"sort"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/pflag"

	daily "github.com/imtaco/dailyco-go"
	"github.com/imtaco/dailyco-go/internal/errors"
	"github.com/imtaco/dailyco-go/internal/log"
	"github.com/imtaco/dailyco-go/internal/retry"
)

var errUsage = errors.PureNew("usage")

type command func(c *cli, ctx context.Context, args []string) error

var commands = map[string]command{
	"rooms create":      (*cli).roomsCreate,
	"rooms get":         (*cli).roomsGet,
	"rooms list":        (*cli).roomsList,
	"rooms delete":      (*cli).roomsDelete,
	"tokens create":     (*cli).tokensCreate,
	"tokens sign":       (*cli).tokensSign,
	"tokens inspect":    (*cli).tokensInspect,
	"recordings list":   (*cli).recordingsList,
	"recordings get":    (*cli).recordingsGet,
	"recordings delete": (*cli).recordingsDelete,
	"recordings link":   (*cli).recordingsLink,
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type cli struct {
	cfg    *Config
	logger *log.Logger
	out    io.Writer
	clock  clockwork.Clock
	retry  retry.Retry

	// newDoer builds the API client on first use, so offline commands work
	// without an API key.
	newDoer func() (daily.Doer, error)
	doer    daily.Doer
}

func newCLI(cfg *Config, logger *log.Logger, out io.Writer) *cli {
	return &cli{
		cfg:    cfg,
		logger: logger,
		out:    out,
		clock:  clockwork.NewRealClock(),
		retry: retry.NewFromConfig(logger.Module("Retry"), &cfg.Retry,
			retry.WithRetryable(daily.Retryable)),
		newDoer: func() (daily.Doer, error) {
			return daily.New(cfg.Daily, daily.WithLogger(logger))
		},
	}
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	cmd, ok := commands[args[0]+" "+args[1]]
	if !ok {
		return errUsage
	}
	return cmd(c, ctx, args[2:])
}

func (c *cli) client() (daily.Doer, error) {
	if c.doer == nil {
		d, err := c.newDoer()
		if err != nil {
			return nil, err
		}
		c.doer = d
	}
	return c.doer, nil
}

// call runs op with the configured retry policy.
func (c *cli) call(ctx context.Context, op func(d daily.Doer) error) error {
	d, err := c.client()
	if err != nil {
		return err
	}
	return c.retry.Do(ctx, func() error { return op(d) })
}

func (c *cli) print(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newCommandFlags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parse parses flags and checks the positional argument count.
func parse(fs *pflag.FlagSet, args []string, minArgs int, usage string) error {
	if err := fs.Parse(args); err != nil {
		return errors.Wrapf(daily.ErrValidation, err, "%s", fs.Name())
	}
	if fs.NArg() < minArgs {
		return errors.Newf(daily.ErrValidation, "usage: dailyctl %s %s", fs.Name(), usage)
	}
	return nil
}

// ifChanged calls set only for flags given on the command line, so unset
// options stay out of the request.
func ifChanged(fs *pflag.FlagSet, name string, set func()) {
	if fs.Changed(name) {
		set()
	}
}
