package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	kong "github.com/alecthomas/kong"
	"go.uber.org/zap"

	tlq "github.com/tinylittlequeue/tlq-go"
)

type Globals struct {
	Host    string           `name:"host" env:"TLQ_HOST" help:"TLQ server hostname" default:"localhost"`
	Port    int              `name:"port" env:"TLQ_PORT" help:"TLQ server port" default:"1337"`
	Timeout time.Duration    `name:"timeout" help:"Request timeout" default:"30s"`
	Retries int              `name:"retries" env:"TLQ_MAX_RETRIES" help:"Maximum retry attempts" default:"3"`
	Debug   bool             `name:"debug" help:"Enable debug logging"`
	Version kong.VersionFlag `name:"version" help:"Print version and exit"`

	// Private fields
	ctx    context.Context
	cancel context.CancelFunc
	log    *zap.Logger
}

type CLI struct {
	Globals
	MessageCommands
	QueueCommands
}

func main() {
	cli := new(CLI)
	ctx := kong.Parse(cli,
		kong.Name("tlq"),
		kong.Description("tlq command line interface"),
		kong.Vars{
			"version": tlq.Version,
		},
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	// Create the context and cancel function
	cli.Globals.ctx, cli.Globals.cancel = signal.NotifyContext(context.Background(), os.Interrupt)
	defer cli.Globals.cancel()

	// Logging is silent unless --debug is set
	if cli.Globals.Debug {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		cli.Globals.log = log
		defer func() { _ = log.Sync() }()
	} else {
		cli.Globals.log = zap.NewNop()
	}

	// Call the Run() method of the selected parsed command.
	if err := ctx.Run(&cli.Globals); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (g *Globals) Client() (*tlq.Client, error) {
	return tlq.New(
		tlq.WithHost(g.Host),
		tlq.WithPort(g.Port),
		tlq.WithTimeout(g.Timeout),
		tlq.WithMaxRetries(g.Retries),
		tlq.WithLogger(g.log),
	)
}
