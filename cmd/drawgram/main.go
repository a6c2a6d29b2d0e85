package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/drawgram/annotate"
	"github.com/revelaction/drawgram/config"
	"github.com/revelaction/drawgram/diagram"
	"github.com/revelaction/drawgram/fallback"
	"github.com/revelaction/drawgram/lexicon"
	"github.com/revelaction/drawgram/parser"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "drawgram: %v\n", err)
}

func newApp(ui UI) *cli.App {
	return &cli.App{
		Name:      "drawgram",
		Usage:     "draw sentence diagrams from dependency parses",
		Version:   BuildTag,
		Writer:    ui.Out,
		ErrWriter: ui.Err,
		// errors are printed by main
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file `PATH` (default: ./drawgram.yaml)",
			},
			&cli.StringFlag{
				Name:  "doc-path",
				Usage: "parsed documents: a directory of JSON files or a SQLite file",
			},
		},
		Commands: []*cli.Command{
			diagramCommand(ui),
			sentenceCommand(ui),
			docCommand(ui),
			lsDocCommand(ui),
			importDocCommand(ui),
			statCommand(ui),
			replCommand(ui),
			versionCommand(ui),
		},
	}
}

// env is what every command needs, built from the configuration.
type env struct {
	cfg     config.Config
	logger  zerolog.Logger
	lexicon *lexicon.Lexicon
	pool    *Pool
}

func setup(c *cli.Context, ui UI) (*env, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if p := c.String("doc-path"); p != "" {
		cfg.DocPath = p
	}

	logger, err := config.Logger(cfg.LogLevel, ui.Err)
	if err != nil {
		return nil, err
	}
	log.Logger = logger

	lx, err := lexicon.Load(cfg.LexiconPath)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", cfg.LexiconPath, err)
	}

	return &env{
		cfg:     cfg,
		logger:  logger,
		lexicon: lx,
		pool:    &Pool{},
	}, nil
}

func (e *env) Close() error {
	return e.pool.Close()
}

func (e *env) pipeline() *annotate.Pipeline {
	return annotate.New(e.lexicon, e.logger.With().Str("component", "annotate").Logger())
}

// service builds the diagram service. The language model is only set up
// when the fallback is enabled.
func (e *env) service(ctx context.Context, force bool) (*diagram.Service, error) {
	svc := &diagram.Service{
		Parser:   parser.NewClient(e.cfg.Parser.URL, e.cfg.Parser.Timeout, e.logger.With().Str("component", "parser").Logger()),
		Pipeline: e.pipeline(),
		Force:    force || e.cfg.Fallback.Force,
		Logger:   e.logger,
	}

	if !e.cfg.Fallback.Enabled {
		if svc.Force {
			e.logger.Warn().Msg("fallback forced but not enabled, ignored")
		}
		return svc, nil
	}

	g, err := fallback.NewGenAIGenerator(ctx, e.cfg.Fallback.APIKey, e.cfg.Fallback.Model)
	if err != nil {
		return nil, err
	}

	svc.Fallback = fallback.New(g, e.logger.With().Str("component", "fallback").Str("model", g.Name()).Logger())
	return svc, nil
}
