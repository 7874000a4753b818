// The mdxtool command inspects and converts MDX model files.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/mdxapi/mdxfile/internal/config"
	"github.com/mdxapi/mdxfile/internal/logger"
	"go.uber.org/zap"
)

const help = `Inspects and converts MDX model files.

File arguments may be "-" to use stdin or stdout. Packed files are unpacked
automatically when read. Warnings and errors are written to stderr.`

// globals holds state shared by every command.
type globals struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	flags      config.Flags

	cfg   *config.Config
	limit uint64
}

func (g *globals) setup(*kingpin.ParseContext) error {
	cfg, loaded, err := config.Load(g.configPath, g.flags)
	if err != nil {
		return err
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, cfg.FileConfig(), g.stderr); err != nil {
		return err
	}
	if loaded != "" {
		logger.Debug("loaded config", zap.String("path", loaded))
	}
	g.cfg = cfg
	g.limit, err = cfg.UnpackLimit()
	return err
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *kingpin.Application {
	g := &globals{stdin: stdin, stdout: stdout, stderr: stderr}

	app := kingpin.New("mdxtool", help)
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)
	app.Flag("config", "Path to the config file.").StringVar(&g.configPath)
	app.Flag("debug", "Enable debug logging.").BoolVar(&g.flags.Debug)
	app.Flag("log-level", "Log level (debug, info, warn, error).").StringVar(&g.flags.LogLevel)
	app.Flag("log-file", "Also write logs to this file, rotating it as it grows.").StringVar(&g.flags.LogFile)
	app.Flag("limit", `Largest size a packed file may unpack to, such as "64 MiB".`).StringVar(&g.flags.Limit)
	app.PreAction(g.setup)

	addDumpCommand(app, g)
	addStatCommand(app, g)
	addResaveCommand(app, g)
	addVerifyCommand(app, g)
	addPackCommand(app, g)
	addUnpackCommand(app, g)
	addJSONCommand(app, g)
	addFromJSONCommand(app, g)
	addConfigCommand(app, g)
	return app
}

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	_, err := app.Parse(os.Args[1:])
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("error: %w", err))
		os.Exit(1)
	}
}
