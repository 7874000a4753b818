package main

import (
	"bytes"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/mdxapi/mdxfile"
	"github.com/mdxapi/mdxfile/errors"
	"github.com/mdxapi/mdxfile/internal/config"
	"github.com/mdxapi/mdxfile/internal/logger"
	mdxjson "github.com/mdxapi/mdxfile/json"
	"github.com/mdxapi/mdxfile/mdx"
	"go.uber.org/zap"
)

// codecFlag resolves the value of a --codec flag. An empty value selects def.
func codecFlag(s string, def mdxfile.Codec) (mdxfile.Codec, error) {
	if s == "" {
		return def, nil
	}
	return mdxfile.ParseCodec(s)
}

////////////////////////////////////////////////////////////////

// dumpCommand writes a readable description of the chunks of a file.
type dumpCommand struct {
	g      *globals
	input  string
	output string
}

func (cmd *dumpCommand) run(*kingpin.ParseContext) error {
	data, _, err := cmd.g.readData(cmd.input)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	warn, err := mdx.Decoder{Logger: logger.Log}.Dump(&buf, data)
	cmd.g.warn(cmd.input, warn)
	if err != nil {
		return errors.FileError{Path: cmd.input, Cause: err}
	}
	return cmd.g.writeFile(cmd.output, buf.Bytes())
}

func addDumpCommand(app *kingpin.Application, g *globals) {
	cmd := &dumpCommand{g: g}
	c := app.Command("dump", "Describe each chunk of a file in file order.").Action(cmd.run)
	c.Arg("input", "The file to dump.").Required().StringVar(&cmd.input)
	c.Arg("output", "Where to write the dump.").Default("-").StringVar(&cmd.output)
}

////////////////////////////////////////////////////////////////

// resaveCommand decodes a file and encodes it again, recomputing every size.
type resaveCommand struct {
	g      *globals
	input  string
	output string
	codec  string
}

func (cmd *resaveCommand) run(*kingpin.ParseContext) error {
	codec, err := codecFlag(cmd.codec, mdxfile.CodecNone)
	if err != nil {
		return err
	}
	data, _, err := cmd.g.readData(cmd.input)
	if err != nil {
		return err
	}
	m, warn, err := mdx.Decoder{Logger: logger.Log}.Decode(data)
	cmd.g.warn(cmd.input, warn)
	if err != nil {
		return errors.FileError{Path: cmd.input, Cause: err}
	}
	out, err := cmd.g.encodeModel(cmd.output, m, codec)
	if err != nil {
		return err
	}
	if codec == mdxfile.CodecNone && !bytes.Equal(data, out) {
		logger.Info("content changed",
			zap.String("input", cmd.input),
			zap.Stringer("before", mdxfile.Digest(data)),
			zap.Stringer("after", mdxfile.Digest(out)),
		)
	}
	return cmd.g.writeFile(cmd.output, out)
}

func addResaveCommand(app *kingpin.Application, g *globals) {
	cmd := &resaveCommand{g: g}
	c := app.Command("resave", "Decode a file and encode it again.").Action(cmd.run)
	c.Flag("codec", "Pack the output with this codec (none, lz4, zstd, brotli).").StringVar(&cmd.codec)
	c.Arg("input", "The file to read.").Required().StringVar(&cmd.input)
	c.Arg("output", "The file to write.").Default("-").StringVar(&cmd.output)
}

////////////////////////////////////////////////////////////////

// packCommand wraps an MDX file in a packed envelope.
type packCommand struct {
	g      *globals
	input  string
	output string
	codec  string
}

func (cmd *packCommand) run(*kingpin.ParseContext) error {
	codec, err := codecFlag(cmd.codec, cmd.g.cfg.Pack.Codec)
	if err != nil {
		return err
	}
	data, _, err := cmd.g.readData(cmd.input)
	if err != nil {
		return err
	}
	// Only valid models are packed.
	_, warn, err := mdx.Decoder{}.Decode(data)
	cmd.g.warn(cmd.input, warn)
	if err != nil {
		return errors.FileError{Path: cmd.input, Cause: err}
	}
	out, err := mdxfile.Pack(data, codec)
	if err != nil {
		return err
	}
	logger.Info("packed",
		zap.String("input", cmd.input),
		zap.Stringer("codec", codec),
		zap.String("size", humanize.IBytes(uint64(len(data)))),
		zap.String("packed", humanize.IBytes(uint64(len(out)))),
	)
	return cmd.g.writeFile(cmd.output, out)
}

func addPackCommand(app *kingpin.Application, g *globals) {
	cmd := &packCommand{g: g}
	c := app.Command("pack", "Compress a file into a packed envelope.").Action(cmd.run)
	c.Flag("codec", "Codec to pack with. Defaults to the configured codec.").StringVar(&cmd.codec)
	c.Arg("input", "The file to pack.").Required().StringVar(&cmd.input)
	c.Arg("output", "The file to write.").Default("-").StringVar(&cmd.output)
}

////////////////////////////////////////////////////////////////

// unpackCommand extracts the MDX data of a packed file.
type unpackCommand struct {
	g      *globals
	input  string
	output string
}

func (cmd *unpackCommand) run(*kingpin.ParseContext) error {
	data, raw, err := cmd.g.readData(cmd.input)
	if err != nil {
		return err
	}
	if !mdxfile.IsPacked(raw) {
		return errors.FileError{Path: cmd.input, Cause: mdxfile.ErrNotPacked}
	}
	return cmd.g.writeFile(cmd.output, data)
}

func addUnpackCommand(app *kingpin.Application, g *globals) {
	cmd := &unpackCommand{g: g}
	c := app.Command("unpack", "Extract the MDX data of a packed file.").Action(cmd.run)
	c.Arg("input", "The file to unpack.").Required().StringVar(&cmd.input)
	c.Arg("output", "The file to write.").Default("-").StringVar(&cmd.output)
}

////////////////////////////////////////////////////////////////

// jsonCommand converts a file to JSON.
type jsonCommand struct {
	g       *globals
	input   string
	output  string
	compact bool
}

func (cmd *jsonCommand) run(*kingpin.ParseContext) error {
	m, err := cmd.g.readModel(cmd.input)
	if err != nil {
		return err
	}
	var b []byte
	if cmd.compact {
		b, err = mdxjson.Encode(m)
	} else {
		b, err = mdxjson.EncodeIndent(m, mdxjson.Indent)
	}
	if err != nil {
		return err
	}
	return cmd.g.writeFile(cmd.output, append(b, '\n'))
}

func addJSONCommand(app *kingpin.Application, g *globals) {
	cmd := &jsonCommand{g: g}
	c := app.Command("json", "Convert a file to JSON.").Action(cmd.run)
	c.Flag("compact", "Write JSON without indentation.").BoolVar(&cmd.compact)
	c.Arg("input", "The file to convert.").Required().StringVar(&cmd.input)
	c.Arg("output", "The file to write.").Default("-").StringVar(&cmd.output)
}

// fromJSONCommand converts JSON produced by the json command to a file.
type fromJSONCommand struct {
	g      *globals
	input  string
	output string
	codec  string
}

func (cmd *fromJSONCommand) run(*kingpin.ParseContext) error {
	codec, err := codecFlag(cmd.codec, mdxfile.CodecNone)
	if err != nil {
		return err
	}
	b, err := cmd.g.readFile(cmd.input)
	if err != nil {
		return err
	}
	m, err := mdxjson.Decode(b)
	if err != nil {
		return errors.FileError{Path: cmd.input, Cause: err}
	}
	out, err := cmd.g.encodeModel(cmd.output, m, codec)
	if err != nil {
		return err
	}
	return cmd.g.writeFile(cmd.output, out)
}

func addFromJSONCommand(app *kingpin.Application, g *globals) {
	cmd := &fromJSONCommand{g: g}
	c := app.Command("fromjson", "Convert JSON to a file.").Action(cmd.run)
	c.Flag("codec", "Pack the output with this codec (none, lz4, zstd, brotli).").StringVar(&cmd.codec)
	c.Arg("input", "The JSON file to convert.").Required().StringVar(&cmd.input)
	c.Arg("output", "The file to write.").Default("-").StringVar(&cmd.output)
}

////////////////////////////////////////////////////////////////

// configCommand shows or writes the configuration.
type configCommand struct {
	g    *globals
	path string
}

func (cmd *configCommand) show(*kingpin.ParseContext) error {
	b, err := cmd.g.cfg.Marshal()
	if err != nil {
		return err
	}
	return cmd.g.writeFile("-", b)
}

func (cmd *configCommand) write(*kingpin.ParseContext) error {
	cfg := config.Default()
	if cmd.path != "" {
		return cfg.SaveTo(cmd.path)
	}
	path, err := cfg.Save()
	if err != nil {
		return err
	}
	logger.Info("wrote config", zap.String("path", path))
	return nil
}

func addConfigCommand(app *kingpin.Application, g *globals) {
	cmd := &configCommand{g: g}
	c := app.Command("config", "Manage the configuration.")
	c.Command("show", "Print the effective configuration.").Action(cmd.show)
	w := c.Command("init", "Write a default configuration file.").Action(cmd.write)
	w.Arg("path", "Where to write the file. Defaults to the config directory.").StringVar(&cmd.path)
}
