package main

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/mdxapi/mdxfile"
	"github.com/mdxapi/mdxfile/errors"
	"github.com/mdxapi/mdxfile/internal/logger"
	"github.com/mdxapi/mdxfile/mdx"
	"go.uber.org/zap"
)

// ErrMismatch indicates that a file does not encode back to its own bytes.
var ErrMismatch = errors.New("re-encoded data differs")

// verifyCommand checks that files decode, and that they encode back to the
// same bytes.
type verifyCommand struct {
	g      *globals
	files  []string
	strict bool
}

// verify checks the file at path.
func (cmd *verifyCommand) verify(path string) error {
	data, _, err := cmd.g.readData(path)
	if err != nil {
		return err
	}
	m, warn, err := mdx.Decoder{Logger: logger.Log}.Decode(data)
	cmd.g.warn(path, warn)
	if err != nil {
		return errors.FileError{Path: path, Cause: err}
	}
	if warn != nil && cmd.strict {
		return errors.FileError{Path: path, Cause: warn}
	}
	out, err := mdx.Serialize(m)
	if err != nil {
		return errors.FileError{Path: path, Cause: err}
	}
	if !bytes.Equal(data, out) {
		return errors.FileError{Path: path, Cause: fmt.Errorf("%w: %s", ErrMismatch, firstDifference(data, out))}
	}
	logger.Debug("verified", zap.String("path", path), zap.Stringer("digest", mdxfile.Digest(data)))
	return nil
}

// firstDifference describes where a and b first differ.
func firstDifference(a, b []byte) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return fmt.Sprintf("first difference at offset %d", i)
		}
	}
	return fmt.Sprintf("length %d, re-encoded length %d", len(a), len(b))
}

func (cmd *verifyCommand) run(*kingpin.ParseContext) error {
	var errs errors.Errors
	for _, path := range cmd.files {
		if err := cmd.verify(path); err != nil {
			errs = errs.Append(err)
			continue
		}
		fmt.Fprintf(cmd.g.stdout, "%s: ok\n", path)
	}
	if len(errs) > 0 {
		logger.Error("verification failed", zap.Int("failed", len(errs)), zap.Int("files", len(cmd.files)))
	}
	return errs.Return()
}

func addVerifyCommand(app *kingpin.Application, g *globals) {
	cmd := &verifyCommand{g: g}
	c := app.Command("verify", "Check that files decode and encode back to the same bytes.").Action(cmd.run)
	c.Flag("strict", "Treat warnings as failures.").BoolVar(&cmd.strict)
	c.Arg("files", "The files to verify.").Required().StringsVar(&cmd.files)
}
