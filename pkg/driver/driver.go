// Package driver runs whole programs through the lexer, parser, evaluator
// and C translator, one independent instance at a time.
package driver

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/rhino1998/duet/pkg/cgen"
	"github.com/rhino1998/duet/pkg/interpreter"
	"github.com/rhino1998/duet/pkg/lexer"
	"github.com/rhino1998/duet/pkg/parser"
)

type source struct {
	name string
	text string
}

// Result is the outcome of one program instance. Unit is nil when Err is set.
type Result struct {
	Name  string
	Value float64
	Err   error
	Unit  *cgen.Unit
}

type Driver struct {
	logger *slog.Logger
	Config Config

	programs []source
	console  *interpreter.StreamConsole
}

func New(logger *slog.Logger, config Config) (*Driver, error) {
	err := config.Validate(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to validate driver config: %w", err)
	}

	return &Driver{
		logger:  logger,
		Config:  config,
		console: interpreter.NewConsole(config.Stdin, config.Stdout),
	}, nil
}

// AddProgram queues one complete program text.
func (d *Driver) AddProgram(name, text string) {
	d.programs = append(d.programs, source{name: name, text: text})
}

// AddFile queues the contents of r as one program.
func (d *Driver) AddFile(name string, r io.Reader) error {
	text, err := io.ReadAll(r)
	if err != nil {
		return FileError(name, err)
	}

	d.AddProgram(name, string(text))
	return nil
}

// FileError wraps a failure to load a program source.
func FileError(name string, err error) error {
	return ProgramError{Program: name, Err: fmt.Errorf("failed to read program: %w", err)}
}

// Run parses, evaluates and translates every queued program in order. A
// fault in one program is reported to the diagnostics stream and does not
// stop the others. The C program built from the successful instances is
// written to the configured code sink. The returned error is an *ErrorSet
// of ProgramErrors, or nil.
func (d *Driver) Run(ctx context.Context) ([]Result, error) {
	errs := newErrorSet()
	results := make([]Result, 0, len(d.programs))
	units := make([]cgen.Unit, 0, len(d.programs))

	for _, prog := range d.programs {
		err := ctx.Err()
		if err != nil {
			return results, errs.Defer(err)
		}

		result := d.runProgram(prog)
		results = append(results, result)

		if result.Err != nil {
			fmt.Fprintln(d.Config.Diagnostics, result.Err)
			errs.Add(ProgramError{Program: prog.name, Err: result.Err})
			continue
		}

		units = append(units, *result.Unit)
	}

	err := cgen.WriteFile(ctx, d.logger, d.Config.Code, units)
	if err != nil {
		return results, errs.Defer(err)
	}

	return results, errs.Defer(nil)
}

func (d *Driver) runProgram(src source) Result {
	logger := d.logger.With(slog.String("program", src.name))

	result := Result{Name: src.name}

	lex := lexer.New(d.Config.LexerConfig(), src.text, func(err *lexer.Error) {
		logger.Warn("skipping illegal character", slog.Int("pos", err.Pos), slog.String("char", string(err.Char)))
		fmt.Fprintln(d.Config.Diagnostics, err)
	})

	prog, err := parser.New(lex).Parse()
	if err != nil {
		result.Err = err
		return result
	}

	logger.Debug("parsed program", slog.Int("statements", len(prog.Block.Statements)))

	env := interpreter.NewEnvironment()
	result.Value, err = interpreter.New(logger, env, d.console).Execute(prog)
	if err != nil {
		result.Err = err
		return result
	}

	unit := cgen.NewUnit(prog, env)
	result.Unit = &unit

	return result
}

// Units returns the translations of the successful results, in order.
func Units(results []Result) []cgen.Unit {
	var units []cgen.Unit
	for _, result := range results {
		if result.Unit != nil {
			units = append(units, *result.Unit)
		}
	}
	return units
}
