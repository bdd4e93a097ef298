package cgen

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/template"

	"github.com/rhino1998/duet/pkg/interpreter"
	"github.com/rhino1998/duet/pkg/parser"
)

//go:embed main.c.tmpl
var tmplText string

var tmpl = template.Must(template.New("main.c.tmpl").Parse(tmplText))

// Unit is the translation of one evaluated program.
type Unit struct {
	Code string

	env       *interpreter.Environment
	variables []string
}

// NewUnit translates prog. env must be the environment prog was evaluated
// against; its final values seed the C declarations.
func NewUnit(prog *parser.Program, env *interpreter.Environment) Unit {
	return Unit{
		Code:      Code(prog),
		env:       env,
		variables: parser.Variables(prog),
	}
}

type cContext struct {
	Declarations string
	Units        []Unit
}

// Declarations merges the environments of units, later units winning, and
// renders the C declaration block.
func Declarations(units []Unit) string {
	merged := interpreter.NewEnvironment()
	var referenced []string
	for _, unit := range units {
		for _, name := range unit.env.Names() {
			val, _ := unit.env.Lookup(name)
			merged.Put(name, val)
		}
		referenced = append(referenced, unit.variables...)
	}

	return merged.Declarations(referenced...)
}

// Render writes a complete C program made of units, in order.
func Render(w io.Writer, units []Unit) error {
	return tmpl.Execute(w, &cContext{
		Declarations: Declarations(units),
		Units:        units,
	})
}

// WriteFile renders units to sink + ".c". It does nothing when sink is empty.
func WriteFile(ctx context.Context, logger *slog.Logger, sink string, units []Unit) error {
	if sink == "" {
		return nil
	}

	filename := sink + ".c"
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create code file: %w", err)
	}
	defer f.Close()

	err = Render(f, units)
	if err != nil {
		return fmt.Errorf("failed to render code file %q: %w", filename, err)
	}

	logger.DebugContext(ctx, "wrote code",
		slog.String("file", filename),
		slog.Int("units", len(units)),
	)

	return f.Close()
}
