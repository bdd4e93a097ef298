package driver_test

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/rhino1998/duet/pkg/driver"
	"github.com/rhino1998/duet/pkg/interpreter"
	"github.com/rhino1998/duet/pkg/parser"
	"github.com/stretchr/testify/require"
)

type golden struct {
	name     string
	source   string
	expected string
	stdin    string
}

func loadGoldens(t *testing.T) []golden {
	t.Helper()

	dir := os.DirFS("./testdata/")
	testFiles, err := fs.Glob(dir, "*.txt")
	if err != nil {
		t.Fatal(err)
	}

	var goldens []golden
	for _, testFile := range testFiles {
		testData, err := fs.ReadFile(dir, testFile)
		if err != nil {
			t.Fatal(err)
		}

		parts := bytes.SplitN(testData, []byte("\n---\n"), 3)
		g := golden{
			name:     strings.Split(testFile, ".")[0],
			source:   string(bytes.TrimSpace(parts[0])),
			expected: strings.TrimSpace(string(parts[1])),
		}
		if len(parts) == 3 {
			g.stdin = string(parts[2])
		}

		goldens = append(goldens, g)
	}

	return goldens
}

func TestDriver(t *testing.T) {
	ctx := context.Background()
	t.Parallel()

	for _, g := range loadGoldens(t) {
		t.Run(g.name, func(t *testing.T) {
			r := require.New(t)

			var stdout, diag bytes.Buffer
			d, err := driver.New(slogt.New(t), driver.Config{
				Stdin:       strings.NewReader(g.stdin),
				Stdout:      &stdout,
				Diagnostics: &diag,
			})
			r.NoError(err)

			d.AddProgram(g.name, g.source)

			results, err := d.Run(ctx)
			r.NoError(err)
			r.Len(results, 1)
			r.NotNil(results[0].Unit)
			r.Empty(diag.String())
			r.Equal(g.expected, strings.TrimSpace(stdout.String()))
		})
	}
}

func TestDriver_IndependentPrograms(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	var stdout, diag bytes.Buffer
	d, err := driver.New(slogt.New(t), driver.Config{
		Stdin:       strings.NewReader(""),
		Stdout:      &stdout,
		Diagnostics: &diag,
	})
	r.NoError(err)

	d.AddProgram("first", "x = 1;")
	d.AddProgram("second", "wr x;")
	d.AddProgram("third", "wr 1 +;")
	d.AddProgram("fourth", "x = 2; wr x * 3;")

	results, err := d.Run(ctx)
	r.Error(err)
	r.Len(results, 4)

	r.NoError(results[0].Err)
	r.Equal(1.0, results[0].Value)

	var evalErr *interpreter.EvalError
	r.True(errors.As(results[1].Err, &evalErr))
	r.Equal(3, evalErr.Pos)
	r.Nil(results[1].Unit)

	var syntaxErr *parser.SyntaxError
	r.True(errors.As(results[2].Err, &syntaxErr))
	r.Equal(6, syntaxErr.Pos)

	r.NoError(results[3].Err)
	r.Equal(6.0, results[3].Value)

	r.Equal("1\n2\n6\n", stdout.String())
	r.Equal(
		"eval error, pos=3, undefined variable: x\nsyntax error, pos=6, expected=num, found=;\n",
		diag.String(),
	)

	var set *driver.ErrorSet
	r.True(errors.As(err, &set))
	r.Len(set.Errs, 2)

	var progErr driver.ProgramError
	r.True(errors.As(set.Errs[0], &progErr))
	r.Equal("second", progErr.Program)

	r.Len(driver.Units(results), 2)
}

func TestDriver_LexErrorsAreReported(t *testing.T) {
	r := require.New(t)

	var stdout, diag bytes.Buffer
	d, err := driver.New(slogt.New(t), driver.Config{
		Stdin:       strings.NewReader(""),
		Stdout:      &stdout,
		Diagnostics: &diag,
	})
	r.NoError(err)

	d.AddProgram("lex", "wr 1 $+ 2;")

	results, err := d.Run(context.Background())
	r.NoError(err)
	r.Equal(3.0, results[0].Value)
	r.Equal("3\n", stdout.String())
	r.Equal("lex error, pos=5, illegal character '$'\n", diag.String())
}

func TestDriver_CodeSink(t *testing.T) {
	r := require.New(t)

	sink := filepath.Join(t.TempDir(), "out")

	var stdout bytes.Buffer
	d, err := driver.New(slogt.New(t), driver.Config{
		Code:        sink,
		Stdin:       strings.NewReader(""),
		Stdout:      &stdout,
		Diagnostics: &bytes.Buffer{},
	})
	r.NoError(err)

	r.NoError(d.AddFile("prog", strings.NewReader("x = 4; wr x / 8;")))
	d.AddProgram("broken", "wr y;")

	_, err = d.Run(context.Background())
	r.Error(err)

	code, err := os.ReadFile(sink + ".c")
	r.NoError(err)
	r.Contains(string(code), "double x;\nx = 4.0;\n")
	r.Contains(string(code), "duet_wr(x / 8.0);\n")
	r.NotContains(string(code), "duet_wr(y);")
}

func TestDriver_Canceled(t *testing.T) {
	r := require.New(t)

	d, err := driver.New(slogt.New(t), driver.Config{
		Stdin:       strings.NewReader(""),
		Stdout:      &bytes.Buffer{},
		Diagnostics: &bytes.Buffer{},
	})
	r.NoError(err)
	d.AddProgram("never", "wr 1;")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := d.Run(ctx)
	r.ErrorIs(err, context.Canceled)
	r.Empty(results)
}

func TestLoadConfig(t *testing.T) {
	r := require.New(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "duet.yaml")
	r.NoError(os.WriteFile(path, []byte("code: build/prog\ndebug: true\nlog_format: json\nkeywords: [rd, wr]\n"), 0o644))

	config, err := driver.LoadConfig(path)
	r.NoError(err)
	r.Equal("build/prog", config.Code)
	r.True(config.Debug)
	r.Equal(driver.LogFormatJSON, config.LogFormat)
	r.Equal([]string{"rd", "wr"}, config.Keywords)

	bad := filepath.Join(dir, "bad.yaml")
	r.NoError(os.WriteFile(bad, []byte("sink: nope\n"), 0o644))

	_, err = driver.LoadConfig(bad)
	r.Error(err)

	empty := filepath.Join(dir, "empty.yaml")
	r.NoError(os.WriteFile(empty, nil, 0o644))

	config, err = driver.LoadConfig(empty)
	r.NoError(err)
	r.Equal("", config.Code)
}

func TestConfig_Validate(t *testing.T) {
	r := require.New(t)

	config := driver.Config{LogFormat: "xml"}
	r.Error(config.Validate(slogt.New(t)))

	config = driver.Config{}
	r.NoError(config.Validate(slogt.New(t)))
	r.Equal(driver.LogFormatText, config.LogFormat)
	r.NotNil(config.Stdin)
	r.NotNil(config.Stdout)
	r.NotNil(config.Diagnostics)

	config = driver.Config{Keywords: []string{"wr", ""}}
	r.Error(config.Validate(slogt.New(t)))
}

func TestDriver_Keywords(t *testing.T) {
	r := require.New(t)

	var stdout bytes.Buffer
	d, err := driver.New(slogt.New(t), driver.Config{
		Keywords:    []string{"rd", "wr"},
		Stdin:       strings.NewReader(""),
		Stdout:      &stdout,
		Diagnostics: &bytes.Buffer{},
	})
	r.NoError(err)
	d.AddProgram("plain", "if = 3; wr if + 1;")

	results, err := d.Run(context.Background())
	r.NoError(err)
	r.Len(results, 1)
	r.Equal(4.0, results[0].Value)
	r.Equal("3\n4\n", stdout.String())
}
