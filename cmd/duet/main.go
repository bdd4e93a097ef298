package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rhino1998/duet/pkg/cgen"
	"github.com/rhino1998/duet/pkg/driver"
	"github.com/rhino1998/duet/pkg/lexer"
	"github.com/urfave/cli/v3"
)

// codeEnv names the environment variable that supplies the code sink when
// --code is not given.
const codeEnv = "Code"

var programFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "config",
		Usage: "YAML config file",
	},
	&cli.BoolFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "treat arguments as paths to program files",
	},
	&cli.BoolFlag{
		Name:    "debug",
		Aliases: []string{"d"},
	},
}

func loadConfig(c *cli.Command) (driver.Config, error) {
	var config driver.Config
	if path := c.String("config"); path != "" {
		var err error
		config, err = driver.LoadConfig(path)
		if err != nil {
			return config, err
		}
	}

	if code, ok := os.LookupEnv(codeEnv); ok {
		config.Code = code
	}

	if c.IsSet("code") {
		config.Code = c.String("code")
	}

	if c.Bool("debug") {
		config.Debug = true
	}

	return config, nil
}

func newLogger(config driver.Config) *slog.Logger {
	level := slog.LevelInfo
	if config.Debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if config.LogFormat == driver.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}

	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func newDriver(c *cli.Command, config driver.Config) (*driver.Driver, error) {
	if c.Args().Len() == 0 {
		return nil, fmt.Errorf("must provide at least one program as argument")
	}

	logger := newLogger(config)

	d, err := driver.New(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize driver: %w", err)
	}

	for i, arg := range c.Args().Slice() {
		if !c.Bool("file") {
			d.AddProgram(fmt.Sprintf("program %d", i+1), arg)
			continue
		}

		f, err := os.Open(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}

		err = d.AddFile(arg, f)
		f.Close()
		if err != nil {
			return nil, err
		}
	}

	return d, nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := &cli.Command{
		Name:  "duet",
		Usage: "Interpret programs and translate them to C",
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Evaluate each program and write the C translation to the code sink",
				ArgsUsage: "PROGRAM...",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "code",
						Usage: "code sink; the C program is written to NAME.c (default $Code)",
					},
				}, programFlags...),
				Action: func(ctx context.Context, c *cli.Command) error {
					config, err := loadConfig(c)
					if err != nil {
						return err
					}

					d, err := newDriver(c, config)
					if err != nil {
						return err
					}

					_, err = d.Run(ctx)
					if err != nil {
						// faults were already reported on the diagnostics stream
						os.Exit(1)
					}

					return nil
				},
			},
			{
				Name:      "emit",
				Usage:     "Evaluate each program and print the C translation",
				ArgsUsage: "PROGRAM...",
				Flags:     programFlags,
				Action: func(ctx context.Context, c *cli.Command) error {
					config, err := loadConfig(c)
					if err != nil {
						return err
					}
					config.Code = ""
					config.Stdout = os.Stderr

					d, err := newDriver(c, config)
					if err != nil {
						return err
					}

					results, runErr := d.Run(ctx)

					err = cgen.Render(os.Stdout, driver.Units(results))
					if err != nil {
						return err
					}

					if runErr != nil {
						os.Exit(1)
					}

					return nil
				},
			},
			{
				Name:      "tokens",
				Usage:     "Print the token stream of a program",
				ArgsUsage: "PROGRAM",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("must provide exactly one program as argument")
					}

					lex := lexer.New(lexer.DefaultConfig(), c.Args().First(), func(err *lexer.Error) {
						fmt.Fprintln(os.Stderr, err)
					})

					for tok := range lex.All() {
						if tok.Is(lexer.KindEOF) {
							break
						}
						fmt.Println(tok)
					}

					return nil
				},
			},
		},
	}

	err := cmd.Run(ctx, os.Args)
	if err != nil {
		log.Fatalln(err)
	}
}
