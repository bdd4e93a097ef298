package interpreter

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Console is the input source and output sink used by read and write
// statements.
type Console interface {
	// Read prompts for name and blocks until one number is available.
	Read(name string) (float64, error)

	// Write prints one number on its own line.
	Write(value float64) error
}

// StreamConsole reads whitespace separated numbers from an io.Reader and
// writes to an io.Writer.
type StreamConsole struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *StreamConsole {
	return &StreamConsole{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (c *StreamConsole) Read(name string) (float64, error) {
	_, err := fmt.Fprintf(c.out, "%s = ", name)
	if err != nil {
		return 0, err
	}

	var value float64
	_, err = fmt.Fscan(c.in, &value)
	if err != nil {
		return 0, err
	}

	return value, nil
}

func (c *StreamConsole) Write(value float64) error {
	_, err := fmt.Fprintln(c.out, FormatNumber(value))
	return err
}

// maxExactInt is the magnitude below which every integral float64 converts
// to int64 exactly.
const maxExactInt = 1 << 53

// FormatNumber renders value the way a write statement prints it: integral
// values as integers, anything else in the fewest of 15, 16 or 17
// significant digits that reads back as the same value.
func FormatNumber(value float64) string {
	switch {
	case math.IsNaN(value):
		return "nan"
	case math.IsInf(value, 1):
		return "inf"
	case math.IsInf(value, -1):
		return "-inf"
	case value == math.Trunc(value) && math.Abs(value) < maxExactInt:
		return strconv.FormatInt(int64(value), 10)
	}

	for prec := 15; prec < 17; prec++ {
		s := strconv.FormatFloat(value, 'g', prec, 64)
		if parsed, err := strconv.ParseFloat(s, 64); err == nil && parsed == value {
			return s
		}
	}

	return strconv.FormatFloat(value, 'g', 17, 64)
}
