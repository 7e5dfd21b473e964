// Package prompt is the terminal side of data entry: it prints labels,
// reads lines and re-asks until a validation rule accepts the answer.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/zulandar/flightdesk/internal/validate"
)

// ErrClosed is returned once the input stream is exhausted.
var ErrClosed = errors.New("prompt: input closed")

// Prompter reads operator answers from in and writes prompts to out.
type Prompter struct {
	in   *bufio.Reader
	out  io.Writer
	fail *color.Color
	ok   *color.Color
}

// New returns a Prompter over the given streams.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:   bufio.NewReader(in),
		out:  out,
		fail: color.New(color.FgRed),
		ok:   color.New(color.FgGreen),
	}
}

// Out is the stream prompts and reports are written to.
func (p *Prompter) Out() io.Writer {
	return p.out
}

// Printf writes formatted text to the output stream.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Println writes a line to the output stream.
func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// Fail writes a one-line failure message.
func (p *Prompter) Fail(format string, args ...any) {
	p.fail.Fprintf(p.out, format+"\n", args...)
}

// Success writes a one-line success message.
func (p *Prompter) Success(format string, args ...any) {
	p.ok.Fprintf(p.out, format+"\n", args...)
}

// ReadLine prints "label: " and returns the next line without its line
// terminator. A final unterminated line is returned; after that ErrClosed.
func (p *Prompter) ReadLine(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				fmt.Fprintln(p.out)
				return "", ErrClosed
			}
			return strings.TrimRight(line, "\r"), nil
		}
		return "", fmt.Errorf("prompt: read: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadIntBetween asks until the answer is an integer in [min, max].
func (p *Prompter) ReadIntBetween(label string, min, max int) (int, error) {
	return Ask(p, label, validate.IntBetween(min, max))
}

// Ask prints label and re-asks until parse accepts the answer. Rule
// violations are shown to the operator; any other error from parse, or from
// reading, ends the loop and is returned.
func Ask[T any](p *Prompter, label string, parse func(string) (T, error)) (T, error) {
	var zero T
	for {
		raw, err := p.ReadLine(label)
		if err != nil {
			return zero, err
		}
		v, err := parse(raw)
		if err == nil {
			return v, nil
		}
		if !validate.IsViolation(err) {
			return zero, err
		}
		p.Fail("%s", err.Error())
	}
}
