package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"tasktrack/internal/errors"

	"golang.org/x/term"
)

type prompter struct {
	reader *bufio.Reader
	out    io.Writer
	// fd is the terminal to read passwords from, or -1 when input is not a terminal.
	fd int
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{reader: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
	}

	return p
}

// Line asks for a value unless current is already set.
func (p *prompter) Line(label, current string) (string, error) {
	if strings.TrimSpace(current) != "" {
		return current, nil
	}

	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", errors.Wrapf(err, "read %s", label)
	}

	return strings.TrimSpace(line), nil
}

// Password reads without echo on a terminal and as a plain line otherwise.
func (p *prompter) Password() (string, error) {
	if p.fd < 0 {
		return p.Line("Password", "")
	}

	fmt.Fprint(p.out, "Password: ")
	raw, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", errors.Wrap(err, "read password")
	}

	return string(raw), nil
}
