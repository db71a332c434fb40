package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"cathode/internal/display"
)

// terminalPrompter asks yes/no questions on the controlling terminal. When
// input is a terminal a single keypress answers; otherwise whole lines are
// read until one starts with y or n. End of input answers no.
type terminalPrompter struct {
	in  io.Reader
	out io.Writer
	fd  int
	raw bool
}

func newTerminalPrompter(in *os.File, out io.Writer) *terminalPrompter {
	fd := int(in.Fd())
	return &terminalPrompter{in: in, out: out, fd: fd, raw: term.IsTerminal(fd)}
}

func (p *terminalPrompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/n] ", question)
	if p.raw {
		return p.confirmKey()
	}
	return p.confirmLine()
}

func (p *terminalPrompter) confirmKey() (bool, error) {
	state, err := term.MakeRaw(p.fd)
	if err != nil {
		return p.confirmLine()
	}
	defer term.Restore(p.fd, state)

	buf := make([]byte, 1)
	for {
		if _, err := p.in.Read(buf); err != nil {
			if err == io.EOF {
				fmt.Fprint(p.out, "\r\n")
				return false, nil
			}
			return false, err
		}
		switch buf[0] {
		case 'y', 'Y':
			fmt.Fprint(p.out, "y\r\n")
			return true, nil
		case 'n', 'N', 0x03, 0x04: // ctrl-c and ctrl-d answer no in raw mode
			fmt.Fprint(p.out, "n\r\n")
			return false, nil
		}
	}
}

func (p *terminalPrompter) confirmLine() (bool, error) {
	scanner := bufio.NewScanner(p.in)
	for scanner.Scan() {
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		switch {
		case strings.HasPrefix(answer, "y"):
			return true, nil
		case strings.HasPrefix(answer, "n"):
			return false, nil
		}
		fmt.Fprint(p.out, "Please answer y or n: ")
	}
	if err := scanner.Err(); err != nil {
		return false, err
	}
	return false, nil
}

var _ display.Prompter = (*terminalPrompter)(nil)
