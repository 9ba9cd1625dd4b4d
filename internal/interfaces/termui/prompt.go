package termui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var errInputClosed = fmt.Errorf("input closed")

// prompter reads line-oriented answers from the player. All reads go through
// it so tests can script a whole session as one string.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), 64*1024)
	return &prompter{in: scanner, out: out}
}

func (p *prompter) line(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *prompter) intValue(label string) (int, error) {
	for {
		raw, err := p.line(label)
		if err != nil {
			return 0, err
		}
		value, convErr := strconv.Atoi(raw)
		if convErr != nil {
			fmt.Fprintln(p.out, "Enter a whole number.")
			continue
		}
		return value, nil
	}
}

// intInRange keeps asking until the answer lands in [low, high].
func (p *prompter) intInRange(label string, low, high int) (int, error) {
	for {
		value, err := p.intValue(fmt.Sprintf("%s (%d-%d)", label, low, high))
		if err != nil {
			return 0, err
		}
		if value < low || value > high {
			fmt.Fprintf(p.out, "Pick a number between %d and %d.\n", low, high)
			continue
		}
		return value, nil
	}
}

func (p *prompter) confirm(label string) (bool, error) {
	for {
		raw, err := p.line(label + " [y/n]")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(raw) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Answer y or n.")
	}
}
