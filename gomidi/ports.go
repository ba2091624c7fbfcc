package gomidi

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
)

var ErrNoInputs = errors.New("no MIDI input ports found")

// ChoosePort picks an input port by name. A non-empty prefix selects the
// first port whose name starts with it. Otherwise a single port is taken,
// and of two ports the second, as the first is usually a pass-through port.
// With more ports ask is true and the user should be prompted.
func ChoosePort(names []string, prefix string) (index int, ask bool, err error) {
	if len(names) == 0 {
		return 0, false, ErrNoInputs
	}
	if prefix != "" {
		for i, name := range names {
			if strings.HasPrefix(name, prefix) {
				return i, false, nil
			}
		}
		return 0, false, fmt.Errorf("could not find any MIDI input starting with %q", prefix)
	}
	switch len(names) {
	case 1:
		return 0, false, nil
	case 2:
		return 1, false, nil
	}
	return 0, true, nil
}

// Prompt lists the ports and reads the number of the chosen one from the
// terminal, asking again until the answer is valid.
func Prompt(names []string) (int, error) {
	rl, err := readline.New("midi input> ")
	if err != nil {
		return 0, fmt.Errorf("cannot prompt for a MIDI input: %w", err)
	}
	defer rl.Close()
	return prompt(rl, names)
}

type lineReader interface {
	Readline() (string, error)
	Stdout() io.Writer
}

func prompt(rl lineReader, names []string) (int, error) {
	out := rl.Stdout()
	fmt.Fprintln(out, "Available MIDI inputs:")
	for i, name := range names {
		fmt.Fprintf(out, "%3d: %s\n", i, name)
	}
	for {
		line, err := rl.Readline()
		if err != nil {
			return 0, fmt.Errorf("no MIDI input chosen: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if i, err := strconv.Atoi(line); err == nil && i >= 0 && i < len(names) {
			return i, nil
		}
		fmt.Fprintf(out, "enter a number between 0 and %d\n", len(names)-1)
	}
}
