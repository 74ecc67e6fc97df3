package gallery

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const browseHelp = `Commands:
  c <category>  filter by category (exact label, "All" shows everything)
  o <id>        open image details
  x             close image details
  h             show this help
  q             quit
`

// Browse loads the catalog and runs an interactive session reading commands
// from in until "q" or end of input.
func Browse(ctx context.Context, f Fetcher, in io.Reader, out io.Writer) error {
	state := NewState()
	if err := Render(out, state); err != nil {
		return err
	}

	state.Load(ctx, f)
	if err := Render(out, state); err != nil {
		return err
	}
	if state.Status() == StatusError {
		return nil
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		quit, msg := apply(state, scanner.Text())
		if quit {
			return nil
		}
		if msg != "" {
			fmt.Fprintln(out, msg)
			continue
		}
		if err := Render(out, state); err != nil {
			return err
		}
	}
}

// apply runs one command against the state. It returns a message to print
// instead of re-rendering, and whether the session should end.
func apply(state *State, line string) (quit bool, msg string) {
	line = strings.TrimSpace(line)
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "":
		return false, ""
	case "q", "quit":
		return true, ""
	case "h", "help":
		return false, strings.TrimRight(browseHelp, "\n")
	case "c":
		if arg == "" {
			arg = AllCategories
		}
		if !state.HasCategory(arg) {
			return false, fmt.Sprintf("Unknown category %q", arg)
		}
		state.SelectCategory(arg)
	case "o":
		id, err := strconv.Atoi(arg)
		if err != nil || !state.SelectByID(id) {
			return false, fmt.Sprintf("No visible image with id %q", arg)
		}
	case "x":
		state.Close()
	default:
		return false, fmt.Sprintf("Unknown command %q (h for help)", cmd)
	}
	return false, ""
}
