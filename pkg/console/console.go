// Package console drives a form session from an interactive terminal.
package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/linkki-framework/linkki-sub003/pkg/session"
	"github.com/linkki-framework/linkki-sub003/pkg/widget"
)

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = errors.New("quit")

const help = `commands:
  show [widget]           show all widgets or one widget
  edit <widget> <text>    set the text of a text field; quote the text to keep spaces
  toggle <widget>         toggle a check box
  select <widget> <n>     choose item n (from 0) of a select
  click <widget>          click a button
  help                    show this help
  quit                    leave the console
`

// Prompter reads lines from the user. *liner.State implements it.
type Prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
}

// Console executes commands against a session and writes to out.
type Console struct {
	s   *session.Session
	out io.Writer
}

// New returns a Console of the session. Changes of widgets are written to out
// as they happen.
func New(s *session.Session, out io.Writer) *Console {
	c := &Console{s, out}
	s.OnUpdate(func(states []widget.State) {
		for _, st := range states {
			fmt.Fprintln(out, "~", Format(st))
		}
	})
	return c
}

// Run reads and executes commands until the quit command or the end of
// input. Failed commands are reported and do not stop the loop.
func (c *Console) Run(p Prompter) error {
	for {
		line, err := p.Prompt("form> ")
		if err == io.EOF || err == liner.ErrPromptAborted {
			fmt.Fprintln(c.out)
			return nil
		} else if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		p.AppendHistory(line)
		err = c.Exec(line)
		if err == ErrQuit {
			return nil
		} else if err != nil {
			fmt.Fprintln(c.out, "error:", err)
		}
	}
}

// Exec executes one command.
func (c *Console) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "show":
		return c.show(args)
	case "edit":
		if len(args) < 1 {
			return usage(cmd)
		}
		text, err := editText(line, args[0])
		if err != nil {
			return err
		}
		return c.s.Edit(args[0], text)
	case "toggle":
		if len(args) != 1 {
			return usage(cmd)
		}
		return c.s.Toggle(args[0])
	case "select":
		if len(args) != 2 {
			return usage(cmd)
		}
		i, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("select: bad item number %q", args[1])
		}
		return c.s.Select(args[0], i)
	case "click":
		if len(args) != 1 {
			return usage(cmd)
		}
		return c.s.Click(args[0])
	case "help":
		fmt.Fprint(c.out, help)
		return nil
	case "quit", "exit":
		return ErrQuit
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
}

var usages = map[string]string{
	"edit":   "edit <widget> <text>",
	"toggle": "toggle <widget>",
	"select": "select <widget> <n>",
	"click":  "click <widget>",
}

func usage(cmd string) error {
	return fmt.Errorf("usage: %s", usages[cmd])
}

// Returns the rest of an edit line after the widget ID, unquoted if quoted.
func editText(line, id string) (string, error) {
	_, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	rest = strings.TrimSpace(strings.TrimPrefix(rest, id))
	if strings.HasPrefix(rest, `"`) {
		s, err := strconv.Unquote(rest)
		if err != nil {
			return "", fmt.Errorf("edit: bad quoted text %s", rest)
		}
		return s, nil
	}
	return rest, nil
}

func (c *Console) show(args []string) error {
	states := c.s.States()
	if len(args) == 0 {
		for _, st := range states {
			fmt.Fprintln(c.out, Format(st))
		}
		return nil
	}
	for _, st := range states {
		if st.ID == args[0] {
			fmt.Fprintln(c.out, Format(st))
			for i, item := range st.Items {
				fmt.Fprintf(c.out, "  %d: %v\n", i, item)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %q", session.ErrNoWidget, args[0])
}

// Format formats a widget state as one line, followed by one line for each
// message.
func Format(st widget.State) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-12s %-8s", st.ID, st.Kind)
	if st.Caption != "" {
		fmt.Fprintf(&sb, " %q", st.Caption)
	}
	if st.Kind != widget.ButtonKind {
		fmt.Fprintf(&sb, " = %v", quoteValue(st.Value))
	}
	var flags []string
	if !st.Visible {
		flags = append(flags, "hidden")
	}
	if !st.Enabled {
		flags = append(flags, "disabled")
	}
	if st.ReadOnly {
		flags = append(flags, "read-only")
	}
	if st.Required {
		flags = append(flags, "required")
	}
	if len(flags) > 0 {
		fmt.Fprintf(&sb, " (%s)", strings.Join(flags, ", "))
	}
	for _, m := range st.Messages {
		fmt.Fprintf(&sb, "\n    %s", m.Severity)
		if m.Code != "" {
			fmt.Fprintf(&sb, " [%s]", m.Code)
		}
		fmt.Fprintf(&sb, ": %s", m.Text)
	}
	return sb.String()
}

func quoteValue(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprint(v)
}

var commands = []string{"click", "edit", "help", "quit", "select", "show", "toggle"}

// Complete completes command names and widget IDs.
func (c *Console) Complete(line string) []string {
	fields := strings.Fields(line)
	if len(fields) == 0 || len(fields) == 1 && !strings.HasSuffix(line, " ") {
		prefix := strings.TrimSpace(line)
		var out []string
		for _, cmd := range commands {
			if strings.HasPrefix(cmd, prefix) {
				out = append(out, cmd+" ")
			}
		}
		return out
	}
	if len(fields) > 2 || len(fields) == 2 && strings.HasSuffix(line, " ") {
		return nil
	}
	prefix := ""
	if len(fields) == 2 {
		prefix = fields[1]
	}
	var out []string
	for _, st := range c.s.States() {
		if strings.HasPrefix(st.ID, prefix) {
			out = append(out, fields[0]+" "+st.ID+" ")
		}
	}
	sort.Strings(out)
	return out
}

// RunTerminal runs the console on the terminal. History is loaded from and
// saved to histPath unless it is empty.
func RunTerminal(s *session.Session, histPath string) error {
	c := New(s, os.Stdout)
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(c.Complete)

	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				ln.WriteHistory(f)
				f.Close()
			}
		}()
	}
	fmt.Fprint(os.Stdout, "type help for a list of commands\n")
	c.show(nil)
	return c.Run(ln)
}
