// Package repl is an interactive console for trying expressions: it
// shows how each one parses, its interval bound over the current cube
// and its value at the current point.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/peterh/liner"
	"github.com/philipparndt/gosurf/pkg/expr"
	"github.com/philipparndt/gosurf/pkg/geometry"
)

const prompt = "f> "

var commands = []string{":box", ":point", ":funcs", ":help", "exit", "quit"}

// Session holds the region and sample point expressions are evaluated
// against.
type Session struct {
	HalfSize float64
	Point    geometry.Vector3
}

// NewSession returns a session over the cube of the given half-size.
func NewSession(halfSize float64) *Session {
	return &Session{HalfSize: halfSize}
}

// Handle processes one input line and reports whether the session should
// end.
func (s *Session) Handle(input string, out io.Writer) bool {
	trimmed := strings.TrimSpace(input)
	switch {
	case trimmed == "":
		return false
	case trimmed == "exit" || trimmed == "quit":
		return true
	case strings.HasPrefix(trimmed, ":"):
		s.command(strings.Fields(trimmed), out)
		return false
	}

	f, err := expr.Parse(trimmed)
	if err != nil {
		if pe, ok := err.(*expr.ParseError); ok {
			// positions are relative to the trimmed text
			lead := utf8.RuneCountInString(input) - utf8.RuneCountInString(strings.TrimLeftFunc(input, unicode.IsSpace))
			fmt.Fprintf(out, "%s^\n", strings.Repeat(" ", len(prompt)+lead+pe.Pos))
		}
		fmt.Fprintf(out, "%v\n", err)
		return false
	}

	box := geometry.NewCube(s.HalfSize)
	bound := expr.EvalInterval(f, expr.Bind(box.X, box.Y, box.Z))
	verdict := "no surface in box"
	if bound.ContainsZero() {
		verdict = "may contain surface"
	}

	fmt.Fprintf(out, "parsed:  %s\n", f)
	fmt.Fprintf(out, "box:     %s -> %s (%s)\n", box, bound, verdict)
	fmt.Fprintf(out, "f%s = %g\n", formatPoint(s.Point), expr.Eval(f, s.Point.X, s.Point.Y, s.Point.Z))
	return false
}

func (s *Session) command(fields []string, out io.Writer) {
	switch fields[0] {
	case ":box":
		if len(fields) != 2 {
			fmt.Fprintf(out, "box half-size is %g\n", s.HalfSize)
			return
		}
		h, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || !(h > 0) {
			fmt.Fprintf(out, "half-size must be a positive number\n")
			return
		}
		s.HalfSize = h
		fmt.Fprintf(out, "box half-size set to %g\n", h)

	case ":point":
		if len(fields) != 4 {
			fmt.Fprintf(out, "point is %s\n", formatPoint(s.Point))
			return
		}
		var c [3]float64
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				fmt.Fprintf(out, "bad coordinate %q\n", f)
				return
			}
			c[i] = v
		}
		s.Point = geometry.NewVector3(c[0], c[1], c[2])
		fmt.Fprintf(out, "point set to %s\n", formatPoint(s.Point))

	case ":funcs":
		fmt.Fprintln(out, strings.Join(expr.FuncNames(), " "))

	case ":help":
		fmt.Fprintln(out, "Enter an expression in x, y and z to evaluate it.")
		fmt.Fprintln(out, "  :box [h]        show or set the cube half-size")
		fmt.Fprintln(out, "  :point [x y z]  show or set the sample point")
		fmt.Fprintln(out, "  :funcs          list functions")
		fmt.Fprintln(out, "  exit            leave")

	default:
		fmt.Fprintf(out, "unknown command %s (try :help)\n", fields[0])
	}
}

func formatPoint(p geometry.Vector3) string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

// complete returns completions for the identifier being typed at the end
// of line.
func complete(line string) []string {
	i := strings.LastIndexFunc(line, func(r rune) bool {
		return !(r == ':' || r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	})
	head, word := line[:i+1], line[i+1:]
	if word == "" {
		return nil
	}

	words := append(expr.FuncNames(), "x", "y", "z", "pi", "e")
	if head == "" {
		words = append(words, commands...)
	}
	var out []string
	for _, w := range words {
		if strings.HasPrefix(w, word) {
			out = append(out, head+w)
		}
	}
	sort.Strings(out)
	return out
}

// Start runs the console with line editing and history until EOF or exit.
func Start(s *Session, out io.Writer, version string) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(complete)

	historyFile := filepath.Join(os.TempDir(), ".gosurf_history")
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintf(out, "gosurf %s\n", version)
	fmt.Fprintln(out, "Type ':help' for commands, 'exit' or Ctrl+D to quit")

	for {
		input, err := line.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			fmt.Fprintln(out, "^C")
			continue
		}
		if err != nil {
			fmt.Fprintln(out)
			return
		}
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		if s.Handle(input, out) {
			return
		}
	}
}
