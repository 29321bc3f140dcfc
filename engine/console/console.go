// Package console reads sketch commands from a terminal or script and posts them as session
// events. Parameter edits, key presses, resizes and pointer drags can all be driven without
// a window.
//
// Commands, one per line, tokenised with shell quoting rules:
//
//	set <path> <value>            edit a panel parameter
//	finish <path>                 end the edit of a parameter
//	commit <path> <value>         set then finish
//	press <path>                  click a button parameter
//	key <name>                    press a key
//	resize <w> <h> [ratio]        resize the viewport
//	drag [button] <x0> <y0> <x1> <y1> [steps]   steps up to MaxDragSteps
//	zoom <delta>                  scroll the wheel
//	show                          print the panel
//	quit                          stop the sketch
//
// Blank lines and lines starting with # are ignored.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-sketch/engine/session"
	"github.com/google/shlex"
)

var (
	// ErrUnknownCommand is returned for a line whose first word is not a command.
	ErrUnknownCommand = errors.New("console: unknown command")

	// ErrUsage is returned when a command has the wrong arguments.
	ErrUsage = errors.New("console: usage")
)

// MaxDragSteps is the largest move count a drag command accepts.
const MaxDragSteps = 1000

// Poster accepts events for the host thread. host.Loop implements it.
type Poster interface {
	Post(ev session.Event)
}

// Console turns command lines into session events.
type Console interface {
	// Exec parses one command line and posts its events.
	//
	// Parameters:
	//   - line: the command line
	//
	// Returns:
	//   - error: ErrUnknownCommand, ErrUsage or a tokenising error
	Exec(line string) error

	// Run executes every line read from r until EOF or ctx is done. Bad lines are logged
	// and skipped.
	//
	// Parameters:
	//   - ctx: cancelling it stops before the next line
	//   - r: the command source
	//
	// Returns:
	//   - error: ctx.Err() when cancelled, or the read error
	Run(ctx context.Context, r io.Reader) error
}

type consoleImpl struct {
	poster Poster
	out    io.Writer
	quit   func()
}

var _ Console = &consoleImpl{}

// NewConsole creates a console posting to poster.
//
// Parameters:
//   - poster: where events go
//   - options: variadic list of ConsoleBuilderOption functions
//
// Returns:
//   - Console: the new console
func NewConsole(poster Poster, options ...ConsoleBuilderOption) Console {
	if poster == nil {
		panic("console: nil poster")
	}
	c := &consoleImpl{
		poster: poster,
		out:    os.Stdout,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *consoleImpl) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.Exec(scanner.Text()); err != nil {
			log.Printf("console: %v", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return scanner.Err()
}

func (c *consoleImpl) Exec(line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}
	words, err := shlex.Split(trimmed)
	if err != nil {
		return fmt.Errorf("console: %q: %w", trimmed, err)
	}
	if len(words) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(words[0]), words[1:]
	switch cmd {
	case "set":
		if len(args) != 2 {
			return usage("set <path> <value>")
		}
		c.poster.Post(session.ParamInputEvent{Path: args[0], Value: args[1]})
	case "finish":
		if len(args) != 1 {
			return usage("finish <path>")
		}
		c.poster.Post(session.ParamFinishEvent{Path: args[0]})
	case "commit":
		if len(args) != 2 {
			return usage("commit <path> <value>")
		}
		c.poster.Post(session.ParamInputEvent{Path: args[0], Value: args[1]})
		c.poster.Post(session.ParamFinishEvent{Path: args[0]})
	case "press":
		if len(args) != 1 {
			return usage("press <path>")
		}
		c.poster.Post(session.ParamPressEvent{Path: args[0]})
	case "key":
		if len(args) != 1 {
			return usage("key <name>")
		}
		c.poster.Post(session.KeyDownEvent{Key: args[0]})
	case "resize":
		return c.resize(args)
	case "drag":
		return c.drag(args)
	case "zoom":
		if len(args) != 1 {
			return usage("zoom <delta>")
		}
		delta, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return usage("zoom <delta>")
		}
		c.poster.Post(session.WheelEvent{Delta: delta})
	case "show":
		out := c.out
		c.poster.Post(session.CallEvent{Fn: func(s session.Session) {
			fmt.Fprint(out, Describe(s.GUI()))
		}})
	case "quit", "exit":
		if c.quit != nil {
			c.quit()
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, words[0])
	}
	return nil
}

func (c *consoleImpl) resize(args []string) error {
	const form = "resize <w> <h> [ratio]"
	if len(args) < 2 || len(args) > 3 {
		return usage(form)
	}
	w, errW := strconv.Atoi(args[0])
	h, errH := strconv.Atoi(args[1])
	if errW != nil || errH != nil {
		return usage(form)
	}
	ev := session.ResizeEvent{Width: w, Height: h}
	if len(args) == 3 {
		ratio, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return usage(form)
		}
		ev.PixelRatio = ratio
	}
	c.poster.Post(ev)
	return nil
}

// drag posts a press, steps evenly spaced moves ending at (x1, y1), and a release.
func (c *consoleImpl) drag(args []string) error {
	const form = "drag [left|right|middle] <x0> <y0> <x1> <y1> [steps]"
	button := session.PointerLeft
	if len(args) > 0 {
		if b, ok := parseButton(args[0]); ok {
			button = b
			args = args[1:]
		}
	}
	if len(args) < 4 || len(args) > 5 {
		return usage(form)
	}
	var coords [4]float64
	for i := range coords {
		f, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return usage(form)
		}
		coords[i] = f
	}
	steps := 1
	if len(args) == 5 {
		n, err := strconv.Atoi(args[4])
		if err != nil || n < 1 || n > MaxDragSteps {
			return usage(form)
		}
		steps = n
	}
	x0, y0, x1, y1 := coords[0], coords[1], coords[2], coords[3]
	c.poster.Post(session.PointerDownEvent{X: x0, Y: y0, Button: button})
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.poster.Post(session.PointerMoveEvent{X: x0 + (x1-x0)*t, Y: y0 + (y1-y0)*t})
	}
	c.poster.Post(session.PointerUpEvent{X: x1, Y: y1, Button: button})
	return nil
}

func parseButton(s string) (session.PointerButton, bool) {
	switch strings.ToLower(s) {
	case "left":
		return session.PointerLeft, true
	case "right":
		return session.PointerRight, true
	case "middle":
		return session.PointerMiddle, true
	}
	return 0, false
}

func usage(form string) error {
	return fmt.Errorf("%w: %s", ErrUsage, form)
}
