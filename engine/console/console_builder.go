package console

import "io"

// ConsoleBuilderOption is a functional option for configuring a Console.
type ConsoleBuilderOption func(*consoleImpl)

// WithOutput sets where show prints. Defaults to os.Stdout.
//
// Parameters:
//   - w: the writer
//
// Returns:
//   - ConsoleBuilderOption: option function to apply
func WithOutput(w io.Writer) ConsoleBuilderOption {
	return func(c *consoleImpl) {
		if w != nil {
			c.out = w
		}
	}
}

// WithQuit sets the function the quit command calls, usually Engine.Quit.
//
// Parameters:
//   - quit: the quit function
//
// Returns:
//   - ConsoleBuilderOption: option function to apply
func WithQuit(quit func()) ConsoleBuilderOption {
	return func(c *consoleImpl) {
		c.quit = quit
	}
}
