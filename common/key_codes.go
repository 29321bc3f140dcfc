package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyA         = 65  // A key (ASCII)
	KeyZ         = 90  // Z key (ASCII)
	KeyH         = 72  // H key (ASCII)
	KeySpace     = 32  // Spacebar (ASCII)
	KeyBackspace = 259 // Backspace key (GLFW)
	KeyEsc       = 256 // Escape key (GLFW)

	Key0 = 48 // 0 key (ASCII)
	Key9 = 57 // 9 key (ASCII)
)

// KeyName converts a virtual key code into the lower-case key name carried by key events
// ("h", "7", "space", "escape"). Unmapped codes return an empty string.
//
// Parameters:
//   - keyCode: the virtual key code
//
// Returns:
//   - string: the key name, or "" if unmapped
func KeyName(keyCode uint32) string {
	switch {
	case keyCode >= KeyA && keyCode <= KeyZ:
		return string(rune('a' + keyCode - KeyA))
	case keyCode >= Key0 && keyCode <= Key9:
		return string(rune('0' + keyCode - Key0))
	}
	switch keyCode {
	case KeySpace:
		return "space"
	case KeyBackspace:
		return "backspace"
	case KeyEsc:
		return "escape"
	}
	return ""
}
