// Package debug implements a tweak panel: controllers bound to properties of live objects,
// grouped in collapsible folders and driven by input events from whichever host draws it.
package debug

import (
	"fmt"
	"strings"
)

// ChangeEvent describes one applied edit, delivered to GUI.OnChange handlers of the
// controller's folder and every ancestor.
type ChangeEvent struct {
	Controller Controller
	Value      any
	Finished   bool
}

// GUI is a panel or folder of controllers.
type GUI interface {
	// Title returns the panel or folder title.
	Title() string

	// SetTitle renames the panel or folder.
	//
	// Parameters:
	//   - title: the new title
	SetTitle(title string)

	// Width returns the panel width in pixels.
	Width() int

	// Add binds a controller to target's property. Optional numeric args are min, max and
	// step, in that order. A missing property is a setup error and panics; use Bind to
	// receive the error instead.
	//
	// Parameters:
	//   - target: a struct pointer or a string-keyed map
	//   - property: field name (case-insensitive fallback) or map key
	//   - minMaxStep: optional min, max, step
	//
	// Returns:
	//   - Controller: the new controller
	Add(target any, property string, minMaxStep ...float64) Controller

	// Bind is Add without the panic.
	//
	// Parameters:
	//   - target: a struct pointer or a string-keyed map
	//   - property: field name or map key
	//
	// Returns:
	//   - Controller: the new controller, nil on error
	//   - error: ErrUnknownParameter or ErrUnsupportedType
	Bind(target any, property string) (Controller, error)

	// AddColor binds a colour controller to a common.Color, hex string or packed integer property.
	// Panics like Add on a missing property.
	//
	// Parameters:
	//   - target: a struct pointer or a string-keyed map
	//   - property: field name or map key
	//
	// Returns:
	//   - Controller: the new controller
	AddColor(target any, property string) Controller

	// AddFolder creates a nested folder.
	//
	// Parameters:
	//   - title: folder title
	//
	// Returns:
	//   - GUI: the folder
	AddFolder(title string) GUI

	// Controllers returns the controllers added directly to this GUI, in order.
	Controllers() []Controller

	// Folders returns the direct child folders, in order.
	Folders() []GUI

	// Parent returns the enclosing GUI, nil for the root panel.
	Parent() GUI

	// Lookup finds a controller by slash-separated path of folder titles ending in a
	// controller label or property, e.g. "rotation/rotateX".
	//
	// Parameters:
	//   - path: the controller path
	//
	// Returns:
	//   - Controller: the controller
	//   - bool: false when nothing matches
	Lookup(path string) (Controller, bool)

	// Show makes the panel visible.
	Show()

	// Hide hides the panel without changing its open state.
	Hide()

	// Toggle flips visibility.
	Toggle()

	// Hidden reports whether the panel is hidden.
	Hidden() bool

	// Open expands the panel or folder.
	Open()

	// Close collapses the panel or folder.
	Close()

	// Closed reports whether the panel or folder is collapsed.
	Closed() bool

	// OnChange registers a handler fired for every edit of any controller in this GUI
	// or its folders. Events with Finished set mark completed gestures.
	//
	// Parameters:
	//   - fn: the handler
	OnChange(fn func(ChangeEvent))
}

type guiImpl struct {
	parent      *guiImpl
	title       string
	width       int
	hidden      bool
	closed      bool
	closeFolder bool

	controllers []Controller
	folders     []GUI
	handlers    []func(ChangeEvent)
}

var _ GUI = &guiImpl{}

// NewGUI creates a root panel titled "Controls", 245 pixels wide, open and visible.
//
// Parameters:
//   - options: functional options to configure the panel
//
// Returns:
//   - GUI: the new panel
func NewGUI(options ...GUIBuilderOption) GUI {
	g := &guiImpl{
		title: "Controls",
		width: 245,
	}
	for _, option := range options {
		option(g)
	}
	return g
}

func (g *guiImpl) Title() string {
	return g.title
}

func (g *guiImpl) SetTitle(title string) {
	g.title = title
}

func (g *guiImpl) Width() int {
	return g.width
}

func (g *guiImpl) Add(target any, property string, minMaxStep ...float64) Controller {
	c, err := g.add(target, property, false)
	if err != nil {
		panic(fmt.Sprintf("debug: failed to add controller: %v", err))
	}
	if len(minMaxStep) > 0 {
		c.Min(minMaxStep[0])
	}
	if len(minMaxStep) > 1 {
		c.Max(minMaxStep[1])
	}
	if len(minMaxStep) > 2 {
		c.Step(minMaxStep[2])
	}
	return c
}

func (g *guiImpl) Bind(target any, property string) (Controller, error) {
	c, err := g.add(target, property, false)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (g *guiImpl) AddColor(target any, property string) Controller {
	c, err := g.add(target, property, true)
	if err != nil {
		panic(fmt.Sprintf("debug: failed to add colour controller: %v", err))
	}
	return c
}

func (g *guiImpl) add(target any, property string, asColor bool) (*controllerImpl, error) {
	c, err := newController(g, target, property, asColor)
	if err != nil {
		return nil, err
	}
	g.controllers = append(g.controllers, c)
	return c, nil
}

func (g *guiImpl) AddFolder(title string) GUI {
	f := &guiImpl{
		parent:      g,
		title:       title,
		width:       g.width,
		closed:      g.closeFolder,
		closeFolder: g.closeFolder,
	}
	g.folders = append(g.folders, f)
	return f
}

func (g *guiImpl) Controllers() []Controller {
	return append([]Controller(nil), g.controllers...)
}

func (g *guiImpl) Folders() []GUI {
	return append([]GUI(nil), g.folders...)
}

func (g *guiImpl) Parent() GUI {
	if g.parent == nil {
		return nil
	}
	return g.parent
}

func (g *guiImpl) Lookup(path string) (Controller, bool) {
	folder, name, nested := strings.Cut(strings.Trim(path, "/"), "/")
	if nested {
		for _, f := range g.folders {
			if f.Title() == folder {
				if c, ok := f.Lookup(name); ok {
					return c, true
				}
			}
		}
		return nil, false
	}
	for _, c := range g.controllers {
		if c.Label() == folder {
			return c, true
		}
	}
	for _, c := range g.controllers {
		if c.Property() == folder {
			return c, true
		}
	}
	return nil, false
}

func (g *guiImpl) Show() {
	g.hidden = false
}

func (g *guiImpl) Hide() {
	g.hidden = true
}

func (g *guiImpl) Toggle() {
	g.hidden = !g.hidden
}

func (g *guiImpl) Hidden() bool {
	return g.hidden
}

func (g *guiImpl) Open() {
	g.closed = false
}

func (g *guiImpl) Close() {
	g.closed = true
}

func (g *guiImpl) Closed() bool {
	return g.closed
}

func (g *guiImpl) OnChange(fn func(ChangeEvent)) {
	if fn != nil {
		g.handlers = append(g.handlers, fn)
	}
}

// notify delivers ev to this GUI's handlers, then bubbles to the parent.
func (g *guiImpl) notify(ev ChangeEvent) {
	for gui := g; gui != nil; gui = gui.parent {
		for _, fn := range gui.handlers {
			fn(ev)
		}
	}
}
