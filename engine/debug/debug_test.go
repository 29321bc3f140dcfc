package debug

import (
	"errors"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-sketch/common"
)

type material struct {
	Color     common.Color
	Wireframe bool
}

type object struct {
	Position common.Vec3
	Visible  bool
	Name     string
	Spin     func()
	Count    int
}

func TestAddBindsFieldsCaseInsensitively(t *testing.T) {
	gui := NewGUI()
	obj := &object{}
	c := gui.Add(&obj.Position, "y", -3, 3, 0.01).Name("elevation")

	if err := c.Input(1.234); err != nil {
		t.Fatalf("Input err = %v", err)
	}
	if !near(float64(obj.Position.Y), 1.23) {
		t.Fatalf("Position.Y = %v, want 1.23", obj.Position.Y)
	}
	if got := c.Value().(float64); !near(got, 1.23) {
		t.Fatalf("Value() = %v, want 1.23", got)
	}
	if err := c.Input(10); err != nil {
		t.Fatalf("Input err = %v", err)
	}
	if obj.Position.Y != 3 {
		t.Fatalf("Position.Y after Input(10) = %v, want clamped 3", obj.Position.Y)
	}
	if got, ok := gui.Lookup("elevation"); !ok || got != c {
		t.Fatalf("Lookup(elevation) = %v, %v", got, ok)
	}
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}

func TestAddPanicsOnUnknownProperty(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("Add on a missing property did not panic")
		}
		if msg, _ := r.(string); !strings.HasPrefix(msg, "debug:") {
			t.Fatalf("panic message = %v, want debug: prefix", r)
		}
	}()
	NewGUI().Add(&object{}, "missing")
}

func TestBindReturnsError(t *testing.T) {
	gui := NewGUI()
	if _, err := gui.Bind(map[string]any{"a": 1}, "b"); !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("Bind missing key err = %v, want ErrUnknownParameter", err)
	}
	if _, err := gui.Bind(object{}, "Visible"); !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("Bind non-pointer err = %v, want ErrUnknownParameter", err)
	}
	if _, err := gui.Bind(&struct{ M map[int]int }{}, "M"); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("Bind map field err = %v, want ErrUnsupportedType", err)
	}
	if len(gui.Controllers()) != 0 {
		t.Fatalf("failed binds left %d controllers", len(gui.Controllers()))
	}
}

func TestChangeThenFinishOrdering(t *testing.T) {
	params := map[string]any{"subdivision": 2}
	var calls []string
	c := NewGUI().Add(params, "subdivision").Min(1).Max(20).Step(1).
		OnChange(func(v any) { calls = append(calls, "change") }).
		OnFinishChange(func(v any) { calls = append(calls, "finish") })

	for _, v := range []float64{3, 4.4, 5} {
		if err := c.Input(v); err != nil {
			t.Fatalf("Input(%v) err = %v", v, err)
		}
	}
	c.Finish()
	c.Finish()

	want := []string{"change", "change", "change", "finish"}
	if strings.Join(calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	if params["subdivision"] != 5 {
		t.Fatalf("subdivision = %v (%T), want int 5", params["subdivision"], params["subdivision"])
	}
}

func TestFinishOnlyStagesUntilFinish(t *testing.T) {
	obj := &object{Count: 1}
	var changes, finishes int
	c := NewGUI().Add(obj, "Count").FinishOnly(true).
		OnChange(func(any) { changes++ }).
		OnFinishChange(func(any) { finishes++ })

	_ = c.Input(4)
	_ = c.Input(7)
	if obj.Count != 1 || !c.Pending() {
		t.Fatalf("staged Input wrote through: Count = %d, Pending = %v", obj.Count, c.Pending())
	}
	c.Finish()
	if obj.Count != 7 || changes != 1 || finishes != 1 {
		t.Fatalf("after Finish Count = %d, changes = %d, finishes = %d; want 7, 1, 1", obj.Count, changes, finishes)
	}
}

func TestColorAndBoolControllers(t *testing.T) {
	gui := NewGUI()
	params := map[string]any{"color": "#ff0000"}
	mat := &material{}
	var got common.Color
	gui.AddColor(params, "color").OnChange(func(v any) {
		got = v.(common.Color)
		mat.Color = got
	})
	c, _ := gui.Lookup("color")
	if err := c.Commit("#00ff00"); err != nil {
		t.Fatalf("Commit err = %v", err)
	}
	if params["color"] != "#00ff00" || mat.Color.Hex() != 0x00ff00 {
		t.Fatalf("colour = %v / %#06x, want #00ff00", params["color"], mat.Color.Hex())
	}
	if err := c.Input("not a colour"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("Input invalid colour err = %v, want ErrInvalidValue", err)
	}

	w := gui.Add(mat, "wireframe")
	if w.Kind() != KindBool {
		t.Fatalf("Kind() = %v, want bool", w.Kind())
	}
	if err := w.Commit("true"); err != nil || !mat.Wireframe {
		t.Fatalf("Commit(true) err = %v, Wireframe = %v", err, mat.Wireframe)
	}
}

func TestButtonPress(t *testing.T) {
	pressed := 0
	obj := &object{Spin: func() { pressed++ }}
	gui := NewGUI()
	folder := gui.AddFolder("rotation")
	b := folder.Add(obj, "Spin")
	if err := b.Press(); err != nil {
		t.Fatalf("Press err = %v", err)
	}
	if pressed != 1 {
		t.Fatalf("pressed = %d, want 1", pressed)
	}
	if err := b.Input(1); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("Input on button err = %v, want ErrInvalidValue", err)
	}
	if got, ok := gui.Lookup("rotation/Spin"); !ok || got != b {
		t.Fatalf("Lookup(rotation/Spin) = %v, %v", got, ok)
	}
	if err := gui.Add(obj, "Visible").Press(); !errors.Is(err, ErrNotFunction) {
		t.Fatalf("Press on bool err = %v, want ErrNotFunction", err)
	}
}

func TestPanelStateAndEvents(t *testing.T) {
	gui := NewGUI(WithTitle("Nice Debug UI"), WithWidth(300), WithCloseFolders(true))
	if gui.Title() != "Nice Debug UI" || gui.Width() != 300 {
		t.Fatalf("Title/Width = %q/%d", gui.Title(), gui.Width())
	}
	gui.Hide()
	gui.Toggle()
	if gui.Hidden() {
		t.Fatalf("Toggle after Hide left the panel hidden")
	}
	folder := gui.AddFolder("rotation")
	if !folder.Closed() || folder.Parent() != gui {
		t.Fatalf("folder Closed = %v, Parent = %v", folder.Closed(), folder.Parent())
	}

	var events []ChangeEvent
	gui.OnChange(func(ev ChangeEvent) { events = append(events, ev) })
	obj := &object{}
	_ = folder.Add(obj, "Name").Commit("box")
	if len(events) != 2 || events[0].Finished || !events[1].Finished {
		t.Fatalf("events = %+v, want change then finish", events)
	}
	if obj.Name != "box" {
		t.Fatalf("Name = %q, want box", obj.Name)
	}
}

func TestToFloat(t *testing.T) {
	for in, want := range map[any]float64{int(3): 3, uint8(4): 4, float32(0.5): 0.5, "2.5": 2.5} {
		got, ok := ToFloat(in)
		if !ok || got != want {
			t.Fatalf("ToFloat(%v) = %v, %v; want %v", in, got, ok, want)
		}
	}
	if _, ok := ToFloat("x"); ok {
		t.Fatalf("ToFloat(x) ok = true")
	}
}

type ranges struct {
	Y     float32
	F     float64
	Small int8
	Byte  uint8
}

func TestNumericInputRejectsNonFiniteAndOverflow(t *testing.T) {
	tests := []struct {
		property string
		in       any
	}{
		{"Y", "inf"},
		{"Y", "-Inf"},
		{"Y", 1e39},
		{"F", "+inf"},
		{"Small", 300},
		{"Small", -129},
		{"Byte", 256},
		{"Byte", -1},
		{"Small", 1e30},
	}
	for _, tt := range tests {
		r := &ranges{Y: 1, F: 2, Small: 3, Byte: 4}
		changes := 0
		c := NewGUI().Add(r, tt.property).OnChange(func(any) { changes++ })
		err := c.Input(tt.in)
		if !errors.Is(err, ErrInvalidValue) {
			t.Fatalf("Input(%v) on %s err = %v, want ErrInvalidValue", tt.in, tt.property, err)
		}
		if *r != (ranges{Y: 1, F: 2, Small: 3, Byte: 4}) || changes != 0 {
			t.Fatalf("Input(%v) on %s changed state: %+v, %d changes", tt.in, tt.property, *r, changes)
		}
	}

	r := &ranges{}
	g := NewGUI()
	if err := g.Add(r, "Small").Input(-128); err != nil || r.Small != -128 {
		t.Fatalf("Input(-128) = %v, Small = %d; want nil, -128", err, r.Small)
	}
	if err := g.Add(r, "Byte").Input(255); err != nil || r.Byte != 255 {
		t.Fatalf("Input(255) = %v, Byte = %d; want nil, 255", err, r.Byte)
	}
}

func TestRestoreWritesSilentlyAndDropsStaged(t *testing.T) {
	obj := &object{Count: 1}
	var changes, finishes int
	c := NewGUI().Add(obj, "Count").FinishOnly(true).
		OnChange(func(any) { changes++ }).
		OnFinishChange(func(any) { finishes++ })

	_ = c.Input(7)
	if err := c.Restore(3); err != nil {
		t.Fatalf("Restore err = %v", err)
	}
	if obj.Count != 3 || c.Pending() || changes != 0 || finishes != 0 {
		t.Fatalf("Count = %d, Pending = %v, changes = %d, finishes = %d; want 3, false, 0, 0",
			obj.Count, c.Pending(), changes, finishes)
	}
	c.Finish()
	if obj.Count != 3 || finishes != 0 {
		t.Fatalf("Finish after Restore: Count = %d, finishes = %d; want 3, 0", obj.Count, finishes)
	}
	if err := c.Restore("many"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("Restore(\"many\") err = %v, want ErrInvalidValue", err)
	}
}
