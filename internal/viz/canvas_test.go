package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/gravsim/internal/dynamo"
)

func TestCanvas_SetUnset(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	c.Set(3, 3)
	if c.Grid[0][0] != brailleBlank|0x1 {
		t.Errorf("unexpected cell %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != brailleBlank|0x80 {
		t.Errorf("unexpected cell %U", c.Grid[0][1])
	}
	if !c.IsSet(3, 3) || c.IsSet(2, 3) {
		t.Error("IsSet disagrees with Set")
	}

	c.Unset(3, 3)
	if c.Grid[0][1] != brailleBlank {
		t.Errorf("expected blank cell, got %U", c.Grid[0][1])
	}
}

func TestCanvas_OutOfBounds(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(4, 0)
	c.Set(0, 8)
	c.Unset(100, 100)

	if strings.Trim(c.String(), "⠀\n") != "" {
		t.Errorf("expected blank canvas, got %q", c.String())
	}
}

func TestCanvas_DrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0)
	for x := 0; x < 8; x++ {
		if !c.IsSet(x, 0) {
			t.Errorf("dot %d not set", x)
		}
	}

	c.Clear()
	c.DrawLine(0, 3, 3, 0)
	for i := 0; i < 4; i++ {
		if !c.IsSet(i, 3-i) {
			t.Errorf("diagonal dot %d not set", i)
		}
	}
}

func TestCanvas_DrawDisc(t *testing.T) {
	c := NewCanvas(5, 3)
	c.DrawDisc(5, 5, 2)

	if !c.IsSet(5, 5) || !c.IsSet(7, 5) || !c.IsSet(5, 3) {
		t.Error("disc missing points")
	}
	if c.IsSet(7, 7) {
		t.Error("corner outside radius should be clear")
	}
}

func TestViewport_Project(t *testing.T) {
	c := NewCanvas(40, 10) // 80 x 40 dots
	v := Viewport{HalfExtent: 100}

	x, y, ok := v.Project(c, dynamo.Zero)
	if !ok || x != 40 || y != 20 {
		t.Errorf("origin projected to (%d, %d, %v)", x, y, ok)
	}

	x, y, ok = v.Project(c, dynamo.V(50, 50))
	if !ok || x != 50 || y != 10 {
		t.Errorf("(50, 50) projected to (%d, %d, %v)", x, y, ok)
	}

	if _, _, ok := v.Project(c, dynamo.V(0, 1000)); ok {
		t.Error("point beyond the edge should not project")
	}
	if _, _, ok := v.Project(c, dynamo.V(nan(), 0)); ok {
		t.Error("non-finite point should not project")
	}
}

func TestFitViewport(t *testing.T) {
	v := FitViewport([]dynamo.Vec2{dynamo.Zero, dynamo.V(-3e11, 1e11), dynamo.V(inf(), 0)})
	if v.HalfExtent != 3e11*1.15 {
		t.Errorf("unexpected extent %g", v.HalfExtent)
	}

	if FitViewport(nil).HalfExtent <= 0 {
		t.Error("empty fit should still have an extent")
	}

	if z := v.Zoom(0.5); z.HalfExtent != v.HalfExtent/2 {
		t.Errorf("zoom gave %g", z.HalfExtent)
	}
}
