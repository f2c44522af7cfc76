package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	// Check that it's initialized with spaces
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Errorf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')  // Should not panic
	s.Set(100, 0, 'A') // Should not panic
	s.Set(0, -1, 'A')  // Should not panic
	s.Set(0, 100, 'A') // Should not panic

	// Out of bounds get should return space
	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)

	// Fill with some characters
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			s.Set(x, y, 'X')
		}
	}

	s.Clear()

	// Should all be spaces now
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if s.Get(x, y) != ' ' {
				t.Errorf("After Clear, expected space at (%d, %d), got %q", x, y, s.Get(x, y))
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	expected := "Hello"
	for i, ch := range expected {
		if s.Get(2+i, 1) != ch {
			t.Errorf("DrawText: expected %q at (%d, 1), got %q", ch, 2+i, s.Get(2+i, 1))
		}
	}

	// Text should be clipped at boundaries
	s.DrawText(18, 0, "Hello") // Only "He" should fit
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.Paint(ColorNavy)
	s.DrawRect(NewRect(2, 2, 3, 3), Cell{Rune: '#', Fg: ColorRed})

	// Check filled area
	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			c := s.GetCell(x, y)
			if c.Rune != '#' || c.Fg != ColorRed {
				t.Errorf("DrawRect: expected red '#' at (%d, %d), got %+v", x, y, c)
			}
			if c.Bg != ColorNavy {
				t.Errorf("DrawRect: background at (%d, %d) = %v, expected it kept", x, y, c.Bg)
			}
		}
	}

	// Check outside is still space
	if s.Get(1, 1) != ' ' {
		t.Error("DrawRect should not affect outside area")
	}
	if s.Get(5, 5) != ' ' {
		t.Error("DrawRect should not affect outside area")
	}

	// Clipped at the edges
	s.DrawRect(NewRect(8, 8, 5, 5), Cell{Rune: '%'})
	if s.Get(9, 9) != '%' {
		t.Error("DrawRect should draw the visible part of a clipped rect")
	}
}

func TestScreenDrawHugeShapes(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawRect(NewRect(-1<<29, -1<<29, 1<<30, 1<<30), Cell{Rune: '#'})
	s.DrawHLine(-1<<29, 0, 1<<30, Cell{Rune: '-'})
	s.DrawVLine(3, -1<<29, 1<<30, Cell{Rune: '|'})

	expected := "---|\n###|\n###|"
	if got := s.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
}

func TestScreenBounds(t *testing.T) {
	s := NewScreen(12, 7)
	b := s.Bounds()

	if b.X != 0 || b.Y != 0 || b.W != 12 || b.H != 7 {
		t.Errorf("Bounds() = %+v, expected 12x7 at origin", b)
	}
	if !b.Contains(11, 6) || b.Contains(12, 6) {
		t.Error("Bounds() should contain exactly the screen cells")
	}
}

func TestScreenDrawHLine(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawHLine(2, 2, 5, Cell{Rune: '-'})

	for x := 2; x < 7; x++ {
		if s.Get(x, 2) != '-' {
			t.Errorf("DrawHLine: expected '-' at (%d, 2), got %q", x, s.Get(x, 2))
		}
	}
	if s.Get(7, 2) != ' ' {
		t.Error("DrawHLine drew past its length")
	}
}

func TestScreenDrawVLine(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawVLine(3, 2, 4, Cell{Rune: '|'})

	for y := 2; y < 6; y++ {
		if s.Get(3, y) != '|' {
			t.Errorf("DrawVLine: expected '|' at (3, %d), got %q", y, s.Get(3, y))
		}
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	result := s.String()
	expected := "AAAAA\nBBBBB\nCCCCC"

	if result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")
	s.DrawText(0, 5, "World")

	// Resize smaller - should preserve top-left content
	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}

	row0 := s.Row(0)
	if !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", row0)
	}

	// Resize larger - old content should still be there
	s.Resize(15, 8)
	row0 = s.Row(0)
	if !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", row0)
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawText(0, 2, "Test")

	row := s.Row(2)
	if !strings.HasPrefix(row, "Test") {
		t.Errorf("Row(2) should start with 'Test', got %q", row)
	}
	if len(row) != 10 {
		t.Errorf("Row length should be 10, got %d", len(row))
	}

	// Out of bounds row
	outOfBounds := s.Row(-1)
	if outOfBounds != "          " {
		t.Errorf("Out of bounds row should be spaces, got %q", outOfBounds)
	}
}

func TestScreenPaintAndSetCell(t *testing.T) {
	s := NewScreen(4, 2)
	s.Paint(ColorNavy)

	// A cell drawn without a background keeps the painted one
	s.SetCell(1, 0, Cell{Rune: '@', Fg: ColorYellow})
	c := s.GetCell(1, 0)
	if c.Rune != '@' || c.Fg != ColorYellow || c.Bg != ColorNavy {
		t.Errorf("GetCell(1, 0) = %+v, expected '@' yellow on navy", c)
	}

	// Explicit background wins
	s.SetCell(2, 0, Cell{Rune: '#', Fg: ColorWhite, Bg: ColorRed})
	if s.GetCell(2, 0).Bg != ColorRed {
		t.Errorf("explicit background should be kept, got %v", s.GetCell(2, 0).Bg)
	}

	// Out of bounds is blank and silent
	s.SetCell(10, 10, Cell{Rune: 'X'})
	if s.GetCell(10, 10).Rune != ' ' {
		t.Error("out of bounds GetCell should return a blank cell")
	}

	s.Clear()
	if s.GetCell(1, 0) != (Cell{Rune: ' '}) {
		t.Errorf("Clear should reset colours, got %+v", s.GetCell(1, 0))
	}
}

func TestScreenDrawTextColor(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextColor(1, 0, "héllo", ColorGreen)

	if s.Row(0) != " héllo    " {
		t.Errorf("Row(0) = %q", s.Row(0))
	}
	if s.GetCell(3, 0).Fg != ColorGreen {
		t.Errorf("text colour = %v, expected green", s.GetCell(3, 0).Fg)
	}
}

func TestNewScreenNegativeSize(t *testing.T) {
	s := NewScreen(-3, -1)
	if s.Width() != 0 || s.Height() != 0 {
		t.Errorf("negative sizes should clamp to 0, got %dx%d", s.Width(), s.Height())
	}
	if s.String() != "" {
		t.Errorf("empty screen String() = %q", s.String())
	}
}
