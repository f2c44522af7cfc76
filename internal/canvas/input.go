package canvas

import (
	"time"
	"unicode/utf8"
)

// p5 key codes for the special keys sketches test against.
const (
	KeyBackspace  = 8
	KeyTab        = 9
	KeyEnter      = 13
	KeyShift      = 16
	KeyEscape     = 27
	KeySpace      = 32
	KeyLeftArrow  = 37
	KeyUpArrow    = 38
	KeyRightArrow = 39
	KeyDownArrow  = 40
	KeyDelete     = 46
)

// specialKeys maps terminal key names to p5's key and keyCode.
var specialKeys = map[string]struct {
	key  string
	code int
}{
	"left":      {"ArrowLeft", KeyLeftArrow},
	"right":     {"ArrowRight", KeyRightArrow},
	"up":        {"ArrowUp", KeyUpArrow},
	"down":      {"ArrowDown", KeyDownArrow},
	"enter":     {"Enter", KeyEnter},
	"esc":       {"Escape", KeyEscape},
	"backspace": {"Backspace", KeyBackspace},
	"tab":       {"Tab", KeyTab},
	"delete":    {"Delete", KeyDelete},
	" ":         {" ", KeySpace},
	"space":     {" ", KeySpace},
}

// TranslateKey converts a terminal key name (as bubbletea reports it) into
// p5's key and keyCode. ok is false for keys a sketch cannot see, such as
// modifier combinations.
func TranslateKey(name string) (key string, code int, ok bool) {
	if special, found := specialKeys[name]; found {
		return special.key, special.code, true
	}
	if utf8.RuneCountInString(name) != 1 {
		return "", 0, false
	}
	r, _ := utf8.DecodeRuneInString(name)
	code = int(r)
	if r >= 'a' && r <= 'z' {
		code = int(r - 'a' + 'A')
	}
	return name, code, true
}

// PressKey records a key press for the next event and for keyIsDown.
func (c *Canvas) PressKey(key string, code int) {
	c.input.Key = key
	c.input.KeyCode = code
	c.input.KeyPressed = true
	c.held[code] = c.now()
	c.publish()
}

// ReleaseKeys clears the transient key flag after delivery.
func (c *Canvas) ReleaseKeys() {
	c.input.ReleaseKey()
}

func (c *Canvas) keyHeld(code int, now time.Time) bool {
	at, ok := c.held[code]
	return ok && now.Sub(at) <= keyHold
}

func (c *Canvas) anyKeyHeld(now time.Time) bool {
	for _, at := range c.held {
		if now.Sub(at) <= keyHold {
			return true
		}
	}
	return false
}

// MoveMouse places the pointer at a screen cell, converted to the centre of
// that cell in logical pixels.
func (c *Canvas) MoveMouse(col, row int) {
	if c.screen.Width() > 0 {
		c.input.MouseX = (float64(col) + 0.5) * c.width / float64(c.screen.Width())
	}
	if c.screen.Height() > 0 {
		c.input.MouseY = (float64(row) + 0.5) * c.height / float64(c.screen.Height())
	}
	c.publish()
}

// SetMousePressed records the primary button state.
func (c *Canvas) SetMousePressed(pressed bool) {
	c.input.MousePressed = pressed
	c.publish()
}
