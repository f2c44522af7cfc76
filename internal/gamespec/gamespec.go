// Package gamespec defines GameSpec, the JSON game description consumed by the
// synthesizer and the runner: an initial state plus fragments of behaviour
// code. A fragment is the body of a function of (state, p); it is carried as
// inert text and only ever compiled by a runner at bootstrap.
package gamespec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vovakirdan/sketch-arcade/internal/core"
)

// GameSpec is immutable once loaded. Nothing in this module mutates one.
type GameSpec struct {
	Title        string         `json:"title,omitempty"`
	InitialState map[string]any `json:"initialState"`
	Setup        string         `json:"setup,omitempty"`
	Update       string         `json:"update"`
	Draw         string         `json:"draw"`
	MousePressed string         `json:"mousePressed,omitempty"`
	KeyPressed   string         `json:"keyPressed,omitempty"`
	TouchStarted string         `json:"touchStarted,omitempty"`
	TouchEnded   string         `json:"touchEnded,omitempty"`

	// rawState is initialState as written, compacted. It keeps the author's
	// key order, which JS code can observe through Object.keys and for-in.
	rawState json.RawMessage
}

// Fragment is a named piece of behaviour code taken from a GameSpec.
type Fragment struct {
	Name string
	Kind core.EventKind // EventNone for setup/update/draw
	Body string
}

// Present reports whether a fragment carries code. Empty and whitespace-only
// fragments count as absent and are never registered.
func Present(body string) bool {
	return strings.TrimSpace(body) != ""
}

// Handler returns the fragment text for an input event kind, "" if none.
func (g *GameSpec) Handler(kind core.EventKind) string {
	switch kind {
	case core.EventMousePressed:
		return g.MousePressed
	case core.EventKeyPressed:
		return g.KeyPressed
	case core.EventTouchStarted:
		return g.TouchStarted
	case core.EventTouchEnded:
		return g.TouchEnded
	default:
		return ""
	}
}

// Handlers returns the present input handlers in core.EventKinds order.
func (g *GameSpec) Handlers() []Fragment {
	var out []Fragment
	for _, kind := range core.EventKinds {
		body := g.Handler(kind)
		if !Present(body) {
			continue
		}
		out = append(out, Fragment{Name: kind.String(), Kind: kind, Body: body})
	}
	return out
}

// DisplayTitle returns the title or a fallback for untitled specs.
func (g *GameSpec) DisplayTitle() string {
	if t := strings.TrimSpace(g.Title); t != "" {
		return t
	}
	return "Untitled sketch"
}

// StateJSON returns the compact JSON encoding of initialState. A parsed
// GameSpec re-emits the source text with keys in their original order; one
// built in code falls back to encoding/json. A missing initialState encodes
// as an empty object.
func (g *GameSpec) StateJSON() ([]byte, error) {
	if len(g.rawState) > 0 {
		return bytes.Clone(g.rawState), nil
	}
	if g.InitialState == nil {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(g.InitialState)
	if err != nil {
		return nil, fmt.Errorf("gamespec: cannot encode initialState: %w", err)
	}
	return data, nil
}

// echo mirrors GameSpec with initialState carried as raw JSON.
type echo struct {
	Title        string          `json:"title,omitempty"`
	InitialState json.RawMessage `json:"initialState"`
	Setup        string          `json:"setup,omitempty"`
	Update       string          `json:"update"`
	Draw         string          `json:"draw"`
	MousePressed string          `json:"mousePressed,omitempty"`
	KeyPressed   string          `json:"keyPressed,omitempty"`
	TouchStarted string          `json:"touchStarted,omitempty"`
	TouchEnded   string          `json:"touchEnded,omitempty"`
}

// Pretty returns the two-space indented echo of the GameSpec used for inspection.
// HTML characters are kept literal so code fragments stay readable.
func (g *GameSpec) Pretty() ([]byte, error) {
	state, err := g.StateJSON()
	if err != nil {
		return nil, err
	}
	doc := echo{
		Title:        g.Title,
		InitialState: state,
		Setup:        g.Setup,
		Update:       g.Update,
		Draw:         g.Draw,
		MousePressed: g.MousePressed,
		KeyPressed:   g.KeyPressed,
		TouchStarted: g.TouchStarted,
		TouchEnded:   g.TouchEnded,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("gamespec: cannot encode spec: %w", err)
	}
	return buf.Bytes(), nil
}

// Parse decodes a GameSpec from JSON. Numbers keep their literal text, and
// the initialState text is kept as written so re-emission is lossless. Shape
// checking is Validate's job; Parse only rejects documents that are not a
// JSON object.
func Parse(data []byte) (*GameSpec, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var spec GameSpec
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("gamespec: cannot parse: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("gamespec: cannot parse: trailing data after document")
	}

	var raw struct {
		InitialState json.RawMessage `json:"initialState"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("gamespec: cannot parse: %w", err)
	}
	if len(raw.InitialState) > 0 && !bytes.Equal(raw.InitialState, []byte("null")) {
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw.InitialState); err != nil {
			return nil, fmt.Errorf("gamespec: cannot parse initialState: %w", err)
		}
		spec.rawState = buf.Bytes()
	}
	return &spec, nil
}
