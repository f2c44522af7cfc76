package gamespec

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// schemaSource is the shape contract for GameSpec documents. Definitions are
// closed, so unknown top-level keys are rejected.
const schemaSource = `
#GameSpec: {
	title?:        string
	initialState:  {...}
	setup?:        string
	update:        string
	draw:          string
	mousePressed?: string
	keyPressed?:   string
	touchStarted?: string
	touchEnded?:   string
}
`

// ShapeError lists every way a document deviates from the GameSpec shape.
type ShapeError struct {
	Issues []string
}

func (e *ShapeError) Error() string {
	return "gamespec: invalid shape: " + strings.Join(e.Issues, "; ")
}

// Validate checks a JSON document against the GameSpec schema.
// It returns a *ShapeError for shape violations.
func Validate(data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("gamespec.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("gamespec: schema does not compile: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#GameSpec"))

	doc := ctx.CompileBytes(data, cue.Filename("gamespec.json"))
	if err := doc.Err(); err != nil {
		return &ShapeError{Issues: issues(err)}
	}

	if err := def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return &ShapeError{Issues: issues(err)}
	}
	return nil
}

func issues(err error) []string {
	var out []string
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)
		if path := strings.Join(e.Path(), "."); path != "" {
			msg = path + ": " + msg
		}
		out = append(out, msg)
	}
	if len(out) == 0 {
		out = append(out, err.Error())
	}
	return out
}
