package synth

import (
	"encoding/json"
	"fmt"
)

// literal encodes s as a JavaScript string literal. The encoding is JSON's:
// quotes, backslashes and control characters are escaped, and so are <, >, &,
// U+2028 and U+2029, so the literal is inert inside a script element and in
// every ECMAScript edition. Backticks and ${ pass through as plain characters
// of a double-quoted string and are never interpolated.
func literal(s string) string {
	data, err := json.Marshal(s)
	if err != nil {
		// Marshalling a string cannot fail
		panic(fmt.Sprintf("synth: encode string literal: %v", err))
	}
	return string(data)
}
