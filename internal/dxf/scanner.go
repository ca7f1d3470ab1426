package dxf

import (
	"fmt"
	"strconv"
	"strings"
)

// tag is one DXF group code / value pair. DXF text is a flat stream of
// these pairs: the group code on one line, the value on the next.
type tag struct {
	code  int
	value string
}

// scanTags tokenizes raw DXF text into tag pairs.
func scanTags(text string) ([]tag, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	// A trailing newline leaves one empty line behind; drop it so it
	// doesn't desync the code/value pairing.
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedInput)
	}
	if len(lines)%2 != 0 {
		return nil, fmt.Errorf("%w: truncated tag pair at end of input", ErrMalformedInput)
	}

	tags := make([]tag, 0, len(lines)/2)
	for i := 0; i < len(lines); i += 2 {
		code, err := strconv.Atoi(strings.TrimSpace(lines[i]))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid group code %q on line %d", ErrMalformedInput, strings.TrimSpace(lines[i]), i+1)
		}
		tags = append(tags, tag{code: code, value: strings.TrimSpace(lines[i+1])})
	}
	return tags, nil
}
