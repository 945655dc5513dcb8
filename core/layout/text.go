package layout

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// Text is the parsed text of a legend: a list of lines without markup.
type Text struct {
	lines []string
}

// ParseText parses legend text as found in KLE documents. Line breaks are
// given as "\n" or as <br> tags; all other tags are dropped and character
// entities are decoded. Lines are NFC-normalized.
func ParseText(markup string) Text {
	var lines []string
	var line strings.Builder
	flush := func() {
		lines = append(lines, norm.NFC.String(line.String()))
		line.Reset()
	}
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				tracer().Debugf("legend text %q: %v", markup, z.Err())
			}
			flush()
			return trimTrailingEmpty(lines)
		case html.TextToken:
			for i, part := range strings.Split(string(z.Text()), "\n") {
				if i > 0 {
					flush()
				}
				line.WriteString(part)
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "br" {
				flush()
			}
		}
	}
}

func trimTrailingEmpty(lines []string) Text {
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return Text{lines: lines}
}

// Lines returns the lines of t.
func (t Text) Lines() []string {
	return append([]string(nil), t.lines...)
}

// IsEmpty is true for a text without visible content.
func (t Text) IsEmpty() bool {
	return len(t.lines) == 0
}

// String returns the lines of t separated by "\n".
func (t Text) String() string {
	return strings.Join(t.lines, "\n")
}

// Markup returns t in the markup ParseText accepts, lines separated by <br>.
func (t Text) Markup() string {
	escaped := make([]string, len(t.lines))
	for i, l := range t.lines {
		escaped[i] = html.EscapeString(l)
	}
	return strings.Join(escaped, "<br>")
}
