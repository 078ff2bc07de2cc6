// Package markdown classifies assistant replies line by line and formats
// the inline markup inside each line.
//
// It understands the small markdown dialect the backend produces, not
// CommonMark: fenced code blocks, "**" header lines, "* " bullets, numbered
// items, image lines and colon-bearing section headers. Parse returns
// [studypal.Node] values; views render them, calling FormatInline for the
// text of each line.
package markdown

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/studypal"
)

const (
	fence = "```"

	// maxSectionHeader is the exclusive upper bound on the length of a line
	// classified as a section header.
	maxSectionHeader = 100
)

// Parse splits text into lines and classifies each one. Output order follows
// input order. A fenced block becomes a single NodeCodeBlock; a block whose
// closing fence never arrives is dropped. A trailing newline does not
// produce a final NodeBlank.
func Parse(text string) []studypal.Node {
	if text == "" {
		return nil
	}

	var (
		nodes   []studypal.Node
		inFence bool
		lang    string
		code    []string
	)
	for _, raw := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		line := strings.TrimSpace(raw)

		if strings.HasPrefix(line, fence) {
			if inFence {
				nodes = append(nodes, studypal.NodeCodeBlock{Language: lang, Text: strings.Join(code, "\n")})
				inFence, lang, code = false, "", nil
			} else {
				inFence, lang = true, strings.TrimSpace(line[len(fence):])
			}
			continue
		}
		if inFence {
			code = append(code, raw)
			continue
		}

		if n := classify(line); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// classify maps a trimmed line outside a code fence to a node. The first
// matching rule wins. It returns nil for image lines whose reference is
// malformed or whose source is not a valid image; such lines are dropped.
func classify(line string) studypal.Node {
	switch {
	case line == "":
		return studypal.NodeBlank{}

	case len(line) >= 4 && strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**"):
		return studypal.NodeBoldHeader{Text: line[2 : len(line)-2]}

	case strings.HasPrefix(line, "* "):
		return studypal.NodeBullet{Text: line[2:]}
	}

	if marker, rest, ok := numbered(line); ok {
		return studypal.NodeNumberedItem{Marker: marker, Text: strings.TrimLeftFunc(rest, unicode.IsSpace)}
	}

	if strings.Contains(line, "![") && strings.Contains(line, "](") {
		img, ok := findImage(line, 0)
		if !ok || !studypal.ValidImageSource(img.src) {
			return nil
		}
		return studypal.NodeImage{Alt: imageAlt(img.alt), Src: img.src}
	}

	if strings.Contains(line, ":") && utf8.RuneCountInString(line) < maxSectionHeader && !strings.Contains(line, "http") {
		return studypal.NodeSectionHeader{Text: line}
	}

	return studypal.NodePlain{Text: line}
}

// numbered splits "42. text" into "42." and " text".
func numbered(line string) (marker, rest string, ok bool) {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) || line[i] != '.' {
		return "", "", false
	}
	return line[:i+1], line[i+1:], true
}

func imageAlt(alt string) string {
	if alt == "" {
		return studypal.DefaultImageAlt
	}
	return alt
}
