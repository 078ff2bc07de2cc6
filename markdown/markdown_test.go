package markdown_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/studypal"
	"github.com/fwojciec/studypal/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_BoldHeaderAndInlineCode(t *testing.T) {
	t.Parallel()

	nodes := markdown.Parse("**Title**\n\nSome `code` here.\n")
	require.Equal(t, []studypal.Node{
		studypal.NodeBoldHeader{Text: "Title"},
		studypal.NodeBlank{},
		studypal.NodePlain{Text: "Some `code` here."},
	}, nodes)

	spans := markdown.FormatInline(nodes[2].(studypal.NodePlain).Text)
	assert.Equal(t, []studypal.Span{
		studypal.SpanText{HTML: "Some <code>code</code> here."},
	}, spans)
}

func TestParse_ImageLine(t *testing.T) {
	t.Parallel()

	src := "data:image/png;base64,iVBORw0KGgo="
	assert.Equal(t, []studypal.Node{
		studypal.NodeImage{Alt: "Generated Image", Src: src},
	}, markdown.Parse("![Generated Image]("+src+")"))

	t.Run("empty alt gets default", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []studypal.Node{
			studypal.NodeImage{Alt: studypal.DefaultImageAlt, Src: "https://example.com/a.png"},
		}, markdown.Parse("![](https://example.com/a.png)"))
	})

	t.Run("invalid source drops the line", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []studypal.Node{
			studypal.NodePlain{Text: "before"},
			studypal.NodePlain{Text: "after"},
		}, markdown.Parse("before\n![x](notaurl)\nafter"))
	})

	t.Run("unmatched reference drops the line", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, markdown.Parse("see ![broken]( and ]( here"))
	})
}

func TestParse_CodeBlock(t *testing.T) {
	t.Parallel()

	body := "func main() {\n\tfmt.Println(\"**not bold**\")\n\n  // 1. not a list\n}"
	nodes := markdown.Parse("Intro\n  ```go  \n" + body + "\n```\nOutro")

	require.Equal(t, []studypal.Node{
		studypal.NodePlain{Text: "Intro"},
		studypal.NodeCodeBlock{Language: "go", Text: body},
		studypal.NodePlain{Text: "Outro"},
	}, nodes)
}

func TestParse_UnclosedFenceIsDropped(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []studypal.Node{
		studypal.NodePlain{Text: "Intro"},
	}, markdown.Parse("Intro\n```python\nprint(1)"))
}

func TestParse_Lines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want studypal.Node
	}{
		{"   ", studypal.NodeBlank{}},
		{"  **Photosynthesis**  ", studypal.NodeBoldHeader{Text: "Photosynthesis"}},
		{"****", studypal.NodeBoldHeader{Text: ""}},
		{"***", studypal.NodePlain{Text: "***"}},
		{"* chlorophyll absorbs light", studypal.NodeBullet{Text: "chlorophyll absorbs light"}},
		{"*not a bullet*", studypal.NodePlain{Text: "*not a bullet*"}},
		{"42. text", studypal.NodeNumberedItem{Marker: "42.", Text: "text"}},
		{"3.no space", studypal.NodeNumberedItem{Marker: "3.", Text: "no space"}},
		{"7.", studypal.NodeNumberedItem{Marker: "7.", Text: ""}},
		{"Definition: a process", studypal.NodeSectionHeader{Text: "Definition: a process"}},
		{"Source: https://example.com", studypal.NodePlain{Text: "Source: https://example.com"}},
		{"Note: " + strings.Repeat("x", 94), studypal.NodePlain{Text: "Note: " + strings.Repeat("x", 94)}},
		{"Note: " + strings.Repeat("x", 93), studypal.NodeSectionHeader{Text: "Note: " + strings.Repeat("x", 93)}},
		{"use `go test` here", studypal.NodePlain{Text: "use `go test` here"}},
		{"just words", studypal.NodePlain{Text: "just words"}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, []studypal.Node{tt.want}, markdown.Parse(tt.line))
		})
	}
}

func TestParse_ImageLineWinsOverSectionHeader(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []studypal.Node{
		studypal.NodeImage{Alt: "diagram", Src: "https://example.com/d.png"},
	}, markdown.Parse("Figure: ![diagram](https://example.com/d.png) shown"))
}

func TestParse_Idempotent(t *testing.T) {
	t.Parallel()

	lines := []string{
		"**Cell Division**",
		"",
		"Mitosis has phases:",
		"* prophase",
		"1. chromosomes condense",
		"![Generated Image](https://example.com/m.png)",
		"Read [more](https://example.com) and `notes`.",
	}
	whole := markdown.Parse(strings.Join(lines, "\n"))

	var perLine []studypal.Node
	for _, l := range lines {
		if l == "" {
			perLine = append(perLine, studypal.NodeBlank{})
			continue
		}
		perLine = append(perLine, markdown.Parse(l)...)
	}
	assert.Equal(t, perLine, whole)
	assert.Equal(t, whole, markdown.Parse(strings.Join(lines, "\n")))
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	assert.Nil(t, markdown.Parse(""))
	assert.Equal(t, []studypal.Node{studypal.NodeBlank{}}, markdown.Parse("\n"))
}
