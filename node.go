package studypal

// Node is a sealed interface representing one classified line of a rendered
// text blob. A fenced code block collapses its lines into one NodeCodeBlock.
// The unexported marker method prevents external implementations.
type Node interface {
	node()
}

// NodeCodeBlock holds the lines between an opening and a closing fence,
// joined with "\n". Fence lines are excluded.
type NodeCodeBlock struct {
	Language string
	Text     string
}

func (NodeCodeBlock) node() {}

// NodeBlank is an empty or whitespace-only line.
type NodeBlank struct{}

func (NodeBlank) node() {}

// NodeBoldHeader is a line wrapped in "**".
type NodeBoldHeader struct {
	Text string
}

func (NodeBoldHeader) node() {}

// NodeBullet is a "* " list item.
type NodeBullet struct {
	Text string
}

func (NodeBullet) node() {}

// NodeNumberedItem is a numbered list item. Marker keeps the trailing dot.
type NodeNumberedItem struct {
	Marker string
	Text   string
}

func (NodeNumberedItem) node() {}

// NodeImage is a line holding a valid image reference.
type NodeImage struct {
	Alt string
	Src string
}

func (NodeImage) node() {}

// NodeSectionHeader is a short colon-bearing line.
type NodeSectionHeader struct {
	Text string
}

func (NodeSectionHeader) node() {}

// NodePlain is any other line.
type NodePlain struct {
	Text string
}

func (NodePlain) node() {}

// Span is a sealed interface representing an inline piece of a line.
type Span interface {
	span()
}

// SpanText is formatted inline HTML.
type SpanText struct {
	HTML string
}

func (SpanText) span() {}

// SpanImage is an image reference embedded in a line.
type SpanImage struct {
	Alt string
	Src string
}

func (SpanImage) span() {}

// Interface compliance checks.
var (
	_ Node = NodeCodeBlock{}
	_ Node = NodeBlank{}
	_ Node = NodeBoldHeader{}
	_ Node = NodeBullet{}
	_ Node = NodeNumberedItem{}
	_ Node = NodeImage{}
	_ Node = NodeSectionHeader{}
	_ Node = NodePlain{}

	_ Span = SpanText{}
	_ Span = SpanImage{}
)
