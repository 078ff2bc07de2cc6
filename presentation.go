package studypal

// PresentationMessage is a sealed interface representing one inbound
// message on a presentation feed.
type PresentationMessage interface {
	presentationMessage()
}

// PresentationProgress reports overall progress in percent.
type PresentationProgress struct {
	Progress int
	Message  string
	Step     string
}

func (PresentationProgress) presentationMessage() {}

// Image generation states reported by ImageStatus.
const (
	ImageGenerating = "generating"
	ImageCompleted  = "completed"
	ImageFailed     = "failed"
)

// ImageStatus reports image generation for a single slide.
type ImageStatus struct {
	SlideNumber int
	Status      string
	Thumbnail   string
}

func (ImageStatus) presentationMessage() {}

// SlidePreview describes a slide as soon as its outline is ready.
type SlidePreview struct {
	SlideNumber int
	Title       string
	Points      []string
	Thumbnail   string
	Status      string
}

func (SlidePreview) presentationMessage() {}

// SlideCompleted signals that a slide is final.
type SlideCompleted struct {
	Title string
}

func (SlideCompleted) presentationMessage() {}

// PresentationCreated carries the URL of the created (still empty) deck.
type PresentationCreated struct {
	URL string
}

func (PresentationCreated) presentationMessage() {}

// PresentationCompleted ends a successful run.
type PresentationCompleted struct {
	Title       string
	URL         string
	EmbedURL    string
	TotalSlides int
	Message     string
}

func (PresentationCompleted) presentationMessage() {}

// PresentationError ends a failed run.
type PresentationError struct {
	Message string
}

func (PresentationError) presentationMessage() {}

// Interface compliance checks.
var (
	_ PresentationMessage = PresentationProgress{}
	_ PresentationMessage = ImageStatus{}
	_ PresentationMessage = SlidePreview{}
	_ PresentationMessage = SlideCompleted{}
	_ PresentationMessage = PresentationCreated{}
	_ PresentationMessage = PresentationCompleted{}
	_ PresentationMessage = PresentationError{}
)
