package a2a

/*
Part is one piece of message or artifact content. Only text parts are
produced by this agent; other kinds are accepted on ingress and ignored.
*/
type Part struct {
	Kind PartKind `json:"kind"`
	Text string   `json:"text,omitempty"`

	Data     map[string]any `json:"data,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// PartKind is the discriminator for a Part.
type PartKind string

const (
	PartKindText PartKind = "text"
	PartKindFile PartKind = "file"
	PartKindData PartKind = "data"
)

func NewTextPart(text string) Part {
	return Part{
		Kind: PartKindText,
		Text: text,
	}
}
