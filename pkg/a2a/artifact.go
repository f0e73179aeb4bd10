package a2a

import "github.com/google/uuid"

/*
Artifact is a named bundle of output parts produced by one agent invocation.
*/
type Artifact struct {
	ArtifactID  string         `json:"artifactId"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parts       []Part         `json:"parts"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

func NewArtifact(name string, parts ...Part) Artifact {
	if parts == nil {
		parts = []Part{}
	}

	return Artifact{
		ArtifactID: uuid.NewString(),
		Name:       name,
		Parts:      parts,
	}
}

func NewTextArtifact(name, text string) Artifact {
	return NewArtifact(name, NewTextPart(text))
}
