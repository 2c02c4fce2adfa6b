// Package translate converts text between supported languages through a
// machine-translation backend.
package translate

import "context"

// Request asks for Text to be translated into Target. An empty Source lets
// the backend detect the language.
type Request struct {
	Text   string
	Target string
	Source string
}

type Response struct {
	Text           string `json:"text"`
	DetectedSource string `json:"detected_source,omitempty"`
}

// Provider is implemented by every translation backend.
type Provider interface {
	Translate(ctx context.Context, req Request) (*Response, error)
	Name() string
}
