package pipeline

import (
	"fmt"

	"github.com/nikhilbhutani/voicechat/internal/apperr"
	"github.com/nikhilbhutani/voicechat/internal/provider"
)

// Texts of the result returned when a run cannot complete.
const (
	ErrorUserText       = "Error processing voice"
	errorResponsePrefix = "Sorry, I encountered an error: "
)

// Result is the outcome of one voice exchange. UserText and ResponseText are
// always populated; ResponseAudio is empty when synthesis was degraded.
type Result struct {
	ExchangeID    string
	UserText      string
	ResponseText  string
	ResponseAudio []byte
	// Degraded lists steps that fell back, as "step:status".
	Degraded []string
	// Err is set only for error results.
	Err error
}

// Failed reports whether the run ended in an error result.
func (r Result) Failed() bool { return r.Err != nil }

func errorResult(exchangeID string, err error) Result {
	return Result{
		ExchangeID:   exchangeID,
		UserText:     ErrorUserText,
		ResponseText: errorResponsePrefix + apperr.MessageOf(err),
		Err:          err,
	}
}

func (r *Result) noteStatus(step string, st provider.Status) {
	if st.Degraded() {
		r.Degraded = append(r.Degraded, fmt.Sprintf("%s:%s", step, st))
	}
}

// LanguageCheck is the outcome of a text-only round trip through translation,
// generation and synthesis.
type LanguageCheck struct {
	OriginalText   string
	TranslatedText string
	AIResponse     string
	AudioGenerated bool
	SourceLanguage string
	TargetLanguage string
	Degraded       []string
	Err            error
}

func (c *LanguageCheck) noteStatus(step string, st provider.Status) {
	if st.Degraded() {
		c.Degraded = append(c.Degraded, fmt.Sprintf("%s:%s", step, st))
	}
}
