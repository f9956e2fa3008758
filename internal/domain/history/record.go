package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/darkwatch/internal/domain/classifier"
)

// NewRecord builds a Record from a classification result plus call context.
// Pure except for the generated id; the caller supplies the creation time.
func NewRecord(res *classifier.Result, source, text string, now time.Time) *Record {
	keywords := res.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return &Record{
		ID:             RecordID(uuid.New().String()),
		Source:         source,
		Preview:        preview(text),
		FullText:       text,
		Category:       res.Category,
		Severity:       SeverityOf(res.Category, res.Confidence),
		Confidence:     res.Confidence,
		Keywords:       append([]string(nil), keywords...),
		Probabilities:  res.Probabilities,
		Date:           now,
		ModelUsed:      res.ModelType,
		ProcessingTime: res.ProcessingTime,
	}
}

// preview keeps the first PreviewLen characters plus an ellipsis marker.
func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= PreviewLen {
		return text
	}
	return string(runes[:PreviewLen]) + "..."
}
