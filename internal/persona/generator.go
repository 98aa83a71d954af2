// File path: internal/persona/generator.go
package persona

import (
	"context"
	"fmt"

	"github.com/sgci-marketing/persona-studio/internal/common"
	"github.com/sgci-marketing/persona-studio/internal/llm"
	"github.com/sgci-marketing/persona-studio/internal/segment"
	"github.com/sgci-marketing/persona-studio/internal/session"
)

// MaxTokens is the output ceiling for one persona completion.
const MaxTokens = 3000

// Outcome records the result of one generation attempt within a batch.
type Outcome struct {
	SegmentID int
	Text      string
	Err       error
}

// Generate produces the persona narrative for one segment and stores it on
// the session keyed by segment id, overwriting any prior persona for that
// id. On any provider error the stored persona is left untouched and the
// returned text is empty; callers must not treat that as an empty persona.
// The caller holds the session interaction lock.
func Generate(ctx context.Context, sess *session.Session, segID int) (string, error) {
	logger := common.Logger()
	if sess.Provider == nil {
		logger.Warn("persona: generation without configured client", "session", sess.ID, "segment", segID)
		return "", session.ErrNotConfigured
	}
	seg, ok := segment.ByID(sess.Segments, segID)
	if !ok {
		return "", fmt.Errorf("unknown segment id %d", segID)
	}
	catalogText := ""
	if sess.Catalog != nil {
		catalogText = sess.Catalog.Text
	}
	prompt := BuildPrompt(seg, catalogText)
	logger.Info("persona: generating", "session", sess.ID, "segment", segID, "model", sess.Model, "prompt_chars", len(prompt))
	text, err := sess.Provider.Complete(ctx, llm.Request{
		Model:     sess.Model,
		MaxTokens: MaxTokens,
		Messages:  []llm.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		logger.Error("persona: generation failed", "session", sess.ID, "segment", segID, "error", err)
		return "", err
	}
	sess.Personas[segID] = text
	logger.Info("persona: generated", "session", sess.ID, "segment", segID, "chars", len(text))
	return text, nil
}

// GenerateBatch runs Generate over the selection strictly sequentially, one
// completion call at a time. A failure on one segment never aborts the
// rest; every outcome is reported so the caller can surface per-segment
// progress.
func GenerateBatch(ctx context.Context, sess *session.Session, ids []int) []Outcome {
	outcomes := make([]Outcome, 0, len(ids))
	for _, id := range ids {
		text, err := Generate(ctx, sess, id)
		outcomes = append(outcomes, Outcome{SegmentID: id, Text: text, Err: err})
	}
	return outcomes
}
