// File path: internal/chat/orchestrator.go
package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sgci-marketing/persona-studio/internal/common"
	"github.com/sgci-marketing/persona-studio/internal/llm"
	"github.com/sgci-marketing/persona-studio/internal/segment"
	"github.com/sgci-marketing/persona-studio/internal/session"
)

// MaxTokens is the output ceiling for one assistant reply.
const MaxTokens = 2000

// PersonaContextBudget caps each persona excerpt embedded in the system
// context; CatalogContextBudget caps the catalog excerpt. Both are hard
// character slices.
const (
	PersonaContextBudget = 2000
	CatalogContextBudget = 8000
)

const systemPreamble = "Tu es un expert en marketing bancaire et segmentation client de Societe Generale Cote d'Ivoire."

const systemPostamble = "Utilise ces informations pour repondre aux questions. Recommande des produits specifiques avec tarifs quand le catalogue est disponible."

// BuildSystemContext assembles the grounding context for the assistant:
// every generated persona, a compact line per segment, and the catalog
// excerpt or an absence note.
func BuildSystemContext(sess *session.Session) string {
	var b strings.Builder
	b.WriteString(systemPreamble)
	b.WriteString("\n\n")

	b.WriteString("PERSONAS GENERES:\n")
	if len(sess.Personas) == 0 {
		b.WriteString("Aucun persona genere.")
	} else {
		ids := make([]int, 0, len(sess.Personas))
		for id := range sess.Personas {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			name := segment.NotAvailable
			if seg, ok := segment.ByID(sess.Segments, id); ok {
				name = seg.Name
			}
			fmt.Fprintf(&b, "\n--- Cluster %d: %s ---\n%s...\n", id, name, truncate(sess.Personas[id], PersonaContextBudget))
		}
	}

	b.WriteString("\n\nSEGMENTS:\n")
	for _, seg := range sess.Segments {
		fmt.Fprintf(&b, "- ID: %d, Nom: %s, Age: %s, Produits: %s, Revenu H: %s, Revenu F: %s\n",
			seg.ID,
			segment.Display(seg.Name),
			segment.Display(seg.Age),
			segment.Display(seg.NbProducts),
			segment.Display(seg.RevenueHommes),
			segment.Display(seg.RevenueFemmes),
		)
	}

	if sess.Catalog != nil {
		fmt.Fprintf(&b, "\n\nCATALOGUE PRODUITS:\n%s", truncate(sess.Catalog.Text, CatalogContextBudget))
	} else {
		b.WriteString("\n\nNote: Aucun catalogue produits charge.")
	}

	b.WriteString("\n\n")
	b.WriteString(systemPostamble)
	return b.String()
}

// Send appends the user's turn to the transcript, runs one completion over
// the full transcript behind a fresh system context, and on success appends
// the assistant's reply. On failure the user turn stays as the last entry
// so the conversation remains continuable. The caller holds the session
// interaction lock.
func Send(ctx context.Context, sess *session.Session, text string) (string, error) {
	logger := common.Logger()
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("message required")
	}
	if sess.Provider == nil {
		logger.Warn("chat: message without configured client", "session", sess.ID)
		return "", session.ErrNotConfigured
	}
	sess.Transcript = append(sess.Transcript, llm.Message{Role: "user", Content: text})

	messages := make([]llm.Message, 0, len(sess.Transcript)+1)
	messages = append(messages, llm.Message{Role: "system", Content: BuildSystemContext(sess)})
	messages = append(messages, sess.Transcript...)

	logger.Info("chat: sending turn", "session", sess.ID, "model", sess.Model, "transcript", len(sess.Transcript))
	reply, err := sess.Provider.Complete(ctx, llm.Request{
		Model:     sess.Model,
		MaxTokens: MaxTokens,
		Messages:  messages,
	})
	if err != nil {
		logger.Error("chat: completion failed", "session", sess.ID, "error", err)
		return "", err
	}
	sess.Transcript = append(sess.Transcript, llm.Message{Role: "assistant", Content: reply})
	logger.Info("chat: reply appended", "session", sess.ID, "chars", len(reply))
	return reply, nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
