// File path: internal/chat/orchestrator_test.go
package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sgci-marketing/persona-studio/internal/catalog"
	"github.com/sgci-marketing/persona-studio/internal/llm"
	"github.com/sgci-marketing/persona-studio/internal/segment"
	"github.com/sgci-marketing/persona-studio/internal/session"
)

type scriptedProvider struct {
	respond  func(req llm.Request) (string, error)
	requests []llm.Request
}

func (p *scriptedProvider) Complete(ctx context.Context, req llm.Request) (string, error) {
	p.requests = append(p.requests, req)
	return p.respond(req)
}

func (p *scriptedProvider) Name() string { return "scripted" }

func newTestSession(provider llm.Provider) *session.Session {
	return &session.Session{
		ID:       "test",
		Segments: segment.Defaults(),
		Personas: make(map[int]string),
		Model:    session.DefaultModel,
		Provider: provider,
	}
}

func TestSendSuccessAppendsAssistantAfterUser(t *testing.T) {
	provider := &scriptedProvider{respond: func(req llm.Request) (string, error) {
		return "Voici ma recommandation.", nil
	}}
	sess := newTestSession(provider)
	reply, err := Send(context.Background(), sess, "Quel produit pour le cluster 0 ?")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if reply != "Voici ma recommandation." {
		t.Fatalf("unexpected reply %q", reply)
	}
	if len(sess.Transcript) != 2 {
		t.Fatalf("expected 2 transcript entries, got %d", len(sess.Transcript))
	}
	if sess.Transcript[0].Role != "user" || sess.Transcript[1].Role != "assistant" {
		t.Fatalf("expected user then assistant, got %+v", sess.Transcript)
	}
	if sess.Transcript[1].Content != reply {
		t.Fatal("assistant entry must carry the reply")
	}
}

func TestSendFailureLeavesUserTurnLast(t *testing.T) {
	provider := &scriptedProvider{respond: func(req llm.Request) (string, error) {
		return "", errors.New("rate limited")
	}}
	sess := newTestSession(provider)
	if _, err := Send(context.Background(), sess, "bonjour"); err == nil {
		t.Fatal("expected provider error")
	}
	if len(sess.Transcript) != 1 {
		t.Fatalf("expected only the user turn, got %d entries", len(sess.Transcript))
	}
	if sess.Transcript[0].Role != "user" || sess.Transcript[0].Content != "bonjour" {
		t.Fatalf("expected user turn preserved, got %+v", sess.Transcript[0])
	}
	// The session stays continuable: a later successful turn appends
	// directly after the stranded user message.
	provider.respond = func(req llm.Request) (string, error) { return "reprise", nil }
	if _, err := Send(context.Background(), sess, "toujours la ?"); err != nil {
		t.Fatalf("send after failure: %v", err)
	}
	if len(sess.Transcript) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(sess.Transcript))
	}
}

func TestSendNotConfiguredMutatesNothing(t *testing.T) {
	sess := newTestSession(nil)
	_, err := Send(context.Background(), sess, "bonjour")
	if !errors.Is(err, session.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if len(sess.Transcript) != 0 {
		t.Fatal("transcript must stay empty when the client is not configured")
	}
}

func TestSendRequestShape(t *testing.T) {
	provider := &scriptedProvider{respond: func(req llm.Request) (string, error) {
		return "ok", nil
	}}
	sess := newTestSession(provider)
	sess.Transcript = []llm.Message{
		{Role: "user", Content: "premier"},
		{Role: "assistant", Content: "reponse"},
	}
	if _, err := Send(context.Background(), sess, "second"); err != nil {
		t.Fatalf("send: %v", err)
	}
	req := provider.requests[0]
	if req.MaxTokens != MaxTokens {
		t.Fatalf("expected max tokens %d, got %d", MaxTokens, req.MaxTokens)
	}
	if len(req.Messages) != 4 {
		t.Fatalf("expected system + 3 transcript turns, got %d", len(req.Messages))
	}
	if req.Messages[0].Role != "system" {
		t.Fatal("first message must be the system context")
	}
	if last := req.Messages[len(req.Messages)-1]; last.Role != "user" || last.Content != "second" {
		t.Fatalf("last message must be the new user turn, got %+v", last)
	}
}

func TestBuildSystemContextSections(t *testing.T) {
	sess := newTestSession(nil)
	sess.Personas[1] = strings.Repeat("p", PersonaContextBudget+500)
	sess.Catalog = &catalog.Catalog{Text: strings.Repeat("c", CatalogContextBudget+100), Kind: catalog.KindSpreadsheet, Units: 3}

	context := BuildSystemContext(sess)
	if !strings.Contains(context, "--- Cluster 1: Les racines de confiance ---") {
		t.Fatal("expected persona block delimiter with segment name")
	}
	personaStart := strings.Index(context, "--- Cluster 1:")
	personaBlock := context[personaStart:]
	if !strings.Contains(personaBlock, strings.Repeat("p", PersonaContextBudget)+"...") {
		t.Fatal("expected persona excerpt truncated at the budget")
	}
	if strings.Contains(personaBlock, strings.Repeat("p", PersonaContextBudget+1)) {
		t.Fatal("persona excerpt exceeded budget")
	}
	if !strings.Contains(context, "- ID: 0, Nom: Les clients fideles et hyper-connectes, Age: 40, Produits: 8,") {
		t.Fatal("expected compact segment line")
	}
	if !strings.Contains(context, "CATALOGUE PRODUITS:\n"+strings.Repeat("c", CatalogContextBudget)) {
		t.Fatal("expected catalog excerpt truncated at the budget")
	}
	if strings.Contains(context, strings.Repeat("c", CatalogContextBudget+1)) {
		t.Fatal("catalog excerpt exceeded budget")
	}
}

func TestBuildSystemContextAbsenceNotes(t *testing.T) {
	sess := newTestSession(nil)
	context := BuildSystemContext(sess)
	if !strings.Contains(context, "Aucun persona genere.") {
		t.Fatal("expected persona absence note")
	}
	if !strings.Contains(context, "Note: Aucun catalogue produits charge.") {
		t.Fatal("expected catalog absence note")
	}
}
