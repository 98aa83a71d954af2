// File path: internal/api/types.go
package api

import (
	"github.com/sgci-marketing/persona-studio/internal/llm"
	"github.com/sgci-marketing/persona-studio/internal/segment"
)

type sessionResponse struct {
	ID         string           `json:"id"`
	Model      string           `json:"model"`
	Configured bool             `json:"configured"`
	Segments   int              `json:"segments"`
	Personas   int              `json:"personas"`
	Catalog    *catalogResponse `json:"catalog,omitempty"`
	Transcript int              `json:"transcript"`
}

type configRequest struct {
	APIKey string `json:"api_key"`
	Model  string `json:"model"`
}

type configResponse struct {
	Model      string `json:"model"`
	Configured bool   `json:"configured"`
	Provider   string `json:"provider,omitempty"`
}

type segmentsResponse struct {
	Count    int               `json:"count"`
	Columns  []string          `json:"columns,omitempty"`
	Segments []segment.Segment `json:"segments"`
}

type catalogResponse struct {
	Kind    string `json:"kind"`
	Units   int    `json:"units"`
	Chars   int    `json:"chars"`
	Preview string `json:"preview,omitempty"`
}

type generateRequest struct {
	SegmentIDs []int `json:"segment_ids"`
}

type generateOutcome struct {
	SegmentID int    `json:"segment_id"`
	Persona   string `json:"persona,omitempty"`
	Error     string `json:"error,omitempty"`
}

type generateResponse struct {
	Generated int               `json:"generated"`
	Failed    int               `json:"failed"`
	Outcomes  []generateOutcome `json:"outcomes"`
}

type personaSummary struct {
	SegmentID int    `json:"segment_id"`
	Name      string `json:"name"`
	Chars     int    `json:"chars"`
}

type personasResponse struct {
	Personas []personaSummary `json:"personas"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply      string        `json:"reply"`
	Transcript []llm.Message `json:"transcript"`
}

type transcriptResponse struct {
	Messages []llm.Message `json:"messages"`
}
