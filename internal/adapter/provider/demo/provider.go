package demo

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/anydialect-backend/internal/domain"
)

const name = "demo"

//go:embed phrases.json
var phrasesJSON []byte

type variant struct {
	Text   string `json:"text"`
	Romaji string `json:"romaji"`
	Note   string `json:"note"`
}

type phrase struct {
	EN string             `json:"en"`
	JA map[string]variant `json:"ja"`
}

// Provider answers from a fixed English to Japanese phrase table without
// network access. It backs the public demo page and local development.
type Provider struct {
	phrases map[string]phrase
	log     *slog.Logger
}

// NewProvider loads the embedded phrase table.
func NewProvider(logger *slog.Logger) (*Provider, error) {
	var table struct {
		Phrases []phrase `json:"phrases"`
	}
	if err := json.Unmarshal(phrasesJSON, &table); err != nil {
		return nil, fmt.Errorf("demo: decode phrases: %w", err)
	}

	phrases := make(map[string]phrase, len(table.Phrases))
	for _, p := range table.Phrases {
		phrases[domain.NormalizeText(p.EN)] = p
	}

	return &Provider{
		phrases: phrases,
		log:     logger.With("adapter", name),
	}, nil
}

// Name identifies the provider in logs and audit records.
func (p *Provider) Name() string { return name }

// Complete returns a JSON completion for known phrases and a fixed greeting
// otherwise.
func (p *Provider) Complete(ctx context.Context, c domain.Completion) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	req := c.Request
	formality := demoFormality(req.Formality)
	japanese := isJapanese(req.TargetLanguage)

	resp := domain.TranslationResponse{
		Translation:   "Hello, how are you?",
		FormalityUsed: formality,
		Notes:         "This is a demo translation",
	}
	if japanese {
		resp.Translation = "こんにちは、元気ですか？"
		resp.Romaji = "Konnichiwa, genki desu ka?"
	}

	if ph, ok := p.phrases[domain.NormalizeText(req.Text)]; ok && japanese {
		v := ph.JA[formality]
		resp.Translation = v.Text
		resp.Romaji = v.Romaji
		resp.Notes = v.Note
	} else {
		p.log.DebugContext(ctx, "demo phrase not found", slog.String("text", req.Text))
	}

	resp.DetectedSpeakerPronouns = req.SpeakerPronouns
	resp.DetectedListenerPronouns = req.ListenerPronouns

	body, err := json.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("demo: encode response: %w", err)
	}
	return string(body), nil
}

func demoFormality(f domain.Formality) string {
	f = domain.Formality(strings.TrimSpace(string(f)))
	if f.IsSpecified() && f.IsValid() {
		return f.String()
	}
	return domain.FormalityFriend.String()
}

func isJapanese(lang string) bool {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "ja", "ja-jp", "japanese", "日本語":
		return true
	}
	return false
}
