package translation

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/heartmarshall/anydialect-backend/internal/domain"
)

// SystemInstruction is sent alongside every prompt.
const SystemInstruction = "You are a highly accurate translation assistant. " +
	"Provide natural, culturally appropriate translations that strictly follow the requested formality, dialect, and pronoun usage. " +
	"Always respond in valid JSON format without any markdown or code blocks. " +
	"If the formality level is 'superior' or 'stranger', do NOT use casual speech. " +
	"If a dialect is specified, use the local expressions and slang its native speakers use."

const (
	autoFormality = "Choose the most natural formality for the context."
	detectHint    = "Detect if not provided"
	anyPronouns   = "he/him, she/her, they/them, neutral"

	unknownSource = "the auto-detected source language"
	defaultTarget = "English"
)

var formalityDirectives = map[domain.Formality]string{
	domain.FormalitySuperior: "Use HONORIFIC and highly respectful language. Avoid casual or informal words.",
	domain.FormalityStranger: "Use POLITE and professional language.",
	domain.FormalityFriend:   "Use CASUAL and relaxed language.",
	domain.FormalityChild:    "Use SIMPLE and friendly language that a child would easily understand.",
}

// FormalityDirective returns the fixed register phrase for f, or "" when f
// has none.
func FormalityDirective(f domain.Formality) string {
	return formalityDirectives[domain.Formality(strings.TrimSpace(string(f)))]
}

// BuildPrompt renders the user prompt for req. The output depends only on req.
func BuildPrompt(req domain.TranslationRequest) string {
	var b strings.Builder

	source := languageLabel(req.SourceLanguage, unknownSource)
	target := languageLabel(req.TargetLanguage, defaultTarget)

	fmt.Fprintf(&b, "Translate the following text from %s to %s", source, target)
	if dialect := strings.TrimSpace(req.TargetDialect); dialect != "" {
		fmt.Fprintf(&b, " in the %s dialect", dialect)
	}
	b.WriteString(".\n\n")
	b.WriteString("If the target language has a non-Latin script, also provide a romanized version.\n\n")

	b.WriteString("### Translation Rules:\n")
	b.WriteString("- Use native slang, idioms, and cultural expressions as appropriate for the dialect.\n")
	b.WriteString("- Ensure the tone and rhythm match natural spoken language.\n")
	b.WriteString("- Formality Level:\n")
	formality := strings.TrimSpace(req.Formality.String())
	if req.Formality.IsSpecified() {
		fmt.Fprintf(&b, "  STRICTLY follow this formality level: %q.\n", formality)
		if directive := FormalityDirective(req.Formality); directive != "" {
			fmt.Fprintf(&b, "  %s\n", directive)
		}
	} else {
		fmt.Fprintf(&b, "  %s\n", autoFormality)
	}
	b.WriteString("- DO NOT use casual language if the formality level is 'superior' or 'stranger'.\n")
	fmt.Fprintf(&b, "- Adapt the translation to fit the speaker's pronouns (%s).\n", orDefault(req.SpeakerPronouns, detectHint))
	fmt.Fprintf(&b, "- Use sentence structure appropriate to the listener's pronouns (%s).\n", orDefault(req.ListenerPronouns, detectHint))
	b.WriteString("- Do NOT provide markdown, code blocks, or extra formatting. Return only valid JSON.\n\n")

	b.WriteString("### Text to Translate:\n")
	fmt.Fprintf(&b, "%q\n\n", req.Text)

	b.WriteString("### Expected JSON Response (no markdown, no code blocks):\n")
	b.WriteString("{\n")
	b.WriteString(`  "translation": "[translated text with native dialect]",` + "\n")
	b.WriteString(`  "romaji": "[romanized version, if applicable]",` + "\n")
	fmt.Fprintf(&b, `  "detectedSpeakerPronouns": "[%s]",`+"\n", orDefault(req.SpeakerPronouns, anyPronouns))
	fmt.Fprintf(&b, `  "detectedListenerPronouns": "[%s]",`+"\n", orDefault(req.ListenerPronouns, anyPronouns))
	if req.Formality.IsSpecified() {
		fmt.Fprintf(&b, `  "formalityUsed": "[%s]",`+"\n", formality)
	} else {
		b.WriteString(`  "formalityUsed": "[auto-detected based on context]",` + "\n")
	}
	b.WriteString(`  "notes": "[EXPLAIN how formality was applied. For 'superior', specify how honorific speech was used. ` +
		`For 'stranger', mention polite forms. For 'friend', explain informal choices. For 'child', note simplifications.]"` + "\n")
	b.WriteString("}\n")

	return b.String()
}

// NewCompletion pairs the fixed system instruction with the prompt for req.
func NewCompletion(req domain.TranslationRequest) domain.Completion {
	return domain.Completion{System: SystemInstruction, Prompt: BuildPrompt(req), Request: req}
}

// languageLabel keeps the caller's value verbatim. Values that look like
// BCP 47 tags ("ja", "pt-BR") get their English name appended.
func languageLabel(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	if !looksLikeTag(value) {
		return value
	}
	tag, err := language.Parse(value)
	if err != nil {
		return value
	}
	name := display.English.Tags().Name(tag)
	if name == "" || strings.EqualFold(name, value) {
		return value
	}
	return fmt.Sprintf("%s (%s)", value, name)
}

// looksLikeTag reports whether the primary subtag is a 2 or 3 letter code.
func looksLikeTag(s string) bool {
	primary, _, _ := strings.Cut(strings.ReplaceAll(s, "_", "-"), "-")
	if len(primary) < 2 || len(primary) > 3 {
		return false
	}
	for _, r := range primary {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}
