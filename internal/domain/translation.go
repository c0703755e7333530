package domain

import "strings"

// Formality is the register the caller asks the translation to be written in.
type Formality string

const (
	FormalitySuperior Formality = "superior"
	FormalityStranger Formality = "stranger"
	FormalityFriend   Formality = "friend"
	FormalityChild    Formality = "child"
	FormalityNone     Formality = "none"
)

func (f Formality) String() string { return string(f) }

func (f Formality) IsValid() bool {
	switch f {
	case FormalitySuperior, FormalityStranger, FormalityFriend, FormalityChild, FormalityNone:
		return true
	}
	return false
}

// IsSpecified reports whether the caller pinned a formality level.
// An empty value and "none" both leave the choice to the model.
func (f Formality) IsSpecified() bool {
	v := Formality(strings.TrimSpace(string(f)))
	return v != "" && v != FormalityNone
}

// TranslationRequest is the decoded body of a translation call.
type TranslationRequest struct {
	Text             string    `json:"text"`
	SourceLanguage   string    `json:"sourceLanguage"`
	TargetLanguage   string    `json:"targetLanguage"`
	TargetDialect    string    `json:"targetDialect,omitempty"`
	SpeakerPronouns  string    `json:"speakerPronouns,omitempty"`
	ListenerPronouns string    `json:"listenerPronouns,omitempty"`
	Formality        Formality `json:"formality,omitempty"`
	UID              string    `json:"uid,omitempty"`
	UserEmail        string    `json:"userEmail,omitempty"`
}

// TranslationResponse is the structured answer parsed out of the completion text.
type TranslationResponse struct {
	Translation              string `json:"translation"`
	Romaji                   string `json:"romaji,omitempty"`
	DetectedSpeakerPronouns  string `json:"detectedSpeakerPronouns,omitempty"`
	DetectedListenerPronouns string `json:"detectedListenerPronouns,omitempty"`
	FormalityUsed            string `json:"formalityUsed,omitempty"`
	Notes                    string `json:"notes,omitempty"`
}

// Completion is one prompt sent to a completion provider. Request is the
// input the prompt was built from; offline providers answer from it directly.
type Completion struct {
	System  string
	Prompt  string
	Request TranslationRequest
}
