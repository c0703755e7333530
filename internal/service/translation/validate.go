package translation

import "github.com/heartmarshall/anydialect-backend/internal/domain"

// MaxTextLength caps the text accepted for one translation, in runes.
const MaxTextLength = 5000

func validateRequest(req domain.TranslationRequest) error {
	if domain.IsBlank(req.Text) {
		return domain.NewValidationError("text", "No text provided")
	}
	if len([]rune(req.Text)) > MaxTextLength {
		return domain.NewValidationError("text", "Text is too long")
	}
	return nil
}
