package receipts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/models"
)

// fallbackNote is used whenever the Gemini client is absent or slow.
const fallbackNote = "Thank you for your generous gift to the PSDAHS Alumni Association. Your support makes our work possible."

// noteModel is satisfied by *genai.GenerativeModel and by test fakes.
type noteModel interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// ThankYouNote composes a short personalized thank-you line for the
// receipt. The note is decoration: any failure or delay falls back to the
// stock wording and is never surfaced to the donor.
func ThankYouNote(ctx context.Context, model noteModel, d *models.Donation) string {
	if model == nil {
		return fallbackNote
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	prompt := fmt.Sprintf(
		"Write a warm two-sentence thank-you note for a donor named %s who gave %s to the %s fund of a high-school alumni association. Plain text only, no salutation placeholders.",
		d.DonorName, FormatAmount(d.Amount), models.CategoryLabel(d.Category),
	)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		slog.Warn("Thank-you note generation failed", "error", err)
		return fallbackNote
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return fallbackNote
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok || strings.TrimSpace(string(text)) == "" {
		return fallbackNote
	}
	return strings.TrimSpace(string(text))
}
