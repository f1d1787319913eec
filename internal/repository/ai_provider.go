package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"commodity-index/internal/dto"
	"commodity-index/internal/model"
)

// AIProviderRepository generates price predictions for one commodity. One
// implementation exists per provider; the prediction service selects the
// implementation by the AI model's provider tag.
type AIProviderRepository interface {
	Provider() model.Provider
	GeneratePredictions(ctx context.Context, aiModel model.AIModel, commodity model.Commodity, currentPrice float64) ([]dto.PredictionDraft, error)
}

func buildPredictionPrompt(commodity model.Commodity, currentPrice float64) string {
	timeframes := model.Timeframes()
	allowed := make([]string, len(timeframes))
	for i, tf := range timeframes {
		allowed[i] = string(tf)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("You are a commodity market analyst. The current price of %s (%s) is %.4f USD.\n\n",
		commodity.Name, commodity.Symbol, currentPrice))
	sb.WriteString("Predict the price at 3, 6, 9 and 12 month horizons.\n")
	sb.WriteString("Respond with a JSON array only, one object per horizon, in this exact shape:\n")
	sb.WriteString(`[{"timeframe":"3mo","predicted_price":123.45,"confidence":0.72,"reasoning":"..."}]` + "\n")
	sb.WriteString("Confidence is a 0-1 value. Allowed timeframe values: " + strings.Join(allowed, ", ") + ".")
	return sb.String()
}

// parsePredictionDrafts extracts the JSON array from an LLM reply, tolerating
// markdown code fences and surrounding prose.
func parsePredictionDrafts(text string) ([]dto.PredictionDraft, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array found in provider response")
	}

	var drafts []dto.PredictionDraft
	if err := json.Unmarshal([]byte(text[start:end+1]), &drafts); err != nil {
		return nil, fmt.Errorf("failed to parse provider response: %w", err)
	}
	if len(drafts) == 0 {
		return nil, fmt.Errorf("provider returned an empty prediction list")
	}

	valid := make(map[string]bool, len(model.Timeframes()))
	for _, tf := range model.Timeframes() {
		valid[string(tf)] = true
	}
	for _, d := range drafts {
		if !valid[d.Timeframe] {
			return nil, fmt.Errorf("provider returned unknown timeframe %q", d.Timeframe)
		}
		if d.PredictedPrice <= 0 {
			return nil, fmt.Errorf("provider returned non-positive price for %s", d.Timeframe)
		}
	}
	return drafts, nil
}
