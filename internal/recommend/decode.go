package recommend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/terra-clan/career-assessment/internal/models"
)

// ErrMalformedResponse is returned when the model output does not match the response schema
var ErrMalformedResponse = errors.New("malformed recommendation response")

// wire types use pointers so absent fields can be told apart from empty ones
type responseBody struct {
	Recommendations *[]*recommendationBody `json:"recommendations"`
}

type recommendationBody struct {
	Career *string `json:"career"`
	Reason *string `json:"reason"`
}

// ParseResponse decodes model output into recommendations.
// Any missing required field rejects the whole response.
func ParseResponse(text string) ([]models.Recommendation, error) {
	cleaned := CleanJSON(text)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}

	var body responseBody
	if err := json.Unmarshal([]byte(cleaned), &body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if body.Recommendations == nil {
		return nil, fmt.Errorf("%w: missing recommendations", ErrMalformedResponse)
	}

	items := *body.Recommendations
	recs := make([]models.Recommendation, 0, len(items))
	for i, item := range items {
		switch {
		case item == nil:
			return nil, fmt.Errorf("%w: recommendation %d is null", ErrMalformedResponse, i)
		case item.Career == nil:
			return nil, fmt.Errorf("%w: recommendation %d missing career", ErrMalformedResponse, i)
		case item.Reason == nil:
			return nil, fmt.Errorf("%w: recommendation %d missing reason", ErrMalformedResponse, i)
		}
		recs = append(recs, models.Recommendation{
			Career: *item.Career,
			Reason: *item.Reason,
		})
	}
	return recs, nil
}

// CleanJSON strips surrounding whitespace and an optional ```json fence
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")

	return strings.TrimSpace(clean)
}
