package recommend

import "google.golang.org/genai"

// Temperature allows varied but not erratic phrasing
const Temperature float32 = 0.7

// ResponseSchema is the structured output contract sent with every request:
// {recommendations: [{career: string, reason: string}]}, all fields required.
func ResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"recommendations": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"career": {
							Type:        genai.TypeString,
							Description: "The name of the recommended career.",
						},
						"reason": {
							Type:        genai.TypeString,
							Description: "A brief explanation for the recommendation.",
						},
					},
					Required: []string{"career", "reason"},
				},
			},
		},
		Required: []string{"recommendations"},
	}
}
