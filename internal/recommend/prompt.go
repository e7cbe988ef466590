package recommend

import (
	"fmt"
	"strings"

	"github.com/terra-clan/career-assessment/internal/models"
)

// NoAnswer replaces missing or blank answers in the prompt
const NoAnswer = "No answer provided"

// RecommendationCount is the number of careers the model is asked for
const RecommendationCount = 5

// BuildPrompt renders the counselor prompt for one completed assessment.
// Question/answer pairs keep the order of questions.
func BuildPrompt(t models.AssessmentType, questions, answers []string) string {
	pairs := make([]string, 0, len(questions))
	for i, q := range questions {
		answer := NoAnswer
		if i < len(answers) && strings.TrimSpace(answers[i]) != "" {
			answer = answers[i]
		}
		pairs = append(pairs, fmt.Sprintf("Question: %s\nAnswer: %s", q, answer))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert career assessment counselor for students. "+
		"Based on the following assessment, provide a list of %d suitable career recommendations. "+
		"For each recommendation, provide a brief (1-2 sentences) explanation of why it's a good fit "+
		"based on the student's answers.\n\n", RecommendationCount)
	fmt.Fprintf(&b, "Assessment Type: %s\n\n", t)
	b.WriteString("Questions and Answers:\n")
	b.WriteString(strings.Join(pairs, "\n\n"))
	b.WriteString("\n\nReturn your response as a JSON object.\n")
	return b.String()
}
