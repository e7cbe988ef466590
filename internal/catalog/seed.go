package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/terra-clan/career-assessment/internal/models"
)

// LoadFromFile replaces question lists with those found in a YAML seed file.
// Assessment types missing from the file keep their current questions.
func (c *Catalog) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}
	return c.Load(data)
}

// Load applies a YAML seed document
func (c *Catalog) Load(data []byte) error {
	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("failed to parse seed YAML: %w", err)
	}

	// Validate everything before touching the catalog
	parsed := make(map[models.AssessmentType][]string, len(sf.Assessments))
	for raw, a := range sf.Assessments {
		t, err := models.ParseAssessmentType(raw)
		if err != nil {
			return err
		}

		qs := make([]string, 0, len(a.Questions))
		for _, q := range a.Questions {
			if q = strings.TrimSpace(q); q != "" {
				qs = append(qs, q)
			}
		}
		parsed[t] = qs
	}

	for t, qs := range parsed {
		c.replace(t, qs)
		slog.Info("assessment seeded", "assessment", t, "questions", len(qs))
	}
	return nil
}

// --- YAML file structs ---

// seedFile represents the YAML structure of a catalog seed file
type seedFile struct {
	Assessments map[string]assessmentFile `yaml:"assessments"`
}

// assessmentFile represents one assessment entry in the seed file
type assessmentFile struct {
	Questions []string `yaml:"questions"`
}
