package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/SethFaerber/tma-report/internal/errors"
	"github.com/SethFaerber/tma-report/internal/scoring"
	"github.com/SethFaerber/tma-report/internal/survey"
)

//go:embed taxonomy.yaml
var defaultTaxonomyYAML []byte

type taxonomyFile struct {
	Questions []survey.Question `yaml:"questions"`
}

// LoadTaxonomy loads the question taxonomy from the configured file, or the
// embedded default when none is set, and validates it against the expected
// question count. A mismatch is a configuration error and aborts startup.
func LoadTaxonomy(cfg SurveyConfig) (*survey.Taxonomy, error) {
	data := defaultTaxonomyYAML
	if cfg.TaxonomyFile != "" {
		fileData, err := os.ReadFile(cfg.TaxonomyFile)
		if err != nil {
			return nil, errors.NewConfigError(
				fmt.Sprintf("read taxonomy file %s", cfg.TaxonomyFile), err)
		}
		data = fileData
	}

	var parsed taxonomyFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, errors.NewConfigError("parse taxonomy", err)
	}

	taxonomy, err := survey.NewTaxonomy(parsed.Questions, cfg.QuestionCount)
	if err != nil {
		return nil, errors.NewConfigError("validate taxonomy", err)
	}

	return taxonomy, nil
}

// LoadVocabulary builds the Likert vocabulary from config, falling back to
// the standard five-point agreement scale when no phrases are configured.
func LoadVocabulary(cfg SurveyConfig) (scoring.Vocabulary, error) {
	if len(cfg.Vocabulary) == 0 {
		return scoring.DefaultVocabulary(), nil
	}

	vocab, err := scoring.NewVocabulary(cfg.Vocabulary)
	if err != nil {
		return nil, errors.NewConfigError("build Likert vocabulary", err)
	}
	return vocab, nil
}
