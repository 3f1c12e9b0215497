package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SethFaerber/tma-report/internal/survey"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int64(10485760), cfg.Server.MaxUploadBytes)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 82, cfg.Survey.QuestionCount)
	assert.Equal(t, "gemini-2.0-flash", cfg.Narrative.Model)
	assert.Equal(t, 2, cfg.Narrative.MaxRetries)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TMA_SERVER_PORT", "9090")
	t.Setenv("TMA_SURVEY_QUESTION_COUNT", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Survey.QuestionCount)
}

func TestLoad_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 7070\n"), 0o644))
	t.Setenv("TMA_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoad_InvalidLevelFailsValidation(t *testing.T) {
	t.Setenv("TMA_LOGGING_LEVEL", "loud")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadTaxonomy_EmbeddedDefault(t *testing.T) {
	taxonomy, err := LoadTaxonomy(SurveyConfig{QuestionCount: 82})
	require.NoError(t, err)

	assert.Equal(t, 82, taxonomy.Len())
	assert.Equal(t, survey.DriverOrder, taxonomy.Drivers())

	for i, q := range taxonomy.Questions {
		assert.Equal(t, i, q.Index)
		assert.NotEmpty(t, q.Text)
		assert.NotEmpty(t, q.Skill)
		assert.GreaterOrEqual(t, q.Driver.Rank(), 0)
	}
}

func TestLoadTaxonomy_CountMismatchAbortsStartup(t *testing.T) {
	_, err := LoadTaxonomy(SurveyConfig{QuestionCount: 10})
	assert.Error(t, err)
}

func TestLoadTaxonomy_ExternalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taxonomy.yaml")
	content := `questions:
  - {driver: Purpose, skill: Vision, text: "Q1"}
  - {driver: Profit, skill: Margins, text: "Q2"}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	taxonomy, err := LoadTaxonomy(SurveyConfig{QuestionCount: 2, TaxonomyFile: path})
	require.NoError(t, err)
	assert.Equal(t, 2, taxonomy.Len())
	assert.Equal(t, survey.DriverPurpose, taxonomy.Questions[0].Driver)

	_, err = LoadTaxonomy(SurveyConfig{QuestionCount: 3, TaxonomyFile: path})
	assert.Error(t, err)

	_, err = LoadTaxonomy(SurveyConfig{QuestionCount: 2, TaxonomyFile: filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)
}

func TestLoadVocabulary(t *testing.T) {
	t.Run("default scale", func(t *testing.T) {
		vocab, err := LoadVocabulary(SurveyConfig{})
		require.NoError(t, err)

		score, ok := vocab.TextToScore("strongly agree")
		assert.True(t, ok)
		assert.Equal(t, survey.Score(5), score)
	})

	t.Run("custom phrases", func(t *testing.T) {
		vocab, err := LoadVocabulary(SurveyConfig{
			Vocabulary: []string{"Always", "Often", "Sometimes", "Rarely", "Never"},
		})
		require.NoError(t, err)

		score, ok := vocab.TextToScore("rarely")
		assert.True(t, ok)
		assert.Equal(t, survey.Score(2), score)
	})

	t.Run("wrong phrase count", func(t *testing.T) {
		_, err := LoadVocabulary(SurveyConfig{Vocabulary: []string{"yes", "no"}})
		assert.Error(t, err)
	})
}
