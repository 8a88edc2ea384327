package policy

import (
	"embed"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"

	"gopkg.in/yaml.v3"
)

// Per-question thresholds, as a share of the question's points.
const (
	StrengthThreshold    = 0.8
	ImprovementThreshold = 0.5
)

// score bands used to pick the summary line
const (
	bandExcellent = "excellent"
	bandGood      = "good"
	bandFair      = "fair"
	bandWeak      = "weak"
)

const defaultTemplateName = "default"

// embeds all .yaml files in the templates folder into Go program at compile time
//
//go:embed templates/*.yaml
var templateFS embed.FS

// FeedbackTemplate is one round type's prose. Strings may reference
// {{.Category}}, {{.RoundType}} and {{.Company}}.
type FeedbackTemplate struct {
	Strengths    []string          `yaml:"strengths"`
	Improvements []string          `yaml:"improvements"`
	Summaries    map[string]string `yaml:"summaries"`
}

type FeedbackInput struct {
	Round          models.Round
	QuestionScores []float64
	FinalScore     float64
	Company        *models.CompanyIntel
}

type Feedback struct {
	Text         string
	Strengths    []string
	Improvements []string
}

// FeedbackComposer turns per-question scores into templated prose. Template
// choice is a hash of the round id and question index, so the same inputs
// always produce the same text.
type FeedbackComposer struct {
	templates map[string]FeedbackTemplate
}

func NewFeedbackComposer() (*FeedbackComposer, error) {
	fc := &FeedbackComposer{
		templates: make(map[string]FeedbackTemplate),
	}
	if err := fc.loadTemplates(); err != nil {
		return nil, fmt.Errorf("failed to load feedback templates: %w", err)
	}
	if _, ok := fc.templates[defaultTemplateName]; !ok {
		return nil, fmt.Errorf("feedback template %q is missing", defaultTemplateName)
	}
	return fc, nil
}

// TemplateNames lists loaded template sets, used by readiness checks.
func (fc *FeedbackComposer) TemplateNames() []string {
	names := make([]string, 0, len(fc.templates))
	for name := range fc.templates {
		names = append(names, name)
	}
	return names
}

func (fc *FeedbackComposer) Compose(in FeedbackInput) Feedback {
	tmpl := fc.templateFor(in.Round.Type)
	companyName := ""
	if in.Company != nil {
		companyName = in.Company.Name
	}

	out := Feedback{Strengths: []string{}, Improvements: []string{}}
	for i, q := range in.Round.Questions {
		if q.PointValue <= 0 || i >= len(in.QuestionScores) {
			continue
		}
		ratio := in.QuestionScores[i] / q.PointValue
		key := fmt.Sprintf("%s:%d", in.Round.ID, i)
		vars := templateVars{category: categoryLabel(q, in.Round.Type), roundType: roundTypeLabel(in.Round.Type), company: companyName}

		switch {
		case ratio >= StrengthThreshold && len(tmpl.Strengths) > 0:
			out.Strengths = appendUnique(out.Strengths, vars.render(tmpl.Strengths[pick(key, len(tmpl.Strengths))]))
		case ratio < ImprovementThreshold && len(tmpl.Improvements) > 0:
			out.Improvements = appendUnique(out.Improvements, vars.render(tmpl.Improvements[pick(key, len(tmpl.Improvements))]))
		}
	}

	vars := templateVars{roundType: roundTypeLabel(in.Round.Type), company: companyName}
	summary := tmpl.Summaries[scoreBand(in.FinalScore)]
	if summary == "" {
		summary = fc.templates[defaultTemplateName].Summaries[scoreBand(in.FinalScore)]
	}
	text := vars.render(summary)

	if in.Company != nil && len(in.Company.PreparationTips) > 0 {
		tip := in.Company.PreparationTips[pick(in.Round.ID, len(in.Company.PreparationTips))]
		text = strings.TrimSpace(fmt.Sprintf("%s Tip for %s: %s", text, in.Company.Name, tip))
	}
	out.Text = text
	return out
}

func (fc *FeedbackComposer) templateFor(roundType models.RoundType) FeedbackTemplate {
	if tmpl, ok := fc.templates[string(roundType)]; ok {
		return tmpl
	}
	return fc.templates[defaultTemplateName]
}

// loadTemplates loads all YAML feedback files from the embedded filesystem
func (fc *FeedbackComposer) loadTemplates() error {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return fmt.Errorf("failed to read templates directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := templateFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", entry.Name(), err)
		}

		var tmpl FeedbackTemplate
		if err := yaml.Unmarshal(data, &tmpl); err != nil {
			return fmt.Errorf("failed to parse template file %s: %w", entry.Name(), err)
		}

		fc.templates[strings.TrimSuffix(entry.Name(), ".yaml")] = tmpl
	}

	return nil
}

func scoreBand(score float64) string {
	switch {
	case score >= 80:
		return bandExcellent
	case score >= 60:
		return bandGood
	case score >= 40:
		return bandFair
	default:
		return bandWeak
	}
}

func pick(key string, n int) int {
	h := fnv.New32a()
	h.Write([]byte(key))
	return int(h.Sum32() % uint32(n))
}

type templateVars struct {
	category  string
	roundType string
	company   string
}

func (v templateVars) render(s string) string {
	company := v.company
	if company == "" {
		company = "the company"
	}
	s = strings.ReplaceAll(s, "{{.Category}}", v.category)
	s = strings.ReplaceAll(s, "{{.RoundType}}", v.roundType)
	return strings.ReplaceAll(s, "{{.Company}}", company)
}

func categoryLabel(q models.Question, roundType models.RoundType) string {
	if c := strings.TrimSpace(q.Category); c != "" {
		return c
	}
	return roundTypeLabel(roundType)
}

func roundTypeLabel(roundType models.RoundType) string {
	switch roundType {
	case models.RoundDSA:
		return "data structures and algorithms"
	case models.RoundCulturalFit:
		return "cultural fit"
	default:
		return string(roundType)
	}
}

func appendUnique(list []string, item string) []string {
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}
