package questions

import (
	"context"
	"embed"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed bank/*.yaml
var bankFS embed.FS

type bankFile struct {
	Questions []models.Question `yaml:"questions"`
}

// BankProvider serves the embedded default question bank. It is always
// available, so it backs every other provider as the fallback.
type BankProvider struct {
	byType map[models.RoundType][]models.Question
}

func NewBankProvider() (*BankProvider, error) {
	bp := &BankProvider{byType: make(map[models.RoundType][]models.Question)}
	if err := bp.load(); err != nil {
		return nil, fmt.Errorf("failed to load question bank: %w", err)
	}
	return bp, nil
}

func (bp *BankProvider) Name() string { return "bank" }

// Questions returns up to q.Count questions for the round type. Questions at
// the requested difficulty come first; the starting offset rotates with the
// company and job title so different targets see different sets, while the
// same target always sees the same set.
func (bp *BankProvider) Questions(ctx context.Context, q Query) ([]models.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pool := bp.byType[q.RoundType]
	if len(pool) == 0 {
		return nil, ErrNoQuestions
	}

	ordered := orderByDifficulty(pool, q.Difficulty)
	count := q.Count
	if count <= 0 || count > len(ordered) {
		count = len(ordered)
	}

	matching := 0
	for _, question := range ordered {
		if strings.EqualFold(question.Difficulty, q.Difficulty) {
			matching++
		}
	}
	offset := 0
	if matching > count {
		offset = rotation(q.CompanyName+"|"+q.JobTitle, matching-count+1)
	}

	out := make([]models.Question, 0, count)
	for i := 0; i < count; i++ {
		question := ordered[offset+i]
		question.Text = fillPlaceholders(question.Text, q)
		out = append(out, question)
	}
	return out, nil
}

// Count reports how many bank questions exist for a round type.
func (bp *BankProvider) Count(roundType models.RoundType) int {
	return len(bp.byType[roundType])
}

// All returns a copy of the raw bank, placeholders unfilled.
func (bp *BankProvider) All() map[models.RoundType][]models.Question {
	out := make(map[models.RoundType][]models.Question, len(bp.byType))
	for roundType, qs := range bp.byType {
		out[roundType] = append([]models.Question(nil), qs...)
	}
	return out
}

func (bp *BankProvider) load() error {
	entries, err := bankFS.ReadDir("bank")
	if err != nil {
		return fmt.Errorf("failed to read bank directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		roundType := models.RoundType(strings.TrimSuffix(entry.Name(), ".yaml"))
		if !models.ValidRoundTypes[roundType] {
			return fmt.Errorf("bank file %s does not name a round type", entry.Name())
		}

		data, err := bankFS.ReadFile("bank/" + entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read bank file %s: %w", entry.Name(), err)
		}

		var file bankFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to parse bank file %s: %w", entry.Name(), err)
		}
		bp.byType[roundType] = file.Questions
	}
	return nil
}

func orderByDifficulty(pool []models.Question, difficulty string) []models.Question {
	ordered := make([]models.Question, len(pool))
	copy(ordered, pool)
	sort.SliceStable(ordered, func(i, j int) bool {
		return strings.EqualFold(ordered[i].Difficulty, difficulty) && !strings.EqualFold(ordered[j].Difficulty, difficulty)
	})
	return ordered
}

func rotation(key string, n int) int {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(key)))
	return int(h.Sum32() % uint32(n))
}

func fillPlaceholders(text string, q Query) string {
	company := strings.TrimSpace(q.CompanyName)
	if company == "" {
		company = "the company"
	}
	role := strings.TrimSpace(q.JobTitle)
	if role == "" {
		role = "engineer"
	}
	text = strings.ReplaceAll(text, "{{.Company}}", company)
	return strings.ReplaceAll(text, "{{.Role}}", role)
}
