package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"
	"github.com/Nitingarg01/Major-project-sub001/internal/questions"
	"github.com/Nitingarg01/Major-project-sub001/internal/scoring"
	"github.com/Nitingarg01/Major-project-sub001/internal/utils"

	"gopkg.in/yaml.v3"
)

var ErrUnknownInterviewType = errors.New("unknown interview type")

// ErrEmptyRound is shared with the scorer: a round without questions can
// never be scored, so it must not be built.
var ErrEmptyRound = scoring.ErrEmptyRound

// RoundPointsTotal is what every round's question points add up to when the
// question source does not assign points itself.
const RoundPointsTotal = 100.0

//go:embed rounds.yaml
var roundsYAML []byte

type RoundSpec struct {
	DurationMinutes int `yaml:"duration_minutes"`
	QuestionCount   int `yaml:"question_count"`
}

type Table struct {
	Rounds            map[models.RoundType]RoundSpec `yaml:"rounds"`
	MixedOrder        []models.RoundType             `yaml:"mixed_order"`
	SeniorOnly        []models.RoundType             `yaml:"senior_only"`
	SeniorMarkers     []string                       `yaml:"senior_markers"`
	DefaultDifficulty string                         `yaml:"default_difficulty"`
}

// Request is the input for one catalog build.
type Request struct {
	CompanyName   string
	JobTitle      string
	InterviewType string
	Company       *models.CompanyIntel
}

// Builder decides which rounds a session has and fills them with questions.
type Builder struct {
	table    Table
	provider questions.Provider
}

func NewBuilder(provider questions.Provider) (*Builder, error) {
	table, err := LoadTable()
	if err != nil {
		return nil, err
	}
	return &Builder{table: table, provider: provider}, nil
}

// LoadTable parses the embedded round table.
func LoadTable() (Table, error) {
	var table Table
	if err := yaml.Unmarshal(roundsYAML, &table); err != nil {
		return Table{}, fmt.Errorf("failed to parse round table: %w", err)
	}
	for _, rt := range table.MixedOrder {
		if _, ok := table.Rounds[rt]; !ok {
			return Table{}, fmt.Errorf("round table: mixed order names unknown round %q", rt)
		}
	}
	return table, nil
}

// Plan returns the ordered round types for an interview without fetching
// questions.
func (b *Builder) Plan(interviewType, jobTitle string) ([]models.RoundType, error) {
	interviewType = utils.NormalizeInterviewType(interviewType)

	if interviewType != models.InterviewTypeMixed {
		rt := models.RoundType(interviewType)
		if _, ok := b.table.Rounds[rt]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownInterviewType, interviewType)
		}
		return []models.RoundType{rt}, nil
	}

	senior := IsSeniorTitle(jobTitle, b.table.SeniorMarkers)
	plan := make([]models.RoundType, 0, len(b.table.MixedOrder))
	for _, rt := range b.table.MixedOrder {
		if !senior && containsRound(b.table.SeniorOnly, rt) {
			continue
		}
		plan = append(plan, rt)
	}
	return plan, nil
}

// Build produces the pending rounds for a session. Every round gets at least
// one question or the build fails with ErrEmptyRound.
func (b *Builder) Build(ctx context.Context, req Request) ([]models.Round, error) {
	plan, err := b.Plan(req.InterviewType, req.JobTitle)
	if err != nil {
		return nil, err
	}

	difficulty := b.table.DefaultDifficulty
	if req.Company != nil && req.Company.Difficulty != "" {
		difficulty = utils.NormalizeDifficulty(req.Company.Difficulty)
	}

	rounds := make([]models.Round, 0, len(plan))
	for _, rt := range plan {
		spec := b.table.Rounds[rt]
		qs, err := b.provider.Questions(ctx, questions.Query{
			CompanyName: req.CompanyName,
			JobTitle:    req.JobTitle,
			RoundType:   rt,
			Difficulty:  difficulty,
			Count:       spec.QuestionCount,
		})
		if err != nil && !errors.Is(err, questions.ErrNoQuestions) {
			return nil, fmt.Errorf("failed to load %s questions: %w", rt, err)
		}
		if len(qs) == 0 {
			return nil, fmt.Errorf("%s round: %w", rt, ErrEmptyRound)
		}

		rounds = append(rounds, models.Round{
			ID:              RoundID(rt, rounds),
			Type:            rt,
			Status:          models.RoundPending,
			Questions:       NormalizePoints(qs),
			DurationMinutes: spec.DurationMinutes,
		})
	}
	return rounds, nil
}

// Spec returns the table entry for a round type.
func (b *Builder) Spec(rt models.RoundType) (RoundSpec, bool) {
	spec, ok := b.table.Rounds[rt]
	return spec, ok
}

// RoundID is "<type>_<n>" where n counts earlier rounds of the same type.
func RoundID(rt models.RoundType, existing []models.Round) string {
	n := 1
	for _, r := range existing {
		if r.Type == rt {
			n++
		}
	}
	return fmt.Sprintf("%s_%d", rt, n)
}

// NormalizePoints splits RoundPointsTotal evenly when any question lacks a
// positive point value. Input is not modified.
func NormalizePoints(qs []models.Question) []models.Question {
	out := make([]models.Question, len(qs))
	copy(out, qs)

	for _, q := range out {
		if q.PointValue <= 0 {
			share := RoundPointsTotal / float64(len(out))
			for i := range out {
				out[i].PointValue = share
			}
			break
		}
	}
	return out
}

// IsSeniorTitle reports whether any marker appears as a whole word in title.
func IsSeniorTitle(title string, markers []string) bool {
	words := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		for _, m := range markers {
			if w == m {
				return true
			}
		}
	}
	return false
}

func containsRound(list []models.RoundType, rt models.RoundType) bool {
	for _, item := range list {
		if item == rt {
			return true
		}
	}
	return false
}
