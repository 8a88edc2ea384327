package models

import (
	"testing"
	"time"
)

func TestSessionCloneIsDeep(t *testing.T) {
	score := 42.0
	started := time.Now()
	original := Session{
		ID: "s1",
		Rounds: []Round{{
			ID:        "technical_1",
			Questions: []Question{{ID: "q1", PointValue: 100}},
			Score:     &score,
		}},
		RoundResults:     []RoundResult{{RoundID: "technical_1", Answers: []string{"a"}, Strengths: []string{"s"}}},
		ProctoringAlerts: []Alert{{Type: "tab_switch", Severity: SeverityHigh}},
		Company:          &CompanyIntel{Name: "Google", TechStack: []string{"go"}},
		StartedAt:        &started,
	}

	clone := original.Clone()
	clone.Rounds[0].Questions[0].PointValue = 1
	*clone.Rounds[0].Score = 0
	clone.RoundResults[0].Answers[0] = "changed"
	clone.ProctoringAlerts[0].Type = "changed"
	clone.Company.TechStack[0] = "rust"
	*clone.StartedAt = started.Add(time.Hour)

	if original.Rounds[0].Questions[0].PointValue != 100 {
		t.Fatal("questions shared with clone")
	}
	if *original.Rounds[0].Score != 42 {
		t.Fatal("round score shared with clone")
	}
	if original.RoundResults[0].Answers[0] != "a" {
		t.Fatal("answers shared with clone")
	}
	if original.ProctoringAlerts[0].Type != "tab_switch" {
		t.Fatal("alerts shared with clone")
	}
	if original.Company.TechStack[0] != "go" {
		t.Fatal("company shared with clone")
	}
	if !original.StartedAt.Equal(started) {
		t.Fatal("start time shared with clone")
	}
}

func TestRoundTotalPointsAndResultLookup(t *testing.T) {
	r := Round{Questions: []Question{{PointValue: 40}, {PointValue: 60}}}
	if r.TotalPoints() != 100 {
		t.Fatalf("expected 100 points, got %v", r.TotalPoints())
	}

	s := Session{RoundResults: []RoundResult{{RoundID: "dsa_1", FinalScore: 70}}}
	if res, ok := s.ResultFor("dsa_1"); !ok || res.FinalScore != 70 {
		t.Fatalf("expected dsa_1 result, got %+v %v", res, ok)
	}
	if _, ok := s.ResultFor("technical_1"); ok {
		t.Fatal("expected no result for technical_1")
	}
}

func TestAlertSameEvent(t *testing.T) {
	ts := time.Now()
	a := Alert{Type: "no_face", Severity: SeverityHigh, Timestamp: ts}
	if !a.SameEvent(Alert{Type: "no_face", Severity: SeverityHigh, Timestamp: ts, RoundIndex: 3}) {
		t.Fatal("expected same event regardless of round index")
	}
	if a.SameEvent(Alert{Type: "no_face", Severity: SeverityHigh, Timestamp: ts.Add(time.Second)}) {
		t.Fatal("expected different timestamps to be distinct events")
	}
}
