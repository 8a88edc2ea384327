package utils

import "strings"

func NormalizeInterviewType(interviewType string) string {
	return strings.ToLower(strings.TrimSpace(interviewType))
}

func NormalizeSeverity(severity string) string {
	return strings.ToLower(strings.TrimSpace(severity))
}

func NormalizeDifficulty(difficulty string) string {
	return strings.ToLower(strings.TrimSpace(difficulty))
}
