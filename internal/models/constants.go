package models

// InterviewTypeMixed asks the catalog for one round of every enabled type.
const InterviewTypeMixed = "mixed"

// contains all round types (in lowercase)
var ValidRoundTypes = map[RoundType]bool{
	RoundTechnical:   true,
	RoundBehavioral:  true,
	RoundDSA:         true,
	RoundAptitude:    true,
	RoundCulturalFit: true,
}

var ValidSeverities = map[Severity]bool{
	SeverityLow:    true,
	SeverityMedium: true,
	SeverityHigh:   true,
}

func ValidRoundTypesList() []string {
	return []string{"technical", "behavioral", "dsa", "aptitude", "cultural-fit"}
}

func ValidInterviewTypesList() []string {
	return append(ValidRoundTypesList(), InterviewTypeMixed)
}

// IsValidInterviewType accepts a single round type or "mixed".
func IsValidInterviewType(interviewType string) bool {
	return interviewType == InterviewTypeMixed || ValidRoundTypes[RoundType(interviewType)]
}
