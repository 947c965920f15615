package models

import "time"

const (
	SeverityNone     = "none"
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

// SymptomNone is mutually exclusive with every other tag. When it appears
// alongside other tags the check-in is treated as symptom-free.
const SymptomNone = "no_symptoms"

const (
	SymptomHeadache    = "headache"
	SymptomNausea      = "nausea"
	SymptomFatigue     = "fatigue"
	SymptomDizziness   = "dizziness"
	SymptomDryMouth    = "dry_mouth"
	SymptomAnxiety     = "anxiety"
	SymptomStomachache = "stomachache"
	SymptomSensitivity = "sensitivity"
	SymptomPoorSleep   = "poor_sleep"
)

type SymptomInfo struct {
	Tag   string
	Label string
}

// SymptomCatalog returns the fixed symptom order used everywhere a symptom
// list is rendered or compared. Plan output depends on this order being stable.
func SymptomCatalog() []SymptomInfo {
	return []SymptomInfo{
		{Tag: SymptomHeadache, Label: "Headache"},
		{Tag: SymptomNausea, Label: "Nausea"},
		{Tag: SymptomFatigue, Label: "Fatigue"},
		{Tag: SymptomDizziness, Label: "Dizziness"},
		{Tag: SymptomDryMouth, Label: "Dry mouth"},
		{Tag: SymptomAnxiety, Label: "Anxiety"},
		{Tag: SymptomStomachache, Label: "Upset stomach"},
		{Tag: SymptomSensitivity, Label: "Light/sound sensitivity"},
		{Tag: SymptomPoorSleep, Label: "Poor sleep"},
	}
}

func ValidSeverity(value string) bool {
	switch value {
	case SeverityNone, SeverityMild, SeverityModerate, SeveritySevere:
		return true
	}
	return false
}

func ValidSymptom(tag string) bool {
	if tag == SymptomNone {
		return true
	}
	for _, info := range SymptomCatalog() {
		if info.Tag == tag {
			return true
		}
	}
	return false
}

func SymptomLabel(tag string) string {
	if tag == SymptomNone {
		return "No symptoms"
	}
	for _, info := range SymptomCatalog() {
		if info.Tag == tag {
			return info.Label
		}
	}
	return ""
}

// NormalizeSymptoms dedupes tags, drops unknown ones and reorders into
// catalog order so downstream output never depends on input slice order. A
// present no-symptoms sentinel collapses the whole set to just the sentinel.
func NormalizeSymptoms(raw []string) []string {
	present := make(map[string]bool, len(raw))
	for _, tag := range raw {
		if ValidSymptom(tag) {
			present[tag] = true
		}
	}
	if present[SymptomNone] {
		return []string{SymptomNone}
	}

	ordered := make([]string, 0, len(present))
	for _, info := range SymptomCatalog() {
		if present[info.Tag] {
			ordered = append(ordered, info.Tag)
		}
	}
	return ordered
}

// CheckIn is the user's self-assessment for one calendar day. At most one
// exists per (user, day); the alcohol flags are the only fields updated after
// creation.
type CheckIn struct {
	DayID          string    `json:"day_id"`
	Severity       string    `json:"severity"`
	Symptoms       []string  `json:"symptoms"`
	DrankLastNight *bool     `json:"drank_last_night,omitempty"`
	DrinkingToday  *bool     `json:"drinking_today,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
