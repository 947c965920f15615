// Package planner derives a recovery plan from a day's check-in. Generation
// is a pure function of its input: same check-in, same plan, always. The
// today coordinator's idempotence guarantee rests on that.
package planner

import (
	"fmt"
	"sort"

	"github.com/rowanherne/morrow/internal/models"
)

// Generate builds the recovery plan for a check-in. It never fails: unknown
// severity degrades to mild, unknown symptom tags are dropped, and the
// no-symptoms sentinel overrides every other tag even if the caller failed to
// enforce exclusivity.
func Generate(checkIn models.CheckIn) models.RecoveryPlan {
	severity := checkIn.Severity
	if !models.ValidSeverity(severity) {
		severity = models.SeverityMild
	}
	profile := severityProfiles[severity]

	symptoms := models.NormalizeSymptoms(checkIn.Symptoms)

	steps := cloneSteps(profile.BaseSteps)
	steps = appendSymptomSteps(steps, symptoms)
	steps = appendContextSteps(steps, checkIn)

	return models.RecoveryPlan{
		Window:              profile.Window,
		WindowLabel:         windowLabel(profile.Window),
		HydrationGoalLiters: profile.HydrationGoalLiters,
		SymptomLabels:       symptomLabels(symptoms),
		LevelLabel:          profile.LevelLabel,
		Steps:               steps,
		MicroAction:         profile.MicroAction,
	}
}

func appendSymptomSteps(steps []models.Step, symptoms []string) []models.Step {
	rules := make([]symptomRule, 0, len(symptoms))
	for _, tag := range symptoms {
		for _, rule := range symptomRules {
			if rule.Tag == tag {
				rules = append(rules, rule)
				break
			}
		}
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority < rules[j].Priority
	})

	appended := 0
	for _, rule := range rules {
		for _, step := range rule.Steps {
			if appended >= maxSymptomSteps {
				return steps
			}
			if containsStep(steps, step.ID) {
				continue
			}
			steps = append(steps, step)
			appended++
		}
	}
	return steps
}

func appendContextSteps(steps []models.Step, checkIn models.CheckIn) []models.Step {
	if checkIn.DrankLastNight != nil && *checkIn.DrankLastNight && !containsStep(steps, contextDrankStep.ID) {
		steps = append(steps, contextDrankStep)
	}
	if checkIn.DrinkingToday != nil && *checkIn.DrinkingToday && !containsStep(steps, contextDrinkingStep.ID) {
		steps = append(steps, contextDrinkingStep)
	}
	return steps
}

func symptomLabels(symptoms []string) []string {
	labels := make([]string, 0, len(symptoms))
	for _, tag := range symptoms {
		if label := models.SymptomLabel(tag); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}

func windowLabel(window models.RecoveryWindow) string {
	if window.MinHours <= 0 {
		return fmt.Sprintf("Up to %d hours", window.MaxHours)
	}
	return fmt.Sprintf("%d–%d hours", window.MinHours, window.MaxHours)
}

func containsStep(steps []models.Step, stepID string) bool {
	for _, step := range steps {
		if step.ID == stepID {
			return true
		}
	}
	return false
}

func cloneSteps(steps []models.Step) []models.Step {
	cloned := make([]models.Step, len(steps))
	copy(cloned, steps)
	return cloned
}
