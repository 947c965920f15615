package planner

import "github.com/rowanherne/morrow/internal/models"

type severityProfile struct {
	Window              models.RecoveryWindow
	HydrationGoalLiters float64
	LevelLabel          string
	MicroAction         string
	BaseSteps           []models.Step
}

// severityProfiles fixes the base plan per severity level. Step order here is
// the order the plan presents them in.
var severityProfiles = map[string]severityProfile{
	models.SeverityNone: {
		Window:              models.RecoveryWindow{MinHours: 0, MaxHours: 4},
		HydrationGoalLiters: 1.5,
		LevelLabel:          "Feeling fine",
		MicroAction:         "Drink a glass of water to start the day.",
		BaseSteps: []models.Step{
			{ID: "hydrate_light", Title: "Stay hydrated", Body: "Keep a water bottle nearby and sip through the morning."},
			{ID: "fresh_air", Title: "Get fresh air", Body: "A ten minute walk outside sets the tone for the day."},
		},
	},
	models.SeverityMild: {
		Window:              models.RecoveryWindow{MinHours: 6, MaxHours: 12},
		HydrationGoalLiters: 2.0,
		LevelLabel:          "Mild hangover",
		MicroAction:         "Drink a full glass of water right now.",
		BaseSteps: []models.Step{
			{ID: "hydrate", Title: "Rehydrate", Body: "Drink two liters of water across the day, starting now."},
			{ID: "light_breakfast", Title: "Eat a light breakfast", Body: "Toast, eggs or a banana settle the stomach and restore energy."},
			{ID: "fresh_air", Title: "Get fresh air", Body: "A short walk and daylight help reset your body clock."},
		},
	},
	models.SeverityModerate: {
		Window:              models.RecoveryWindow{MinHours: 12, MaxHours: 18},
		HydrationGoalLiters: 2.5,
		LevelLabel:          "Moderate hangover",
		MicroAction:         "Drink a full glass of water, then another in an hour.",
		BaseSteps: []models.Step{
			{ID: "hydrate", Title: "Rehydrate", Body: "Drink two and a half liters of water across the day, in small amounts."},
			{ID: "electrolytes", Title: "Replenish electrolytes", Body: "A sports drink or salted broth restores sodium and potassium."},
			{ID: "light_breakfast", Title: "Eat something gentle", Body: "Plain carbs and a little protein, nothing greasy or spicy."},
			{ID: "rest", Title: "Take it easy", Body: "Skip strenuous exercise today; a slow walk is plenty."},
			{ID: "no_caffeine_binge", Title: "Go easy on coffee", Body: "One coffee at most; caffeine on top of dehydration backfires."},
		},
	},
	models.SeveritySevere: {
		Window:              models.RecoveryWindow{MinHours: 18, MaxHours: 24},
		HydrationGoalLiters: 3.0,
		LevelLabel:          "Severe hangover",
		MicroAction:         "Sip water slowly, a few mouthfuls every ten minutes.",
		BaseSteps: []models.Step{
			{ID: "hydrate_slow", Title: "Rehydrate slowly", Body: "Small sips, steadily. Gulping water on an unsettled stomach rebounds."},
			{ID: "electrolytes", Title: "Replenish electrolytes", Body: "An electrolyte solution or salted broth before any solid food."},
			{ID: "rest", Title: "Clear your schedule", Body: "Your body needs the day. Cancel what can be cancelled and rest."},
			{ID: "bland_food", Title: "Eat bland food when ready", Body: "Crackers, rice or bananas once the nausea eases."},
			{ID: "no_alcohol", Title: "No hair of the dog", Body: "More alcohol delays recovery and deepens the crash."},
			{ID: "early_night", Title: "Plan an early night", Body: "Sleep is when the real repair happens. Be in bed early."},
		},
	},
}

type symptomRule struct {
	Tag      string
	Priority int
	Steps    []models.Step
}

// symptomRules appends bounded extras per reported symptom. Lower priority
// sorts first; ties break on catalog order. Keep each rule to at most two
// steps so a busy check-in cannot explode the plan.
var symptomRules = []symptomRule{
	{
		Tag:      models.SymptomNausea,
		Priority: 1,
		Steps: []models.Step{
			{ID: "ginger", Title: "Try ginger or peppermint", Body: "Ginger tea or peppermint settles nausea without medication."},
		},
	},
	{
		Tag:      models.SymptomDizziness,
		Priority: 2,
		Steps: []models.Step{
			{ID: "sit_first", Title: "Stand up slowly", Body: "Sit on the edge of the bed before standing; dizziness plus stairs is a bad mix."},
		},
	},
	{
		Tag:      models.SymptomHeadache,
		Priority: 3,
		Steps: []models.Step{
			{ID: "dark_room", Title: "Rest your eyes", Body: "Twenty minutes in a dim, quiet room takes the edge off a headache."},
			{ID: "cold_compress", Title: "Try a cold compress", Body: "A cool cloth on the forehead or neck eases throbbing."},
		},
	},
	{
		Tag:      models.SymptomDryMouth,
		Priority: 4,
		Steps: []models.Step{
			{ID: "extra_water", Title: "Add an extra half liter", Body: "Dry mouth means you are behind on fluids; top up beyond the goal."},
		},
	},
	{
		Tag:      models.SymptomStomachache,
		Priority: 5,
		Steps: []models.Step{
			{ID: "skip_acids", Title: "Skip coffee and citrus", Body: "Acidic drinks irritate an already unhappy stomach lining."},
		},
	},
	{
		Tag:      models.SymptomAnxiety,
		Priority: 6,
		Steps: []models.Step{
			{ID: "breathing", Title: "Do a breathing exercise", Body: "Four counts in, six counts out, for three minutes. Hangxiety fades."},
			{ID: "no_doomscroll", Title: "Stay off the feeds", Body: "Doomscrolling feeds the anxiety loop. Music or a podcast instead."},
		},
	},
	{
		Tag:      models.SymptomSensitivity,
		Priority: 7,
		Steps: []models.Step{
			{ID: "sunglasses", Title: "Dim the world", Body: "Sunglasses and low volume until the sensitivity passes."},
		},
	},
	{
		Tag:      models.SymptomFatigue,
		Priority: 8,
		Steps: []models.Step{
			{ID: "short_nap", Title: "Take a short nap", Body: "Twenty minutes, not two hours; a long nap wrecks tonight's sleep."},
		},
	},
	{
		Tag:      models.SymptomPoorSleep,
		Priority: 9,
		Steps: []models.Step{
			{ID: "early_night", Title: "Protect tonight's sleep", Body: "No screens the last hour and lights out early tonight."},
		},
	},
}

// maxSymptomSteps caps how many extra steps symptoms can append in total.
const maxSymptomSteps = 6

var contextDrankStep = models.Step{
	ID:    "vitamins",
	Title: "Take B vitamins with food",
	Body:  "Alcohol depletes B vitamins; replace them with breakfast.",
}

var contextDrinkingStep = models.Step{
	ID:    "pace_tonight",
	Title: "Pace yourself tonight",
	Body:  "Alternate every drink with a glass of water and set a stop time.",
}
