package journey

// Action is what a step does with its target
type Action string

const (
	ActionLaunch   Action = "launch"
	ActionClose    Action = "close"
	ActionNavigate Action = "navigate"
	ActionWait     Action = "wait"
	ActionClick    Action = "click"
)

// Step is one state of the journey
type Step struct {
	Number      int
	Name        string
	Description string // logged before the step runs
	Action      Action
	URL         string // navigate only
	Selector    Selector
	Screenshots []string // captured after a successful wait
}

// Texts the journey waits for and clicks on
const (
	MapHeading       = "Your Journey Map"
	QuestNode        = "The Awakening"
	ChallengeHeading = "The Challenge"
	WrongAnswer      = "Immediately hit it with a hammer"
	HintText         = "Think about safety"
	CorrectAnswer    = "Observe its properties"
	SuccessText      = "Excellent! Observation is the foundation"
	CompleteButton   = "Quest Complete - Continue Journey"
	HallButton       = "Hall of Process"
	HallTagline      = "Your journey reflected in data"
)

// Screenshot filenames, in capture order
const (
	ShotMapInitial   = "01_map_initial.png"
	ShotQuestView    = "02_quest_view.png"
	ShotQuestHint    = "03_quest_hint.png"
	ShotQuestSuccess = "04_quest_success.png"
	ShotMapUpdated   = "05_map_updated.png"
	ShotHallOfProc   = "06_hall_of_process.png"
	ShotHallContent  = "07_hall_content.png"
)

// Screenshots lists every file a complete run writes
var Screenshots = []string{
	ShotMapInitial,
	ShotQuestView,
	ShotQuestHint,
	ShotQuestSuccess,
	ShotMapUpdated,
	ShotHallOfProc,
	ShotHallContent,
}

// Session lifecycle steps that bracket the journey
const (
	LaunchStep = 1
	CloseStep  = 14
)

// Episteme returns the Episteme journey against baseURL. Launching the
// browser (step 1) and closing it (step 14) belong to the browser session.
func Episteme(baseURL string) []Step {
	return []Step{
		{
			Number:      2,
			Name:        "open-app",
			Description: "Navigating to Episteme...",
			Action:      ActionNavigate,
			URL:         baseURL,
		},
		{
			Number:      3,
			Name:        "map-view",
			Description: "Verifying Map View...",
			Action:      ActionWait,
			Selector:    Text(MapHeading),
			Screenshots: []string{ShotMapInitial},
		},
		{
			Number:      4,
			Name:        "select-quest",
			Description: "Clicking on 'Scientific Practices' node...",
			Action:      ActionClick,
			Selector:    Text(QuestNode),
		},
		{
			Number:      5,
			Name:        "quest-view",
			Description: "Verifying Quest View...",
			Action:      ActionWait,
			Selector:    Text(ChallengeHeading),
			Screenshots: []string{ShotQuestView},
		},
		{
			Number:      6,
			Name:        "answer-incorrectly",
			Description: "Answering incorrectly...",
			Action:      ActionClick,
			Selector:    Button(WrongAnswer),
		},
		{
			Number:      7,
			Name:        "quest-hint",
			Description: "Waiting for hint...",
			Action:      ActionWait,
			Selector:    Text(HintText),
			Screenshots: []string{ShotQuestHint},
		},
		{
			Number:      8,
			Name:        "answer-correctly",
			Description: "Answering correctly...",
			Action:      ActionClick,
			Selector:    Button(CorrectAnswer),
		},
		{
			Number:      9,
			Name:        "quest-success",
			Description: "Waiting for success message...",
			Action:      ActionWait,
			Selector:    Text(SuccessText),
			Screenshots: []string{ShotQuestSuccess},
		},
		{
			Number:      10,
			Name:        "complete-quest",
			Description: "Completing quest...",
			Action:      ActionClick,
			Selector:    Button(CompleteButton),
		},
		{
			Number:      11,
			Name:        "map-updated",
			Description: "Verifying Map Update...",
			Action:      ActionWait,
			Selector:    Text(MapHeading),
			Screenshots: []string{ShotMapUpdated},
		},
		{
			Number:      12,
			Name:        "open-hall",
			Description: "Opening Hall of Process...",
			Action:      ActionClick,
			Selector:    Button(HallButton),
		},
		{
			Number:      13,
			Name:        "hall-of-process",
			Description: "Verifying Hall of Process...",
			Action:      ActionWait,
			Selector:    Text(HallTagline),
			Screenshots: []string{ShotHallOfProc, ShotHallContent},
		},
	}
}
