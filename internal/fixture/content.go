package fixture

import "github.com/episteme/verification/internal/journey"

// Journey is the content the fixture page renders
type Journey struct {
	MapHeading  string `json:"mapHeading"`
	MapTagline  string `json:"mapTagline"`
	TotalNodes  int    `json:"totalNodes"`
	Nodes       []Node `json:"nodes"`
	HallButton  string `json:"hallButton"` // empty hides the button
	HallTitle   string `json:"hallTitle"`
	HallTagline string `json:"hallTagline"`
	HallEmpty   string `json:"hallEmpty"`
}

// Node is a point on the curriculum map
type Node struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	NarrativeTitle string `json:"narrativeTitle"`
	Locked         bool   `json:"locked"`
	Quest          *Quest `json:"quest,omitempty"`
}

// Quest is the question behind a node
type Quest struct {
	Title            string   `json:"title"`
	Narrative        string   `json:"narrative"`
	ChallengeHeading string   `json:"challengeHeading"`
	Problem          string   `json:"problem"`
	Options          []Option `json:"options"`
	CorrectID        string   `json:"correctId"`
	Hint             string   `json:"hint"`
	Success          string   `json:"success"`
	CompleteButton   string   `json:"completeButton"`
}

// Option is one answer button
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// DefaultJourney returns the content of the live Episteme application
func DefaultJourney() Journey {
	return Journey{
		MapHeading: journey.MapHeading,
		MapTagline: "Navigate the fog to unlock new knowledge constellations.",
		TotalNodes: 8,
		Nodes: []Node{
			{
				ID:             "scientific-practices",
				Title:          "Scientific Practices",
				NarrativeTitle: journey.QuestNode,
				Quest: &Quest{
					Title:            journey.QuestNode,
					Narrative:        "You wake in a strange land covered in fog. A glowing stone lies at your feet.",
					ChallengeHeading: journey.ChallengeHeading,
					Problem:          "You find a mysterious glowing stone. What is the first thing you should do?",
					Options: []Option{
						{ID: "a", Text: "Immediately hit it with a hammer to see what's inside."},
						{ID: "b", Text: "Observe its properties and ask questions about what it might be."},
						{ID: "c", Text: "Ignore it and walk away."},
					},
					CorrectID:      "b",
					Hint:           "Think about safety and gathering information first.",
					Success:        "Excellent! Observation is the foundation of all science. By asking questions, you begin to clear the fog.",
					CompleteButton: journey.CompleteButton,
				},
			},
			{
				ID:             "forces-and-motion",
				Title:          "Forces and Motion",
				NarrativeTitle: "The Unmoving Boulder",
				Locked:         true,
			},
			{
				ID:             "matter",
				Title:          "Matter and Its Interactions",
				NarrativeTitle: "The Shifting Sands",
				Locked:         true,
			},
		},
		HallButton:  journey.HallButton,
		HallTitle:   "Hall of Process",
		HallTagline: journey.HallTagline + ".",
		HallEmpty:   "The Hall is empty. Complete quests to forge your legacy.",
	}
}
