// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog holds the fixed list of future-occupation themes a user
// can pick before transformation. The catalog is an immutable configuration
// table loaded once at process start; nothing in the application mutates it.
package catalog

// Theme is one selectable occupation. Prompt is the full instruction sent
// to the image provider together with the user's photo; Accent is the UI
// accent colour for the theme card.
type Theme struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Prompt      string `json:"prompt"`
	Accent      string `json:"accent"`
}

// promptSuffix keeps the person recognisable across all themes.
const promptSuffix = " Keep the person's face clearly recognisable and " +
	"photorealistic. Frame it as a professional portrait photograph."

// themes is the fixed, ordered occupation list. The first entry is the
// default selection.
var themes = []Theme{
	{
		ID:          "astronaut",
		Title:       "Astronaut",
		Description: "Suit up for a mission beyond Earth.",
		Prompt: "Transform this person into an astronaut wearing a detailed " +
			"white spacesuit, helmet under one arm, standing in a spacecraft " +
			"hangar with a rocket visible behind them." + promptSuffix,
		Accent: "#4f46e5",
	},
	{
		ID:          "chef",
		Title:       "Head Chef",
		Description: "Run the pass in a Michelin-star kitchen.",
		Prompt: "Transform this person into a head chef in a pristine white " +
			"chef's jacket and toque, plating a dish in a busy professional " +
			"restaurant kitchen." + promptSuffix,
		Accent: "#ea580c",
	},
	{
		ID:          "firefighter",
		Title:       "Firefighter",
		Description: "Answer the call with the rescue crew.",
		Prompt: "Transform this person into a firefighter in full turnout " +
			"gear with reflective stripes and a helmet, standing in front of " +
			"a fire engine." + promptSuffix,
		Accent: "#dc2626",
	},
	{
		ID:          "surgeon",
		Title:       "Surgeon",
		Description: "Lead the team in the operating theatre.",
		Prompt: "Transform this person into a surgeon wearing scrubs, a " +
			"surgical cap and a stethoscope, standing in a bright modern " +
			"hospital corridor." + promptSuffix,
		Accent: "#0d9488",
	},
	{
		ID:          "pilot",
		Title:       "Airline Pilot",
		Description: "Take command of the flight deck.",
		Prompt: "Transform this person into an airline captain in a navy " +
			"uniform with four gold stripes and a pilot's cap, standing on " +
			"the tarmac beside a jet." + promptSuffix,
		Accent: "#2563eb",
	},
	{
		ID:          "scientist",
		Title:       "Research Scientist",
		Description: "Push the frontier in the laboratory.",
		Prompt: "Transform this person into a research scientist in a white " +
			"lab coat and safety glasses, working at a bench full of " +
			"glassware in a modern laboratory." + promptSuffix,
		Accent: "#7c3aed",
	},
	{
		ID:          "musician",
		Title:       "Concert Musician",
		Description: "Headline the stage under the lights.",
		Prompt: "Transform this person into a concert musician on a large " +
			"stage, holding an electric guitar, lit by dramatic stage lights " +
			"with a crowd in the background." + promptSuffix,
		Accent: "#db2777",
	},
	{
		ID:          "architect",
		Title:       "Architect",
		Description: "Shape the skyline of tomorrow.",
		Prompt: "Transform this person into an architect in smart attire " +
			"reviewing blueprints at a drafting table, with a city skyline " +
			"visible through the office window." + promptSuffix,
		Accent: "#475569",
	},
}

// All returns the ordered theme list. Callers must not modify the
// returned slice.
func All() []Theme {
	return themes
}

// Default returns the first theme in the catalog, which is the initial
// selection for new sessions.
func Default() Theme {
	return themes[0]
}

// Find looks up a theme by id. The second return value is false when the
// id is not in the catalog.
func Find(id string) (Theme, bool) {
	for _, t := range themes {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}
