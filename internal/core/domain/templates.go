package domain

// HabitTemplate is a named, ready-made group of habits a user can add in one go.
type HabitTemplate struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Habits []string `json:"habits"`
}

var HabitTemplates = []HabitTemplate{
	{
		ID:     "morning",
		Title:  "Morning routine",
		Habits: []string{"Wake up before 7", "Drink a glass of water", "Make the bed", "Stretch for 10 minutes"},
	},
	{
		ID:     "health",
		Title:  "Health",
		Habits: []string{"Walk 8000 steps", "Eat a portion of vegetables", "No sugary drinks", "Sleep 8 hours"},
	},
	{
		ID:     "mind",
		Title:  "Mind",
		Habits: []string{"Read 20 pages", "Meditate", "Journal", "No phone after 22:00"},
	},
}

func FindTemplate(id string) (HabitTemplate, bool) {
	for _, t := range HabitTemplates {
		if t.ID == id {
			return t, true
		}
	}
	return HabitTemplate{}, false
}
