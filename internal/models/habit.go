package models

// HabitLog represents a single day's measurement for a habit
type HabitLog struct {
	HabitName string `json:"habit_name"`
	Date      string `json:"date"` // YYYY-MM-DD format
	Amount    int    `json:"amount"`
}
