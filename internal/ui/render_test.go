package ui

import (
	"strings"
	"testing"

	"github.com/julianstephens/habitlog/internal/models"
)

func TestHabitList(t *testing.T) {
	if got := HabitList(nil); !strings.Contains(got, "No habits") {
		t.Errorf("HabitList(nil) = %q", got)
	}

	got := HabitList([]string{"Push-ups", "Reading"})
	for _, want := range []string{"Habits (2)", "1. Push-ups", "2. Reading"} {
		if !strings.Contains(got, want) {
			t.Errorf("HabitList() missing %q in:\n%s", want, got)
		}
	}
}

func TestHistoryTable(t *testing.T) {
	if got := HistoryTable("Push-ups", nil); !strings.Contains(got, `No logs for "Push-ups"`) {
		t.Errorf("HistoryTable(empty) = %q", got)
	}

	logs := []models.HabitLog{
		{HabitName: "Push-ups", Date: "2024-03-09", Amount: 20},
		{HabitName: "Push-ups", Date: "2024-03-10", Amount: 35},
	}
	got := HistoryTable("Push-ups", logs)
	for _, want := range []string{"Push-ups", "Date", "Amount", "2024-03-09", "2024-03-10", "20", "35", "total", "55"} {
		if !strings.Contains(got, want) {
			t.Errorf("HistoryTable() missing %q in:\n%s", want, got)
		}
	}
}

func TestLogLine(t *testing.T) {
	got := LogLine(models.HabitLog{HabitName: "Push-ups", Date: "2024-03-10", Amount: -2})
	if got != "Push-ups  2024-03-10  -2" {
		t.Errorf("LogLine() = %q", got)
	}
}
