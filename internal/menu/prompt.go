package menu

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// Choice is one numbered menu entry.
type Choice struct {
	Key   int
	Label string
}

// Prompter collects input from the user. Implementations return
// huh.ErrUserAborted when the user backs out of a prompt.
type Prompter interface {
	Choose(title string, choices []Choice) (int, error)
	Text(title string, validate func(string) error) (string, error)
	Confirm(title string) (bool, error)
}

// HuhPrompter prompts on the terminal with huh forms.
type HuhPrompter struct {
	// Accessible switches huh to plain line-based prompts for screen readers
	Accessible bool
}

func (p *HuhPrompter) Choose(title string, choices []Choice) (int, error) {
	options := make([]huh.Option[int], 0, len(choices))
	for _, c := range choices {
		options = append(options, huh.NewOption(fmt.Sprintf("%2d  %s", c.Key, c.Label), c.Key))
	}

	var key int
	err := p.run(huh.NewSelect[int]().
		Title(title).
		Options(options...).
		Value(&key))
	return key, err
}

func (p *HuhPrompter) Text(title string, validate func(string) error) (string, error) {
	if validate == nil {
		validate = func(string) error { return nil }
	}

	var value string
	err := p.run(huh.NewInput().
		Title(title).
		Value(&value).
		Validate(validate))
	return value, err
}

func (p *HuhPrompter) Confirm(title string) (bool, error) {
	var ok bool
	err := p.run(huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok))
	return ok, err
}

func (p *HuhPrompter) run(field huh.Field) error {
	return huh.NewForm(huh.NewGroup(field)).
		WithTheme(huh.ThemeDracula()).
		WithAccessible(p.Accessible).
		Run()
}
