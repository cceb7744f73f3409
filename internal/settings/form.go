// Package settings is the interactive editor for the config file.
package settings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"typedterm/internal/config"
	"typedterm/internal/scenario"
	"typedterm/internal/theme"
)

// fields mirrors the editable part of config.Config as strings, the shape
// huh inputs bind to.
type fields struct {
	CharDelay   string
	LinePause   string
	Loop        bool
	LoopDelay   string
	ClearOnLoop bool
	Scenario    string
	LineNumbers bool
	Typing      bool
	TypingSpeed string
	LogLevel    string
}

func fromConfig(c config.Config) fields {
	return fields{
		CharDelay:   time.Duration(c.Terminal.CharDelay).String(),
		LinePause:   strconv.Itoa(c.Terminal.LinePause),
		Loop:        c.Terminal.Loop,
		LoopDelay:   time.Duration(c.Terminal.LoopDelay).String(),
		ClearOnLoop: c.Terminal.ClearOnLoop,
		Scenario:    c.Terminal.Scenario,
		LineNumbers: c.Code.LineNumbers,
		Typing:      c.Code.Typing,
		TypingSpeed: time.Duration(c.Code.TypingSpeed).String(),
		LogLevel:    c.LogLevel,
	}
}

// apply copies f onto c. Inputs are validated by the form, so parse
// errors here mean a programming mistake and are returned as is.
func (f fields) apply(c config.Config) (config.Config, error) {
	var err error
	parse := func(s string) config.Duration {
		d, perr := time.ParseDuration(s)
		if perr != nil && err == nil {
			err = perr
		}
		return config.Duration(d)
	}
	c.Terminal.CharDelay = parse(f.CharDelay)
	c.Terminal.LoopDelay = parse(f.LoopDelay)
	c.Code.TypingSpeed = parse(f.TypingSpeed)
	n, perr := strconv.Atoi(f.LinePause)
	if perr != nil && err == nil {
		err = perr
	}
	c.Terminal.LinePause = n
	c.Terminal.Loop = f.Loop
	c.Terminal.ClearOnLoop = f.ClearOnLoop
	c.Terminal.Scenario = f.Scenario
	c.Code.LineNumbers = f.LineNumbers
	c.Code.Typing = f.Typing
	c.LogLevel = f.LogLevel
	if err != nil {
		return c, err
	}
	return c, c.Validate()
}

func validDuration(s string) error {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("use a duration like 50ms or 2s")
	}
	if d <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

func validCount(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fmt.Errorf("must be a whole number ≥ 1")
	}
	return nil
}

func formTheme() *huh.Theme {
	accent := theme.Vitesse.Primary
	t := huh.ThemeCharm()
	t.FieldSeparator = lipgloss.NewStyle()
	t.Blurred.Title = t.Blurred.Title.Width(18).Foreground(theme.Vitesse.Secondary)
	t.Focused.Title = t.Focused.Title.Width(18).Foreground(accent).Bold(true)
	t.Blurred.SelectedOption = t.Blurred.SelectedOption.Foreground(theme.Vitesse.Muted)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(accent)
	t.Focused.Base = t.Focused.Base.BorderForeground(accent)
	return t
}

// Run loads the config, lets the user edit it, and saves it on submit.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	f := fromConfig(cfg)

	scenarioOpts := []huh.Option[string]{}
	for _, s := range cfg.AllScenarios() {
		scenarioOpts = append(scenarioOpts, huh.NewOption(s.Name, s.Name))
	}
	if len(scenarioOpts) == 0 {
		scenarioOpts = append(scenarioOpts, huh.NewOption(scenario.Default, scenario.Default))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Terminal").Description("Typing speed and looping of the typed terminal"),
			huh.NewInput().Title("Char delay").Value(&f.CharDelay).Validate(validDuration),
			huh.NewInput().Title("Line pause").Value(&f.LinePause).Validate(validCount),
			huh.NewConfirm().Title("Loop").Value(&f.Loop),
			huh.NewInput().Title("Loop delay").Value(&f.LoopDelay).Validate(validDuration),
			huh.NewConfirm().Title("Clear on loop").Value(&f.ClearOnLoop),
			huh.NewSelect[string]().Title("Scenario").Options(scenarioOpts...).Value(&f.Scenario),
		),
		huh.NewGroup(
			huh.NewNote().Title("Code blocks"),
			huh.NewConfirm().Title("Line numbers").Value(&f.LineNumbers),
			huh.NewConfirm().Title("Typing effect").Value(&f.Typing),
			huh.NewInput().Title("Typing speed").Value(&f.TypingSpeed).Validate(validDuration),
			huh.NewSelect[string]().Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&f.LogLevel),
		),
	).WithTheme(formTheme()).WithWidth(60)

	if err := form.Run(); err != nil {
		return err // form canceled or failed
	}

	cfg, err = f.apply(cfg)
	if err != nil {
		return err
	}
	p, err := config.Save(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("\n✓ saved %s\n\n", p)
	return nil
}
