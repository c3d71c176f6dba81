package main

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quantfold/fohlcv/pkg/marketdata"
)

// Application states.
const (
	StateAssetTypeSelect = iota
	StateTickerInput
	StateIntervalSelect
	StateStartInput
	StateEndInput
	StatePeriodInput
	StateFormatSelect
	StateSaveSelect
	StateDone
)

// WizardResult holds the answers collected by the wizard. Empty string fields
// mean the user skipped the question.
type WizardResult struct {
	Ticker   string
	Interval string
	Start    string
	End      string
	Period   string
	Format   string
	NoSave   bool
}

// Model is the Bubble Tea model for the interactive download wizard.
type Model struct {
	state         int
	assetTypeList list.Model
	tickerInput   textinput.Model
	intervalList  list.Model
	startInput    textinput.Model
	endInput      textinput.Model
	periodInput   textinput.Model
	formatList    list.Model
	saveList      list.Model

	assetType string
	result    WizardResult
	completed bool
	inputErr  string
	width     int
	height    int
}

// NewModel creates a new wizard model at its initial state.
func NewModel() Model {
	return Model{
		state:         StateAssetTypeSelect,
		assetTypeList: NewAssetTypeList(),
		tickerInput:   NewTickerInput(),
		intervalList:  NewIntervalList(),
		startInput:    NewDateInput(),
		endInput:      NewDateInput(),
		periodInput:   NewPeriodInput(),
		formatList:    NewFormatList(),
		saveList:      NewSaveList(),
	}
}

// Result returns the collected answers and whether the wizard ran to
// completion rather than being aborted.
func (m Model) Result() (WizardResult, bool) {
	return m.result, m.completed
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if !m.inTextInput() {
				return m, tea.Quit
			}
		case "esc":
			return m.handleEsc()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.assetTypeList.SetSize(msg.Width, msg.Height-4)
		m.intervalList.SetSize(msg.Width, msg.Height-4)
		m.formatList.SetSize(msg.Width, msg.Height-4)
		m.saveList.SetSize(msg.Width, msg.Height-4)

		return m, nil
	}

	switch m.state {
	case StateAssetTypeSelect:
		return m.updateAssetTypeSelect(msg)
	case StateTickerInput:
		return m.updateTickerInput(msg)
	case StateIntervalSelect:
		return m.updateIntervalSelect(msg)
	case StateStartInput:
		return m.updateStartInput(msg)
	case StateEndInput:
		return m.updateEndInput(msg)
	case StatePeriodInput:
		return m.updatePeriodInput(msg)
	case StateFormatSelect:
		return m.updateFormatSelect(msg)
	case StateSaveSelect:
		return m.updateSaveSelect(msg)
	}

	return m, nil
}

// inTextInput reports whether the current state captures free text, so plain
// letters like q must not quit.
func (m Model) inTextInput() bool {
	switch m.state {
	case StateTickerInput, StateStartInput, StateEndInput, StatePeriodInput:
		return true
	}

	return false
}

func (m Model) handleEsc() (tea.Model, tea.Cmd) {
	m.inputErr = ""

	switch m.state {
	case StateTickerInput:
		m.tickerInput.Blur()
		m.state = StateAssetTypeSelect
	case StateIntervalSelect:
		m.state = StateTickerInput
		m.tickerInput.Focus()

		return m, textinput.Blink
	case StateStartInput:
		m.startInput.Blur()
		m.state = StateIntervalSelect
	case StateEndInput:
		m.endInput.Blur()
		m.state = StateStartInput
		m.startInput.Focus()

		return m, textinput.Blink
	case StatePeriodInput:
		m.periodInput.Blur()
		m.state = StateEndInput
		m.endInput.Focus()

		return m, textinput.Blink
	case StateFormatSelect:
		m.state = StateEndInput
		m.endInput.Focus()

		return m, textinput.Blink
	case StateSaveSelect:
		m.state = StateFormatSelect
	}

	return m, nil
}

func (m Model) updateAssetTypeSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if item, ok := m.assetTypeList.SelectedItem().(listItem); ok {
			m.assetType = item.name

			if examples := examplesFor(item.name); len(examples) > 0 {
				m.tickerInput.Placeholder = examples[0]
			}

			m.state = StateTickerInput
			m.tickerInput.Focus()

			return m, textinput.Blink
		}
	}

	var cmd tea.Cmd
	m.assetTypeList, cmd = m.assetTypeList.Update(msg)

	return m, cmd
}

func (m Model) updateTickerInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		ticker := strings.TrimSpace(m.tickerInput.Value())
		if ticker == "" {
			// Accept the placeholder example as the answer.
			ticker = strings.TrimSpace(m.tickerInput.Placeholder)
		}

		if ticker != "" {
			m.result.Ticker = ticker
			m.inputErr = ""
			m.tickerInput.Blur()
			m.state = StateIntervalSelect

			return m, nil
		}

		m.inputErr = "ticker is required"

		return m, nil
	}

	var cmd tea.Cmd
	m.tickerInput, cmd = m.tickerInput.Update(msg)

	return m, cmd
}

func (m Model) updateIntervalSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if item, ok := m.intervalList.SelectedItem().(listItem); ok {
			m.result.Interval = item.name
			m.state = StateStartInput
			m.startInput.Focus()

			return m, textinput.Blink
		}
	}

	var cmd tea.Cmd
	m.intervalList, cmd = m.intervalList.Update(msg)

	return m, cmd
}

func (m Model) updateStartInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		value := strings.TrimSpace(m.startInput.Value())
		if value != "" {
			if _, err := time.Parse("2006-01-02", value); err != nil {
				m.inputErr = "dates must be YYYY-MM-DD"

				return m, nil
			}
		}

		m.result.Start = value
		m.inputErr = ""
		m.startInput.Blur()
		m.state = StateEndInput
		m.endInput.Focus()

		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.startInput, cmd = m.startInput.Update(msg)

	return m, cmd
}

func (m Model) updateEndInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		value := strings.TrimSpace(m.endInput.Value())
		if value != "" {
			if _, err := time.Parse("2006-01-02", value); err != nil {
				m.inputErr = "dates must be YYYY-MM-DD"

				return m, nil
			}
		}

		m.result.End = value
		m.inputErr = ""
		m.endInput.Blur()

		// The period only matters when no explicit range was given.
		if m.result.Start == "" && m.result.End == "" {
			m.state = StatePeriodInput
			m.periodInput.Focus()

			return m, textinput.Blink
		}

		m.state = StateFormatSelect

		return m, nil
	}

	var cmd tea.Cmd
	m.endInput, cmd = m.endInput.Update(msg)

	return m, cmd
}

func (m Model) updatePeriodInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		value := strings.TrimSpace(m.periodInput.Value())
		if value == "" {
			value = string(marketdata.DefaultPeriod)
		}

		if _, err := marketdata.ParsePeriod(value); err != nil {
			m.inputErr = "period must look like 5d, 60d, 2wk, 3mo, 1y, ytd or max"

			return m, nil
		}

		m.result.Period = value
		m.inputErr = ""
		m.periodInput.Blur()
		m.state = StateFormatSelect

		return m, nil
	}

	var cmd tea.Cmd
	m.periodInput, cmd = m.periodInput.Update(msg)

	return m, cmd
}

func (m Model) updateFormatSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if item, ok := m.formatList.SelectedItem().(listItem); ok {
			m.result.Format = item.name
			m.state = StateSaveSelect

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.formatList, cmd = m.formatList.Update(msg)

	return m, cmd
}

func (m Model) updateSaveSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if item, ok := m.saveList.SelectedItem().(listItem); ok {
			m.result.NoSave = item.name == "no"
			m.completed = true
			m.state = StateDone

			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.saveList, cmd = m.saveList.Update(msg)

	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	switch m.state {
	case StateAssetTypeSelect:
		s.WriteString(TitleStyle.Render("fohlcv — TOHLCV Downloader (Yahoo Finance)"))
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("Downloads time, open, high, low, close, volume"))
		s.WriteString("\n\n")
		s.WriteString(m.assetTypeList.View())
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("Press Enter to select, q to quit"))

	case StateTickerInput:
		s.WriteString(TitleStyle.Render("Enter Ticker"))
		s.WriteString("\n\n")

		if examples := examplesFor(m.assetType); len(examples) > 0 {
			s.WriteString(HelpStyle.Render("Examples (" + m.assetType + "): " + strings.Join(examples, ", ")))
			s.WriteString("\n\n")
		}

		s.WriteString(m.tickerInput.View())
		s.WriteString("\n\n")
		m.writeInputErr(&s)
		s.WriteString(HelpStyle.Render("Press Enter to confirm (empty accepts the example), Esc to go back"))

	case StateIntervalSelect:
		s.WriteString(TitleStyle.Render("Select Interval"))
		s.WriteString("\n\n")
		s.WriteString(m.intervalList.View())
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("Press Enter to select, Esc to go back"))

	case StateStartInput:
		s.WriteString(TitleStyle.Render("Start Date"))
		s.WriteString("\n\n")
		s.WriteString(HelpStyle.Render("Leave empty to use a lookback period instead"))
		s.WriteString("\n\n")
		s.WriteString(m.startInput.View())
		s.WriteString("\n\n")
		m.writeInputErr(&s)
		s.WriteString(HelpStyle.Render("Press Enter to confirm, Esc to go back"))

	case StateEndInput:
		s.WriteString(TitleStyle.Render("End Date"))
		s.WriteString("\n\n")
		s.WriteString(HelpStyle.Render("The end date is exclusive; for a single day use the next day"))
		s.WriteString("\n\n")
		s.WriteString(m.endInput.View())
		s.WriteString("\n\n")
		m.writeInputErr(&s)
		s.WriteString(HelpStyle.Render("Press Enter to confirm, Esc to go back"))

	case StatePeriodInput:
		s.WriteString(TitleStyle.Render("Lookback Period"))
		s.WriteString("\n\n")
		s.WriteString(HelpStyle.Render("e.g. 5d, 30d, 60d, 1y, ytd, max"))
		s.WriteString("\n\n")
		s.WriteString(m.periodInput.View())
		s.WriteString("\n\n")
		m.writeInputErr(&s)
		s.WriteString(HelpStyle.Render("Press Enter to confirm, Esc to go back"))

	case StateFormatSelect:
		s.WriteString(TitleStyle.Render("Select Output Format"))
		s.WriteString("\n\n")
		s.WriteString(m.formatList.View())
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("Press Enter to select, Esc to go back"))

	case StateSaveSelect:
		s.WriteString(TitleStyle.Render("Save To Disk?"))
		s.WriteString("\n\n")
		s.WriteString(m.saveList.View())
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("Press Enter to select, Esc to go back"))

	case StateDone:
		s.WriteString(HelpStyle.Render("Starting download..."))
	}

	return s.String()
}

func (m Model) writeInputErr(s *strings.Builder) {
	if m.inputErr != "" {
		s.WriteString(ErrorStyle.Render(m.inputErr))
		s.WriteString("\n\n")
	}
}
