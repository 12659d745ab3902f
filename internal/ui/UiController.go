package ui

import (
	"context"
	"time"

	"github.com/Mshel/robovac/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	SimulationScreen
	SummaryScreen
)

// Messages for state transitions
type IntroSubmitMsg int // 0 reference run, 1 custom run, 2 history

const (
	introReferenceRun IntroSubmitMsg = iota
	introCustomRun
	introHistory
)

type ControllerModel struct {
	CurrentScreen Screen
	History       *game.RunHistory
	RenderDelay   time.Duration

	IntroModel      tea.Model
	SetupModel      tea.Model
	SimulationModel tea.Model
	SummaryModel    tea.Model

	ctx       context.Context
	cancelRun context.CancelFunc

	ScreenWidth  int
	ScreenHeight int
}

// NewControllerModel builds the root model. history may be nil, in which
// case runs are not persisted and the history screen stays empty.
func NewControllerModel(ctx context.Context, history *game.RunHistory, delay time.Duration, screenWidth int, screenHeight int) ControllerModel {
	if ctx == nil {
		ctx = context.Background()
	}
	return ControllerModel{
		CurrentScreen: IntroScreen,
		History:       history,
		RenderDelay:   delay,

		IntroModel: NewIntroModel(screenWidth, screenHeight),
		SetupModel: NewInitialSetupModel(screenWidth, screenHeight),

		ctx:          ctx,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case SimulationScreen:
		if m.SimulationModel != nil {
			return m.SimulationModel.View()
		}
		return "Simulation Loading..."
	case SummaryScreen:
		if m.SummaryModel != nil {
			return m.SummaryModel.View()
		}
		return "Summary Loading..."
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		key := msg.String()
		// q is a valid character in the setup inputs.
		if key == "ctrl+c" || (key == "q" && m.CurrentScreen != SetupScreen) {
			m.stopRun()
			return m, tea.Quit
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		for _, child := range []*tea.Model{&m.IntroModel, &m.SetupModel, &m.SimulationModel, &m.SummaryModel} {
			if *child != nil {
				*child, cmd = (*child).Update(msg)
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case IntroSubmitMsg:
		switch msg {
		case introReferenceRun:
			return m.startSimulation(game.DefaultScenario())
		case introCustomRun:
			m.CurrentScreen = SetupScreen
			return m, m.SetupModel.Init()
		case introHistory:
			m.CurrentScreen = SummaryScreen
			m.SummaryModel = NewSummaryModel(SimulationDoneMsg{}, m.recentHistory(), m.ScreenWidth, m.ScreenHeight)
			return m, m.SummaryModel.Init()
		}

	case SetupSubmitMsg:
		return m.startSimulation(msg.Scenario)

	case SimulationDoneMsg:
		m.stopRun()
		m.CurrentScreen = SummaryScreen
		m.SummaryModel = NewSummaryModel(msg, m.recentHistory(), m.ScreenWidth, m.ScreenHeight)
		return m, m.SummaryModel.Init()

	case SetupCancelMsg:
		m.CurrentScreen = IntroScreen
		return m, m.IntroModel.Init()

	case SummaryDoneMsg:
		m.CurrentScreen = IntroScreen
		return m, m.IntroModel.Init()

	default:
		switch m.CurrentScreen {
		case IntroScreen:
			m.IntroModel, cmd = m.IntroModel.Update(msg)
			cmds = append(cmds, cmd)
		case SetupScreen:
			m.SetupModel, cmd = m.SetupModel.Update(msg)
			cmds = append(cmds, cmd)
		case SimulationScreen:
			if m.SimulationModel != nil {
				m.SimulationModel, cmd = m.SimulationModel.Update(msg)
				cmds = append(cmds, cmd)
			}
		case SummaryScreen:
			if m.SummaryModel != nil {
				m.SummaryModel, cmd = m.SummaryModel.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// startSimulation runs the scenario in its own goroutine. Frames reach the
// view through a ChannelRenderer; the final SimulationDoneMsg moves the
// controller to the summary screen.
func (m ControllerModel) startSimulation(scenario game.Scenario) (tea.Model, tea.Cmd) {
	m.stopRun()

	ctx, cancel := context.WithCancel(m.ctx)
	renderer := NewChannelRenderer(ctx, m.RenderDelay)

	sim, err := game.NewSimulation(scenario, renderer)
	if err != nil {
		cancel()
		log.Error("Could not start simulation", "scenario", scenario.Name, "error", err)
		m.CurrentScreen = SummaryScreen
		m.SummaryModel = NewSummaryModel(SimulationDoneMsg{Err: err}, m.recentHistory(), m.ScreenWidth, m.ScreenHeight)
		return m, m.SummaryModel.Init()
	}

	m.cancelRun = cancel
	m.CurrentScreen = SimulationScreen
	m.SimulationModel = NewSimulationModel(scenario, renderer, m.ScreenWidth, m.ScreenHeight)

	go runSimulation(ctx, sim, renderer, m.History)

	return m, m.SimulationModel.Init()
}

func runSimulation(ctx context.Context, sim *game.Simulation, renderer *ChannelRenderer, history *game.RunHistory) {
	reports, err := sim.Run(ctx)
	if history != nil {
		for _, report := range reports {
			if saveErr := history.Save(report); saveErr != nil {
				log.Error("Failed to save run report", "robot", report.Robot, "error", saveErr)
			}
		}
	}
	renderer.Finish(SimulationDoneMsg{
		Reports:  reports,
		Coverage: sim.Grid.Coverage(),
		DirtLeft: sim.Grid.DirtCells(),
		Err:      err,
	})
}

func (m *ControllerModel) stopRun() {
	if m.cancelRun != nil {
		m.cancelRun()
		m.cancelRun = nil
	}
}

func (m ControllerModel) recentHistory() []game.RunReport {
	if m.History == nil {
		return nil
	}
	reports, err := m.History.Recent(game.DefaultHistoryPage, 0)
	if err != nil {
		log.Error("Failed to load run history", "error", err)
		return nil
	}
	return reports
}
