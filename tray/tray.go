// Package tray puts the runtime toggles into a system tray menu and turns
// clicks into commands for the render loop.
package tray

import (
	"github.com/getlantern/systray"

	vrdeck "github.com/vrdeck/vrdeck"
)

// Command is a tray menu action delivered to the orchestrator.
type Command int

const (
	CmdSwapEyes Command = iota
	CmdFlipX
	CmdFlipY
	CmdReloadScreen
	CmdRecenter
	CmdRecenterWithPitch
	CmdQuit
)

func (c Command) String() string {
	switch c {
	case CmdSwapEyes:
		return "swap-eyes"
	case CmdFlipX:
		return "flip-x"
	case CmdFlipY:
		return "flip-y"
	case CmdReloadScreen:
		return "reload-screen"
	case CmdRecenter:
		return "recenter"
	case CmdRecenterWithPitch:
		return "recenter-with-pitch"
	case CmdQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Menu owns the tray lifecycle. Run blocks the calling goroutine until Quit,
// as systray requires; commands arrive on Commands.
type Menu struct {
	log      vrdeck.Logger
	commands chan Command
}

func NewMenu(log vrdeck.Logger) *Menu {
	return &Menu{
		log:      log,
		commands: make(chan Command, 8),
	}
}

func (m *Menu) Commands() <-chan Command { return m.commands }

// Run starts the tray event loop. Must be called from the main goroutine on
// platforms where the tray needs the main thread.
func (m *Menu) Run(onExit func()) {
	systray.Run(func() { m.onReady() }, onExit)
}

// Quit tears the tray down from outside (e.g. when the render loop ends
// first).
func (m *Menu) Quit() { systray.Quit() }

func (m *Menu) onReady() {
	systray.SetTitle("VRDeck")
	systray.SetTooltip("VRDeck stereo screen")

	swapItem := systray.AddMenuItem("Swap Eyes", "Exchange the left and right eye images")
	flipXItem := systray.AddMenuItem("Flip X", "Mirror the screen horizontally")
	flipYItem := systray.AddMenuItem("Flip Y", "Mirror the screen vertically")
	systray.AddSeparator()
	reloadItem := systray.AddMenuItem("Reload Screen", "Reconnect the capture source")
	recenterItem := systray.AddMenuItem("Recenter", "Re-anchor the screen, horizon locked")
	recenterPitchItem := systray.AddMenuItem("Recenter With Pitch", "Re-anchor the screen including pitch")
	systray.AddSeparator()
	quitItem := systray.AddMenuItem("Quit", "Exit VRDeck")

	for {
		select {
		case <-swapItem.ClickedCh:
			m.send(CmdSwapEyes)
		case <-flipXItem.ClickedCh:
			m.send(CmdFlipX)
		case <-flipYItem.ClickedCh:
			m.send(CmdFlipY)
		case <-reloadItem.ClickedCh:
			m.send(CmdReloadScreen)
		case <-recenterItem.ClickedCh:
			m.send(CmdRecenter)
		case <-recenterPitchItem.ClickedCh:
			m.send(CmdRecenterWithPitch)
		case <-quitItem.ClickedCh:
			m.send(CmdQuit)
			systray.Quit()
			return
		}
	}
}

// send drops the command when the loop is not draining; stale toggles are
// worthless once the loop stalls.
func (m *Menu) send(cmd Command) {
	select {
	case m.commands <- cmd:
		m.log.Debugf("tray command: %s", cmd)
	default:
		m.log.Warnf("tray command dropped: %s", cmd)
	}
}
