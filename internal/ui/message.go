package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunelist/internal/tasks"
)

// MsgKind enumerates the non-action messages in the application.
type MsgKind int

// Msg represents runtime messages that are not state transitions (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
	_ tea.Msg = actionMsg{}
)

const (
	MsgBootstrapped MsgKind = iota
	MsgProgressUpdate
	MsgToastExpired
)

// actionMsg carries an [Action] produced by a command back into Update.
type actionMsg struct {
	action Action
}

// bootstrappedMsg is the constructor for [MsgBootstrapped]
func bootstrappedMsg(boot tasks.Bootstrap, err error) Msg {
	return Msg{kind: MsgBootstrapped, data: bootstrapResult{boot: boot, err: err}}
}

type bootstrapResult struct {
	boot tasks.Bootstrap
	err  error
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// toastExpiredMsg is the constructor for [MsgToastExpired]; toast is the one being expired.
func toastExpiredMsg(toast *Toast) Msg {
	return Msg{kind: MsgToastExpired, data: toast}
}

func expireToast(toast *Toast, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg { return toastExpiredMsg(toast) })
}
