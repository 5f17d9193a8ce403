// Package ui implements the interactive terminal client using bubbletea's Elm architecture.
//
// The client state is a single [State] value. Every transition goes through [Reduce], a pure
// function from (State, [Action]) to State, so the screens can be tested without a terminal:
//  1. [ScreenChecking] : stored credentials are being verified by the bootstrapper
//  2. [ScreenAuth] : login or registration form
//  3. [ScreenMain] : library, search, and cart tabs with the playlist detail pane and forms
//
// Side effects live in [Controller], whose methods call the gateways and report each outcome as an
// Action. The [Model] runs them as commands, so its Update loop remains the only writer of state.
//
// Keyboard navigation uses vim-style bindings with contextual help from charmbracelet/bubbles/help.
package ui
