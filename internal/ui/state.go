package ui

import (
	"github.com/desertthunder/tunelist/internal/models"
)

// Screen is the top-level screen.
type Screen int

const (
	ScreenChecking Screen = iota
	ScreenAuth
	ScreenMain
)

// AuthView selects the form on the auth screen.
type AuthView int

const (
	AuthLogin AuthView = iota
	AuthRegister
)

// View is the tab shown on the main screen.
type View int

const (
	ViewLibrary View = iota
	ViewSearch
	ViewCart
)

func (v View) String() string {
	switch v {
	case ViewSearch:
		return "Search"
	case ViewCart:
		return "Cart"
	default:
		return "Library"
	}
}

// Modal is the playlist form currently open, if any.
type Modal int

const (
	ModalNone Modal = iota
	ModalCreate
	ModalEdit
)

// Toast is a transient status line.
type Toast struct {
	Text  string
	Error bool
}

// State is the whole view state. It is a value: reducers return a new State and never
// mutate the slices of the one they were given.
type State struct {
	Screen   Screen
	AuthView AuthView
	View     View
	Session  *models.Session

	Playlists []models.Playlist
	Loading   bool

	Detail int64 // open playlist id, 0 when closed
	Modal  Modal
	EditID int64

	Query     string
	Searching bool
	Results   []models.Track

	Cart  []models.Track
	Toast *Toast
}

// Initial is the state before the session bootstrap finishes.
func Initial() State {
	return State{Screen: ScreenChecking}
}

// Authenticated reports whether a session exists.
func (s State) Authenticated() bool { return s.Session != nil }

// UserID returns the signed-in user's id, or 0.
func (s State) UserID() int64 {
	if s.Session == nil {
		return 0
	}
	return s.Session.Identity.ID
}

// Playlist finds a loaded playlist by id.
func (s State) Playlist(id int64) (models.Playlist, bool) {
	for _, p := range s.Playlists {
		if p.ID == id {
			return p, true
		}
	}
	return models.Playlist{}, false
}

// DetailPlaylist returns the playlist open in the detail pane.
func (s State) DetailPlaylist() (models.Playlist, bool) {
	if s.Detail == 0 {
		return models.Playlist{}, false
	}
	return s.Playlist(s.Detail)
}
