package ui

import (
	"slices"

	"github.com/desertthunder/tunelist/internal/models"
	"github.com/desertthunder/tunelist/internal/tasks"
)

// Reduce applies a to s and returns the next state. It performs no I/O and never
// writes through the slices or pointers held by s.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case BootstrapFinished:
		if a.Boot.State == tasks.Authenticated && a.Boot.Session != nil {
			session := *a.Boot.Session
			s.Session = &session
			s.Screen = ScreenMain
			s.Loading = true
			return s
		}
		s.Screen = ScreenAuth
		s.Session = nil
		if a.Boot.Message != "" {
			s.Toast = &Toast{Text: a.Boot.Message, Error: true}
		}
		return s

	case ReloadStarted:
		s.Loading = true
		return s

	case PlaylistsLoaded:
		// A pass started for an earlier session must not leak into this one.
		if !s.Authenticated() || a.Aggregate.UserID != s.UserID() {
			return s
		}
		s.Loading = false
		s.Playlists = clonePlaylists(a.Aggregate.Playlists)
		if !a.Aggregate.OK() {
			s.Toast = &Toast{Text: a.Aggregate.Message, Error: true}
		}
		if _, ok := s.DetailPlaylist(); !ok {
			s.Detail = 0
		}
		return s

	case LoginSucceeded:
		session := a.Session
		s.Session = &session
		s.Playlists = nil
		s.Detail = 0
		s.Cart = nil
		s.Results = nil
		s.Query = ""
		s.Searching = false
		s.Screen = ScreenMain
		s.AuthView = AuthLogin
		s.Loading = true
		s.Toast = nil
		return s

	case RegisterSucceeded:
		s.AuthView = AuthLogin
		if a.Message != "" {
			s.Toast = &Toast{Text: a.Message}
		}
		return s

	case LoggedOut:
		next := Initial()
		next.Screen = ScreenAuth
		return next

	case SwitchAuthView:
		s.AuthView = a.View
		s.Toast = nil
		return s

	case SwitchView:
		s.View = a.View
		return s

	case OpenDetail:
		if _, ok := s.Playlist(a.ID); ok {
			s.Detail = a.ID
		}
		return s

	case CloseDetail:
		s.Detail = 0
		return s

	case OpenCreate:
		s.Modal = ModalCreate
		s.EditID = 0
		return s

	case OpenEdit:
		if _, ok := s.Playlist(a.ID); !ok {
			return s
		}
		s.Modal = ModalEdit
		s.EditID = a.ID
		return s

	case CloseModal:
		s.Modal = ModalNone
		s.EditID = 0
		return s

	case PlaylistCreated:
		p := a.Playlist
		p.Tracks = slices.Clone(p.Tracks)
		if p.Tracks == nil {
			p.Tracks = []models.Track{}
		}
		s.Playlists = append(slices.Clone(s.Playlists), p)
		s.Modal = ModalNone
		return s

	case PlaylistUpdated:
		s.Playlists = mapPlaylist(s.Playlists, a.ID, func(p models.Playlist) models.Playlist {
			p.Title = a.Title
			p.Description = a.Description
			return p
		})
		s.Modal = ModalNone
		s.EditID = 0
		return s

	case PlaylistDeleted:
		s.Playlists = slices.DeleteFunc(slices.Clone(s.Playlists), func(p models.Playlist) bool { return p.ID == a.ID })
		if s.Detail == a.ID {
			s.Detail = 0
		}
		if s.EditID == a.ID {
			s.Modal = ModalNone
			s.EditID = 0
		}
		return s

	case TrackAdded:
		s.Playlists = mapPlaylist(s.Playlists, a.PlaylistID, func(p models.Playlist) models.Playlist {
			p.Tracks = append(slices.Clone(p.Tracks), a.Track)
			return p
		})
		return s

	case TrackRemoved:
		s.Playlists = mapPlaylist(s.Playlists, a.PlaylistID, func(p models.Playlist) models.Playlist {
			p.Tracks = slices.DeleteFunc(slices.Clone(p.Tracks), func(t models.Track) bool {
				return t.ID != nil && *t.ID == a.MusicID
			})
			return p
		})
		return s

	case SearchStarted:
		s.Query = a.Query
		s.Searching = true
		s.View = ViewSearch
		return s

	case SearchFinished:
		if a.Query != s.Query {
			return s
		}
		s.Searching = false
		s.Results = slices.Clone(a.Tracks)
		if a.Message != "" {
			s.Toast = &Toast{Text: a.Message, Error: true}
		}
		return s

	case ShowToast:
		s.Toast = &Toast{Text: a.Text, Error: a.Error}
		return s

	case ClearToast:
		s.Toast = nil
		return s

	case AddToCart:
		if slices.ContainsFunc(s.Cart, func(t models.Track) bool { return sameTrack(t, a.Track) }) {
			return s
		}
		s.Cart = append(slices.Clone(s.Cart), a.Track)
		return s

	case RemoveFromCart:
		s.Cart = slices.DeleteFunc(slices.Clone(s.Cart), func(t models.Track) bool {
			return t.ID != nil && *t.ID == a.MusicID
		})
		return s

	case ClearCart:
		s.Cart = nil
		return s
	}

	return s
}

func clonePlaylists(in []models.Playlist) []models.Playlist {
	out := make([]models.Playlist, len(in))
	for i, p := range in {
		p.Tracks = slices.Clone(p.Tracks)
		if p.Tracks == nil {
			p.Tracks = []models.Track{}
		}
		out[i] = p
	}
	return out
}

func mapPlaylist(in []models.Playlist, id int64, fn func(models.Playlist) models.Playlist) []models.Playlist {
	out := slices.Clone(in)
	for i, p := range out {
		if p.ID == id {
			out[i] = fn(p)
		}
	}
	return out
}

func sameTrack(a, b models.Track) bool {
	if a.ID != nil && b.ID != nil {
		return *a.ID == *b.ID
	}
	return a.ID == nil && b.ID == nil && a.Title == b.Title && a.Artist == b.Artist
}
