package ui

import (
	"github.com/desertthunder/tunelist/internal/models"
	"github.com/desertthunder/tunelist/internal/tasks"
)

// Action is a state transition fed to [Reduce].
type Action interface {
	action()
}

type (
	BootstrapFinished struct{ Boot tasks.Bootstrap }
	PlaylistsLoaded   struct{ Aggregate tasks.Aggregate }
	ReloadStarted     struct{}
	LoginSucceeded    struct{ Session models.Session }
	RegisterSucceeded struct{ Message string }
	LoggedOut         struct{}
	SwitchAuthView    struct{ View AuthView }
	SwitchView        struct{ View View }

	OpenDetail  struct{ ID int64 }
	CloseDetail struct{}
	OpenCreate  struct{}
	OpenEdit    struct{ ID int64 }
	CloseModal  struct{}

	PlaylistCreated struct{ Playlist models.Playlist }
	PlaylistUpdated struct {
		ID          int64
		Title       string
		Description string
	}
	PlaylistDeleted struct{ ID int64 }
	TrackAdded      struct {
		PlaylistID int64
		Track      models.Track
	}
	TrackRemoved struct {
		PlaylistID int64
		MusicID    int64
	}

	SearchStarted  struct{ Query string }
	SearchFinished struct {
		Query   string
		Tracks  []models.Track
		Message string
	}

	ShowToast struct {
		Text  string
		Error bool
	}
	ClearToast struct{}

	AddToCart      struct{ Track models.Track }
	RemoveFromCart struct{ MusicID int64 }
	ClearCart      struct{}
)

func (BootstrapFinished) action() {}
func (PlaylistsLoaded) action()   {}
func (ReloadStarted) action()     {}
func (LoginSucceeded) action()    {}
func (RegisterSucceeded) action() {}
func (LoggedOut) action()         {}
func (SwitchAuthView) action()    {}
func (SwitchView) action()        {}
func (OpenDetail) action()        {}
func (CloseDetail) action()       {}
func (OpenCreate) action()        {}
func (OpenEdit) action()          {}
func (CloseModal) action()        {}
func (PlaylistCreated) action()   {}
func (PlaylistUpdated) action()   {}
func (PlaylistDeleted) action()   {}
func (TrackAdded) action()        {}
func (TrackRemoved) action()      {}
func (SearchStarted) action()     {}
func (SearchFinished) action()    {}
func (ShowToast) action()         {}
func (ClearToast) action()        {}
func (AddToCart) action()         {}
func (RemoveFromCart) action()    {}
func (ClearCart) action()         {}
