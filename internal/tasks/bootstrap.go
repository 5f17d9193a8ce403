package tasks

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunelist/internal/models"
	"github.com/desertthunder/tunelist/internal/services"
	"github.com/desertthunder/tunelist/internal/shared"
)

// State is the startup state of a session.
type State int

const (
	Checking State = iota
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Loader runs one aggregation pass. [Aggregator] implements it.
type Loader interface {
	Load(ctx context.Context, userID int64, progress chan<- ProgressUpdate) Aggregate
}

// Bootstrap is the result of [Bootstrapper.Run].
//
// Playlists receives exactly one [Aggregate] and is then closed. When the session is not
// authenticated the channel is closed without a value.
type Bootstrap struct {
	State     State
	Session   *models.Session
	Message   string
	Playlists <-chan Aggregate
}

// Bootstrapper restores a session from stored credentials at startup.
type Bootstrapper struct {
	creds         models.CredentialStore
	auth          services.Verifier
	loader        Loader
	clearOnReject bool
	progress      chan<- ProgressUpdate
	logger        *log.Logger

	mu    sync.Mutex
	state State
	ran   bool
}

// BootstrapperOpts configures a [Bootstrapper].
type BootstrapperOpts struct {
	Credentials models.CredentialStore
	Auth        services.Verifier
	Loader      Loader
	// ClearOnReject drops stored credentials when the server explicitly rejects the token.
	// Transport failures never clear them.
	ClearOnReject bool
	Progress      chan<- ProgressUpdate
	Logger        *log.Logger
}

// NewBootstrapper creates a [Bootstrapper] in the [Checking] state.
func NewBootstrapper(opts BootstrapperOpts) *Bootstrapper {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}
	return &Bootstrapper{
		creds:         opts.Credentials,
		auth:          opts.Auth,
		loader:        opts.Loader,
		clearOnReject: opts.ClearOnReject,
		progress:      opts.Progress,
		logger:        opts.Logger,
		state:         Checking,
	}
}

// State returns the current startup state.
func (b *Bootstrapper) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Run resolves [Checking] into [Authenticated] or [Unauthenticated].
//
// On success the playlist aggregation is started in the background; Run returns as soon as
// the session exists. A second call fails with [shared.ErrAlreadyBootstrapped].
func (b *Bootstrapper) Run(ctx context.Context) (Bootstrap, error) {
	b.mu.Lock()
	if b.ran {
		b.mu.Unlock()
		return Bootstrap{State: b.State()}, shared.ErrAlreadyBootstrapped
	}
	b.ran = true
	b.mu.Unlock()

	stored, ok := b.readCredentials(ctx)
	if !ok {
		b.logger.Debug("no stored credentials")
		return b.unauthenticated(""), nil
	}

	sendProgress(b.progress, verifySessionUpdate(stored.DisplayName))
	v := b.auth.Verify(ctx, stored.Token)
	if !v.Valid {
		b.logger.Info("stored session is not valid", "rejected", v.Rejected, "message", v.Message)
		if v.Rejected && b.clearOnReject {
			if err := b.creds.Clear(ctx); err != nil {
				b.logger.Warn("failed to clear rejected credentials", "error", err)
			}
		}
		return b.unauthenticated(v.Message), nil
	}

	session := &models.Session{
		Token: stored.Token,
		Identity: models.Identity{
			ID:          stored.UserID,
			Role:        v.Role,
			DisplayName: stored.DisplayName,
		},
	}

	playlists := make(chan Aggregate, 1)
	if b.loader == nil {
		close(playlists)
	} else {
		go func() {
			defer close(playlists)
			agg := b.loader.Load(ctx, session.Identity.ID, b.progress)
			agg.UserID = session.Identity.ID
			playlists <- agg
		}()
	}

	b.setState(Authenticated)
	b.logger.Debug("session restored", "user", session.Identity.ID, "role", session.Identity.Role)
	return Bootstrap{State: Authenticated, Session: session, Playlists: playlists}, nil
}

func (b *Bootstrapper) readCredentials(ctx context.Context) (models.StoredCredentials, bool) {
	if b.creds == nil {
		return models.StoredCredentials{}, false
	}
	stored, ok := b.creds.Read(ctx)
	if !ok || stored.Token == "" {
		return models.StoredCredentials{}, false
	}
	return stored, true
}

func (b *Bootstrapper) unauthenticated(message string) Bootstrap {
	b.setState(Unauthenticated)
	playlists := make(chan Aggregate)
	close(playlists)
	return Bootstrap{State: Unauthenticated, Message: message, Playlists: playlists}
}

func (b *Bootstrapper) setState(s State) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = s
}
