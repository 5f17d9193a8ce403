package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/desertthunder/tunelist/internal/models"
	"github.com/desertthunder/tunelist/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

// Verification is the outcome of checking a token against the auth service.
//
// Rejected is set only when the service answered and refused the token; transport failures
// leave it false so callers can tell "bad token" from "unreachable service". Both are invalid.
type Verification struct {
	Valid    bool
	Role     models.Role
	Rejected bool
	Message  string
	Err      error
}

// AuthGateway verifies tokens and manages login, registration and logout.
type AuthGateway struct {
	client *Client
	now    func() time.Time
}

// NewAuthGateway creates an [AuthGateway] on client.
func NewAuthGateway(client *Client) *AuthGateway {
	return &AuthGateway{client: client, now: time.Now}
}

// Verify checks token with GET /auth/verify.
//
// Blank tokens and JWTs whose exp claim has passed are invalid without a network call.
func (a *AuthGateway) Verify(ctx context.Context, token string) Verification {
	token = strings.TrimSpace(token)
	if token == "" {
		return Verification{Message: a.client.messages.Get(shared.MsgNotSignedIn), Err: shared.ErrNoCredentials}
	}
	if expired(token, a.now()) {
		return Verification{Rejected: true, Message: a.client.messages.Get(shared.MsgSessionExpired), Err: shared.ErrTokenExpired}
	}

	res, err := send[models.Claims](ctx, a.client, request{method: http.MethodGet, path: "/auth/verify", token: token})
	if err != nil {
		return Verification{Message: res.Message, Err: err}
	}
	if !res.Success || res.Data == nil {
		return Verification{Rejected: true, Message: res.Message, Err: fmt.Errorf("%w: %s", shared.ErrAuthFailed, res.Message)}
	}

	return Verification{Valid: true, Role: res.Data.Role}
}

// expired reports whether token is a JWT with an exp claim before now.
//
// The signature is not checked here; tokens that are not JWTs are treated as opaque and never expired.
func expired(token string, now time.Time) bool {
	if strings.Count(token, ".") != 2 {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

// Login signs in with POST /auth/login and persists the returned credentials.
func (a *AuthGateway) Login(ctx context.Context, email, password string) models.Result[models.Session] {
	email = strings.TrimSpace(email)
	if !validCredentials(email, password) {
		return fail[models.Session](a.client, shared.MsgCredentialsRequired)
	}

	res := call[models.Login](ctx, a.client, http.MethodPost, "/auth/login", loginBody{Email: email, Password: password})
	if !res.Success || res.Data == nil || res.Data.Token == "" {
		msg := res.Message
		if msg == "" {
			msg = a.client.messages.Get(shared.MsgRequestFailed)
		}
		return models.Fail[models.Session](msg)
	}

	session := models.Session{
		Token: res.Data.Token,
		Identity: models.Identity{
			ID:          res.Data.UserID,
			Role:        res.Data.Role,
			DisplayName: res.Data.Nickname,
		},
	}

	if a.client.creds != nil {
		if err := a.client.creds.Save(ctx, session.Token, session.Identity); err != nil {
			a.client.logger.Warn("failed to persist credentials", "error", err)
		}
	}

	return models.Result[models.Session]{Success: true, Message: res.Message, Data: &session}
}

// Register creates an account with POST /auth/register. It does not sign in.
func (a *AuthGateway) Register(ctx context.Context, email, password, nickname string) models.Result[models.Empty] {
	email = strings.TrimSpace(email)
	nickname = strings.TrimSpace(nickname)
	if !validCredentials(email, password) {
		return fail[models.Empty](a.client, shared.MsgCredentialsRequired)
	}
	if nickname == "" {
		return fail[models.Empty](a.client, shared.MsgNicknameRequired)
	}

	return call[models.Empty](ctx, a.client, http.MethodPost, "/auth/register", registerBody{
		Email:    email,
		Password: password,
		Nickname: nickname,
	})
}

// Logout notifies POST /auth/logout and clears local credentials whatever the server answers.
func (a *AuthGateway) Logout(ctx context.Context) models.Result[models.Empty] {
	res := call[models.Empty](ctx, a.client, http.MethodPost, "/auth/logout", nil)
	if !res.Success {
		a.client.logger.Debug("remote logout failed", "message", res.Message)
	}

	if a.client.creds != nil {
		if err := a.client.creds.Clear(ctx); err != nil {
			a.client.logger.Error("failed to clear credentials", "error", err)
			return models.Fail[models.Empty](err.Error())
		}
	}

	return models.Result[models.Empty]{Success: true}
}

func validCredentials(email, password string) bool {
	return email != "" && strings.Contains(email, "@") && password != ""
}
