package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/desertthunder/tunelist/internal/models"
	"github.com/desertthunder/tunelist/internal/shared"
)

// UserGateway reads and edits the signed-in user's account.
type UserGateway struct {
	client *Client
}

// NewUserGateway creates a [UserGateway] on client.
func NewUserGateway(client *Client) *UserGateway {
	return &UserGateway{client: client}
}

type nicknameBody struct {
	Nickname string `json:"nickname"`
}

func (u *UserGateway) Profile(ctx context.Context, userID int64) models.Result[models.Profile] {
	return call[models.Profile](ctx, u.client, http.MethodGet, fmt.Sprintf("/users/%d/profile", userID), nil)
}

// UpdateNickname calls PUT /users/{userID}/profile. A blank nickname fails without a request.
//
// On success the stored display name follows the new nickname.
func (u *UserGateway) UpdateNickname(ctx context.Context, userID int64, nickname string) models.Result[models.Empty] {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return fail[models.Empty](u.client, shared.MsgNicknameRequired)
	}

	res := call[models.Empty](ctx, u.client, http.MethodPut, fmt.Sprintf("/users/%d/profile", userID), nicknameBody{Nickname: nickname})
	if !res.Success || u.client.creds == nil {
		return res
	}

	if stored, ok := u.client.creds.Read(ctx); ok && stored.UserID == userID {
		identity := models.Identity{ID: stored.UserID, DisplayName: nickname}
		if err := u.client.creds.Save(ctx, stored.Token, identity); err != nil {
			u.client.logger.Warn("failed to refresh stored nickname", "error", err)
		}
	}
	return res
}

// DeleteAccount calls DELETE /users/{userID} and drops local credentials on success.
func (u *UserGateway) DeleteAccount(ctx context.Context, userID int64) models.Result[models.Empty] {
	res := call[models.Empty](ctx, u.client, http.MethodDelete, fmt.Sprintf("/users/%d", userID), nil)
	if res.Success && u.client.creds != nil {
		if err := u.client.creds.Clear(ctx); err != nil {
			u.client.logger.Warn("failed to clear credentials", "error", err)
		}
	}
	return res
}

func (u *UserGateway) Stats(ctx context.Context, userID int64) models.Result[models.Stats] {
	return call[models.Stats](ctx, u.client, http.MethodGet, fmt.Sprintf("/users/%d/stats", userID), nil)
}
