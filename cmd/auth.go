package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tunelist/internal/shared"
	"github.com/desertthunder/tunelist/internal/tasks"
	"github.com/urfave/cli/v3"
)

// AuthLogin signs in and persists the session token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("signing in", "email", cmd.String("email"))

	session, err := unwrap(r.gateways.Auth.Login(ctx, cmd.String("email"), cmd.String("password")))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	return r.writePlain("✓ Signed in as %s (user %d, %s)\n",
		session.Identity.DisplayName, session.Identity.ID, session.Identity.Role)
}

// AuthRegister creates an account. It does not sign in.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	res := r.gateways.Auth.Register(ctx, cmd.String("email"), cmd.String("password"), cmd.String("nickname"))
	if _, err := unwrap(res); err != nil {
		return err
	}

	r.writePlain("✓ Account created for %s\n", cmd.String("email"))
	return r.writePlain("Run 'tunelist auth login' to sign in\n")
}

// AuthLogout clears the stored session. The server call is best effort.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if res := r.gateways.Auth.Logout(ctx); !res.Success {
		r.logger.Warn("server logout failed, local session cleared anyway", "message", res.Message)
	}
	return r.writePlain("✓ Signed out\n")
}

// AuthStatus runs the startup session check and reports the outcome.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("checking session")

	boot, err := tasks.NewBootstrapper(tasks.BootstrapperOpts{
		Credentials:   r.creds,
		Auth:          r.gateways.Auth,
		ClearOnReject: r.config.Session.ClearOnReject,
		Logger:        shared.WithLogger(r.logger, "component", "bootstrap"),
	}).Run(ctx)
	if err != nil {
		return err
	}

	if boot.State != tasks.Authenticated {
		r.writePlain("✗ Not signed in\n")
		if boot.Message != "" {
			r.writePlain("Reason: %s\n", boot.Message)
		}
		return nil
	}

	id := boot.Session.Identity
	r.writePlain("✓ Signed in\n")
	r.writePlain("User: %s (%d)\n", id.DisplayName, id.ID)
	return r.writePlain("Role: %s\n", id.Role)
}
