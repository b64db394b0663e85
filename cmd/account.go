package main

import (
	"context"
	"fmt"

	"github.com/mnfaaiiq/soniq/internal/shared"
	"github.com/mnfaaiiq/soniq/internal/usersync"
	"github.com/urfave/cli/v3"
)

// AccountStatus syncs and prints the configured identity's profile and subscription.
func (r *Runner) AccountStatus(ctx context.Context, cmd *cli.Command) error {
	if r.library == nil {
		return fmt.Errorf("%w: backend not configured", shared.ErrServiceUnavailable)
	}

	identity := r.identity()
	if !identity.Present() {
		return fmt.Errorf("%w: set backend.access_token and backend.user_id", shared.ErrNotAuthenticated)
	}

	controller, err := usersync.NewController(r.library, r.logger)
	if err != nil {
		return err
	}

	settled := controller.SetIdentity(ctx, identity)
	if settled != nil {
		select {
		case <-settled:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	snapshot := controller.Snapshot()

	if cmd.Bool("json") {
		return r.writeJSON(snapshot, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Account")

	if snapshot.Profile == nil {
		r.writePlain("Profile: none\n")
	} else {
		name := snapshot.Profile.FullName
		if name == "" {
			name = snapshot.Profile.UserID
		}
		r.writePlain("Profile: %s\n", name)
		if snapshot.Profile.AvatarURL != "" {
			r.writePlain("Avatar: %s\n", snapshot.Profile.AvatarURL)
		}
	}

	if snapshot.Subscription == nil {
		r.writePlain("Subscription: none\n")
	} else {
		r.writePlain("Subscription: %s", snapshot.Subscription.Status)
		if snapshot.Subscription.Price != nil && snapshot.Subscription.Price.Product != nil {
			r.writePlain(" (%s)", snapshot.Subscription.Price.Product.Name)
		}
		r.writePlain("\n")
	}

	return nil
}
