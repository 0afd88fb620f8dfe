package cli

import (
	"context"

	"github.com/Clairebear8888/Microlearning/internal/client/profile"
	"github.com/Clairebear8888/Microlearning/internal/client/task"
	"github.com/Clairebear8888/Microlearning/internal/common"
)

// Profile opens the guarded profile page of the signed-in user.
func (a *App) Profile(ctx context.Context) error {
	page := a.openPage(ctx, common.RouteProfile)
	return a.guard.Render(ctx, func(ctx context.Context) error {
		userID := a.session.CurrentUser().ID
		return task.Run(ctx, page,
			func(ctx context.Context) (profile.Page, error) {
				return profile.Load(ctx, a.api, userID)
			},
			a.renderProfile,
		)
	})
}
