package settings

import "context"

// Repository defines settings persistence. Get returns apperror.NewNotFound
// when no row exists yet; the service falls back to Defaults.
type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}
