package ingest

import (
	"context"
	"errors"

	"devpulse/internal/domain/tracker"
	"devpulse/internal/ports"
)

// contributorResolver upserts the canonical person record for a
// provider user payload. The idempotency key is (provider, email); the
// synthetic-email fallback keeps it stable even for anonymized users.
type contributorResolver struct {
	store ports.TrackerRepository
}

func (r contributorResolver) resolve(ctx context.Context, provider tracker.Provider, user tracker.ProviderUser) (ports.Contributor, error) {
	if ctx == nil {
		return ports.Contributor{}, errors.New("context is required")
	}

	email := tracker.ContributorEmail(provider, user)
	return r.store.UpsertContributor(ctx, ports.ContributorUpsert{
		Provider:  provider,
		Email:     email,
		Name:      user.DisplayName(),
		AvatarURL: user.AvatarURL,
	})
}

// resolveOptional maps an absent user payload to a nil contributor id
// instead of a synthetic record.
func (r contributorResolver) resolveOptional(ctx context.Context, provider tracker.Provider, user *tracker.ProviderUser) (*uint64, error) {
	if user == nil {
		return nil, nil
	}

	contributor, err := r.resolve(ctx, provider, *user)
	if err != nil {
		return nil, err
	}
	id := contributor.ID
	return &id, nil
}
