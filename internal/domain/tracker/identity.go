package tracker

import "strings"

// ProviderUser is the identity slice of a provider user payload. Every
// field may be empty; resolution still yields a deterministic key.
type ProviderUser struct {
	Email     string
	AccountID string
	Login     string
	Name      string
	AvatarURL string
}

// ContributorEmail derives the stable contributor identity key for a
// provider user. Resolution order: explicit email, then a synthetic
// address built from the account id, then from the login. Payloads with
// no identifier at all map to a shared anonymous identity rather than
// failing.
func ContributorEmail(provider Provider, user ProviderUser) string {
	if email := strings.TrimSpace(user.Email); email != "" {
		return email
	}

	id := strings.TrimSpace(user.AccountID)
	if id == "" {
		id = strings.TrimSpace(user.Login)
	}
	if id == "" {
		id = "unknown"
	}

	return id + "@" + strings.ToLower(string(provider)) + ".local"
}

// DisplayName picks the best available human-readable name.
func (u ProviderUser) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	if login := strings.TrimSpace(u.Login); login != "" {
		return login
	}
	return strings.TrimSpace(u.AccountID)
}
