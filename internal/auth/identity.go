package auth

// Identity represents a normalized external authentication identity
// returned by an OAuth strategy. It contains facts only, no decisions.
type Identity struct {
	Provider       string // e.g. "github", "microsoft"
	ProviderUserID string // provider-scoped unique user identifier
	Email          string // email address returned by provider
	EmailVerified  bool   // whether provider asserts email ownership
	Name           string // display name, may be empty
	Username       string // provider handle, may be empty
	AvatarURL      string // profile image URL, may be empty
}

// User is an application user created or matched from an Identity.
type User struct {
	ID        string
	Email     string
	Name      string
	Username  string
	AvatarURL string
}
