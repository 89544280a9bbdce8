package resolver

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"vestibule-demo/internal/auth"
)

type identityKey struct {
	provider       string
	providerUserID string
}

// MemoryResolver resolves identities against an in-process user table.
// Users live for the process lifetime only, which is all a demo login
// flow needs. Linking rules match the usual database resolver: identity
// lookup first, then email-based linking, then user creation.
type MemoryResolver struct {
	mu         sync.Mutex
	byIdentity map[identityKey]string
	byEmail    map[string]string
	users      map[string]auth.User
}

func NewMemoryResolver() *MemoryResolver {
	return &MemoryResolver{
		byIdentity: make(map[identityKey]string),
		byEmail:    make(map[string]string),
		users:      make(map[string]auth.User),
	}
}

func (r *MemoryResolver) Resolve(
	ctx context.Context,
	identity *auth.Identity,
) (string, error) {

	if identity == nil {
		return "", errors.New("identity is nil")
	}
	if identity.ProviderUserID == "" || identity.Email == "" {
		return "", errors.New("identity missing provider_user_id or email")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := identityKey{
		provider:       identity.Provider,
		providerUserID: identity.ProviderUserID,
	}
	email := strings.ToLower(identity.Email)

	// 1. Known identity (provider + provider_user_id)
	if userID, ok := r.byIdentity[key]; ok {
		return userID, nil
	}

	// 2. Existing user, new provider: link by email
	if userID, ok := r.byEmail[email]; ok {
		r.byIdentity[key] = userID
		return userID, nil
	}

	// 3. New user
	userID := uuid.NewString()
	r.users[userID] = auth.User{
		ID:        userID,
		Email:     identity.Email,
		Name:      identity.Name,
		Username:  identity.Username,
		AvatarURL: identity.AvatarURL,
	}
	r.byEmail[email] = userID
	r.byIdentity[key] = userID

	return userID, nil
}

func (r *MemoryResolver) User(
	ctx context.Context,
	userID string,
) (*auth.User, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
