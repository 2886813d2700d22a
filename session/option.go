package session

import (
	"net/http"

	"github.com/liftlog/liftlog-go/client"
	"github.com/liftlog/liftlog-go/client/auth/store"
)

type Option func(*Session)

// WithStore sets the credential store; use store.NewFileStore to survive
// process restarts.
func WithStore(credentialStore store.Store) Option {
	return func(s *Session) {
		s.store = credentialStore
	}
}

// WithTransport sets the base HTTP transport beneath the authenticated one.
func WithTransport(base http.RoundTripper) Option {
	return func(s *Session) {
		s.base = base
	}
}

// WithAvatarLimit overrides the avatar upload ceiling in bytes.
func WithAvatarLimit(limit int64) Option {
	return func(s *Session) {
		s.avatarLimit = limit
	}
}

// WithClientOptions forwards options to the underlying API client.
func WithClientOptions(options ...client.Option) Option {
	return func(s *Session) {
		s.clientOpts = append(s.clientOpts, options...)
	}
}
