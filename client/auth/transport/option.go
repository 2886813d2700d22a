package transport

import (
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/liftlog/liftlog-go/client/auth/store"
)

type Option func(*RoundTripper)

// WithStore sets the credential store.
func WithStore(store store.Store) Option {
	return func(t *RoundTripper) {
		t.store = store
	}
}

// WithTransport sets the underlying transport.
func WithTransport(transport http.RoundTripper) Option {
	return func(t *RoundTripper) {
		t.transport = transport
	}
}

// WithExchange sets the renewal exchange.
func WithExchange(exchange Exchange) Option {
	return func(t *RoundTripper) {
		t.renewer.exchange = exchange
	}
}

// WithExpiryLeeway sets how long before the known expiry a proactive
// renewal is started.
func WithExpiryLeeway(leeway time.Duration) Option {
	return func(t *RoundTripper) {
		t.renewer.leeway = leeway
	}
}

// WithOnRenewed registers a hook invoked after a successful renewal has
// been persisted.
func WithOnRenewed(hook func(token *oauth2.Token)) Option {
	return func(t *RoundTripper) {
		t.renewer.onRenewed = hook
	}
}

// WithOnSessionExpired registers a hook invoked after a renewal failed and
// local credentials were cleared.
func WithOnSessionExpired(hook func(err error)) Option {
	return func(t *RoundTripper) {
		t.renewer.onExpired = hook
	}
}
