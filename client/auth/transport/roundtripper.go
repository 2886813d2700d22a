package transport

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	slogctx "github.com/veqryn/slog-context"

	"github.com/liftlog/liftlog-go/client/auth/store"
)

// defaultExpiryLeeway is how long before the access token's reported expiry
// a renewal is started instead of waiting for the server to reject the
// request.
const defaultExpiryLeeway = 60 * time.Second

// RoundTripper is the sole gateway for authenticated calls. It attaches the
// current access token to every outbound request, reading it fresh from the
// store at call time, and funnels every credential-expiry signal through a
// single-flight renewal exchange. Requests that fault while a renewal is in
// flight are parked and replayed, in submission order, once it settles.
type RoundTripper struct {
	store     store.Store
	transport http.RoundTripper
	renewer   *renewer
}

// New assembles a RoundTripper. An Exchange must be provided via
// WithExchange before any renewal can succeed.
func New(options ...Option) (*RoundTripper, error) {
	ret := &RoundTripper{
		transport: http.DefaultTransport,
		store:     store.NewMemoryStore(),
	}
	ret.renewer = &renewer{leeway: defaultExpiryLeeway}
	for _, opt := range options {
		opt(ret)
	}
	ret.renewer.store = ret.store
	ret.renewer.transport = ret.transport
	return ret, nil
}

// Store exposes the credential store backing this transport.
func (r *RoundTripper) Store() store.Store {
	return r.store
}

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if isPublic(ctx) {
		return r.transport.RoundTrip(req)
	}

	token, err := r.store.Load()
	if err != nil || token == nil {
		// no stored credential: send as-is and let the caller classify
		return r.transport.RoundTrip(req)
	}

	// renew ahead of the known expiry rather than burning a request
	if expiringSoon(token, r.renewer.leeway) && token.RefreshToken != "" {
		token, err = r.renewer.renewed(req, token)
		if err != nil {
			return nil, err
		}
	}

	attempt := clone(req)
	attempt.Header.Set("Authorization", "Bearer "+token.AccessToken)
	resp, err := r.transport.RoundTrip(attempt)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	// credential expired mid-flight; close the rejection and hand the
	// request to the renewal coordinator
	resp.Body.Close()
	slogctx.Debug(ctx, "credential expired, entering renewal",
		"requestId", uuid.NewString(), "url", req.URL.Path)
	return r.renewer.resolveExpired(req, token)
}
