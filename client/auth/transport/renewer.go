package transport

import (
	"context"
	"net/http"
	"sync"
	"time"

	slogctx "github.com/veqryn/slog-context"
	"golang.org/x/oauth2"

	"github.com/liftlog/liftlog-go/apierror"
	"github.com/liftlog/liftlog-go/client/auth/store"
)

// Exchange trades a refresh token for a new credential pair. Implementations
// must return errors already classified via apierror.
type Exchange func(ctx context.Context, refreshToken string) (*oauth2.Token, error)

// pendingRequest is one parked request awaiting the renewal outcome.
type pendingRequest struct {
	req  *http.Request
	done chan replayOutcome
}

type replayOutcome struct {
	resp *http.Response
	err  error
}

// renewal is one in-flight renewal exchange. pending holds the requests that
// faulted while it was running, in submission order.
type renewal struct {
	done    chan struct{}
	token   *oauth2.Token
	err     error
	pending []*pendingRequest
}

// renewer guarantees exactly one renewal exchange per expiry event. All
// requests discovering an expired credential while an exchange is in flight
// enqueue behind it instead of starting a second one.
type renewer struct {
	store     store.Store
	transport http.RoundTripper
	exchange  Exchange
	leeway    time.Duration

	// onRenewed and onExpired let the session react to renewal outcomes
	// without the transport knowing about session state.
	onRenewed func(token *oauth2.Token)
	onExpired func(err error)

	mu       sync.Mutex
	inflight *renewal
}

// expiringSoon reports whether the access token's known expiry is within the
// leeway window. Tokens without a known expiry never report as expiring.
func expiringSoon(token *oauth2.Token, leeway time.Duration) bool {
	if token.Expiry.IsZero() {
		return false
	}
	return time.Until(token.Expiry) < leeway
}

// renewed blocks until a renewal triggered by the stale token settles and
// returns the credential to use. If another caller already completed a
// renewal, the superseding token is returned without a new exchange.
func (r *renewer) renewed(req *http.Request, stale *oauth2.Token) (*oauth2.Token, error) {
	current, ren, err := r.ensure(req, stale, nil)
	if ren == nil {
		return current, err
	}
	select {
	case <-ren.done:
		return ren.token, ren.err
	case <-req.Context().Done():
		return nil, req.Context().Err()
	}
}

// resolveExpired parks a request rejected with an expired credential and
// resolves it with the outcome of its replay, or with the renewal failure.
func (r *renewer) resolveExpired(req *http.Request, stale *oauth2.Token) (*http.Response, error) {
	entry := &pendingRequest{req: req, done: make(chan replayOutcome, 1)}
	current, ren, err := r.ensure(req, stale, entry)
	if err != nil {
		return nil, err
	}
	if ren == nil {
		// already renewed behind our back; replay straight away
		return r.replay(req, current)
	}
	select {
	case out := <-entry.done:
		return out.resp, out.err
	case <-req.Context().Done():
		// the caller abandoned the request; the renewal itself runs on
		return nil, req.Context().Err()
	}
}

// ensure starts a renewal for the stale token unless one is already in
// flight or the store already holds a superseding pair. When entry is
// non-nil it is parked on the returned renewal atomically with the check,
// preserving submission order.
func (r *renewer) ensure(req *http.Request, stale *oauth2.Token, entry *pendingRequest) (*oauth2.Token, *renewal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, _ := r.store.Load(); current != nil && current.AccessToken != stale.AccessToken {
		return current, nil, nil
	}
	if r.inflight != nil {
		if entry != nil {
			r.inflight.pending = append(r.inflight.pending, entry)
		}
		return nil, r.inflight, nil
	}
	if stale.RefreshToken == "" || r.exchange == nil {
		// nothing to renew with: fail closed immediately
		err := r.failClosed(req.Context(), apierror.New(apierror.KindSessionExpired, "no refresh credential"))
		return nil, nil, err
	}
	ren := &renewal{done: make(chan struct{})}
	if entry != nil {
		ren.pending = append(ren.pending, entry)
	}
	r.inflight = ren
	// the exchange must run to completion even if the triggering caller
	// goes away, otherwise the current-pair invariant breaks
	go r.run(context.WithoutCancel(req.Context()), ren, stale.RefreshToken)
	return nil, ren, nil
}

// run performs the single renewal exchange and settles every parked request.
func (r *renewer) run(ctx context.Context, ren *renewal, refreshToken string) {
	token, err := r.exchange(ctx, refreshToken)
	if err == nil {
		if saveErr := r.store.Save(token); saveErr != nil {
			token = nil
			err = apierror.Storage("persisting renewed credentials", saveErr)
		}
	}

	switch {
	case err == nil:
		slogctx.Debug(ctx, "credentials renewed")
		if r.onRenewed != nil {
			r.onRenewed(token)
		}
	case apierror.Is(err, apierror.KindNetwork) || apierror.Is(err, apierror.KindStorage):
		// transient: the refresh token was never judged invalid, so the
		// session survives and callers may retry
		slogctx.Warn(ctx, "credential renewal interrupted", "error", err)
	default:
		err = r.failClosed(ctx, apierror.SessionExpired(err))
	}

	r.mu.Lock()
	pending := ren.pending
	ren.pending = nil
	ren.token = token
	ren.err = err
	r.inflight = nil
	r.mu.Unlock()
	close(ren.done)

	// replay in submission order; each outcome resolves its original caller
	for _, entry := range pending {
		if err != nil {
			entry.done <- replayOutcome{err: err}
			continue
		}
		resp, replayErr := r.replay(entry.req, token)
		entry.done <- replayOutcome{resp: resp, err: replayErr}
	}
}

// failClosed clears local credentials and notifies the session; every
// affected caller receives the distinct session-expired error so it can
// redirect to sign-in.
func (r *renewer) failClosed(ctx context.Context, cause *apierror.Error) error {
	slogctx.Warn(ctx, "credential renewal failed, signing out", "error", cause)
	if clearErr := r.store.Clear(); clearErr != nil {
		slogctx.Error(ctx, "clearing credential store", "error", clearErr)
	}
	if r.onExpired != nil {
		r.onExpired(cause)
	}
	return cause
}

// replay re-issues a parked request with the renewed credential.
func (r *renewer) replay(req *http.Request, token *oauth2.Token) (*http.Response, error) {
	retry := clone(req)
	retry.Header.Set("Authorization", "Bearer "+token.AccessToken)
	return r.transport.RoundTrip(retry)
}
