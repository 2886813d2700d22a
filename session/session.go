package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	slogctx "github.com/veqryn/slog-context"
	"golang.org/x/oauth2"

	"github.com/liftlog/liftlog-go/apierror"
	"github.com/liftlog/liftlog-go/client"
	"github.com/liftlog/liftlog-go/client/auth/store"
	"github.com/liftlog/liftlog-go/client/auth/transport"
	"github.com/liftlog/liftlog-go/internal/collection"
	"github.com/liftlog/liftlog-go/schema"
)

// MaxAvatarBytes is the upload ceiling enforced locally before any network
// call is made.
const MaxAvatarBytes = 5 << 20

// ErrPostSignUpSignIn marks a sign-up whose registration succeeded but whose
// follow-up sign-in did not. errors.Is distinguishes it from a plain
// registration failure.
var ErrPostSignUpSignIn = errors.New("account created but sign-in failed")

// Session is the process-wide source of truth for the signed-in identity.
// It owns the current user and status, funnels every mutation through the
// authenticated client, and notifies subscribers on every change. Local
// state is only committed after the server confirmed the corresponding
// mutation.
type Session struct {
	api   *client.Client
	store store.Store

	avatarLimit int64
	base        http.RoundTripper
	clientOpts  []client.Option

	mu     sync.RWMutex
	status Status
	user   *schema.User

	listeners    *collection.SyncMap[uint64, Listener]
	nextListener atomic.Uint64
}

// New assembles a session for the service at baseURL: credential store,
// authenticated transport with single-flight renewal, typed client. The
// startup transition out of StatusUnknown happens here, exactly once,
// reading the store synchronously.
func New(baseURL string, options ...Option) (*Session, error) {
	s := &Session{
		store:       store.NewMemoryStore(),
		avatarLimit: MaxAvatarBytes,
		base:        http.DefaultTransport,
		status:      StatusUnknown,
		listeners:   collection.NewSyncMap[uint64, Listener](),
	}
	for _, opt := range options {
		opt(s)
	}

	roundTripper, err := transport.New(
		transport.WithStore(s.store),
		transport.WithTransport(s.base),
		transport.WithExchange(func(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
			return s.api.Refresh(ctx, refreshToken)
		}),
		transport.WithOnSessionExpired(s.expire),
	)
	if err != nil {
		return nil, err
	}
	opts := append([]client.Option{client.WithHTTPClient(&http.Client{Transport: roundTripper})}, s.clientOpts...)
	s.api = client.New(baseURL, opts...)

	if token, _ := s.store.Load(); token != nil && token.RefreshToken != "" {
		s.status = StatusSignedIn
	} else {
		s.status = StatusSignedOut
	}
	return s, nil
}

// Client exposes the authenticated API client for calls outside the
// session's own contract, e.g. the exercise catalog.
func (s *Session) Client() *client.Client {
	return s.api
}

// Status returns the current authentication status.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// User returns a copy of the current profile, or nil when signed out.
func (s *Session) User() *schema.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

// SignIn authenticates with email and password. On success the credential
// pair is persisted, the profile committed and subscribers notified; on
// failure local state is left untouched.
func (s *Session) SignIn(ctx context.Context, email, password string) (*schema.User, error) {
	form := SignInForm{Email: email, Password: password}
	if err := evaluate(form, signInRules); err != nil {
		return nil, err
	}
	return s.signIn(ctx, email, password)
}

func (s *Session) signIn(ctx context.Context, email, password string) (*schema.User, error) {
	auth, err := s.api.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(auth.Token()); err != nil {
		return nil, apierror.Storage("persisting credentials", err)
	}
	user := auth.User
	s.commit(StatusSignedIn, &user)
	slogctx.Info(ctx, "signed in", "userId", user.ID)
	return user.Clone(), nil
}

// SignUp registers a new account and immediately signs it in. A failure of
// the follow-up sign-in wraps ErrPostSignUpSignIn so callers can tell it
// apart from a registration failure.
func (s *Session) SignUp(ctx context.Context, name, email, password string) (*schema.User, error) {
	form := SignUpForm{Name: name, Email: email, Password: password}
	if err := evaluate(form, signUpRules); err != nil {
		return nil, err
	}
	if _, err := s.api.SignUp(ctx, name, email, password); err != nil {
		return nil, err
	}
	user, err := s.signIn(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPostSignUpSignIn, err)
	}
	return user, nil
}

// SignOut clears local state unconditionally. The server-side invalidation
// is best effort: its failure is logged, never surfaced. A credential store
// failure is returned after local state is already cleared.
func (s *Session) SignOut(ctx context.Context) error {
	if err := s.api.SignOut(ctx); err != nil {
		slogctx.Warn(ctx, "server-side sign-out failed", "error", err)
	}
	clearErr := s.store.Clear()
	s.commit(StatusSignedOut, nil)
	slogctx.Info(ctx, "signed out")
	if clearErr != nil {
		return apierror.Storage("clearing credentials", clearErr)
	}
	return nil
}

// UpdateProfile stages a profile edit, sends it, and commits the server's
// confirmed profile. On any failure the previous user value is retained
// untouched.
func (s *Session) UpdateProfile(ctx context.Context, form ProfileForm) (*schema.User, error) {
	if err := evaluate(form, profileRules); err != nil {
		return nil, err
	}
	confirmed, err := s.api.UpdateProfile(ctx, patchFromForm(form))
	if err != nil {
		return nil, err
	}
	s.commit(StatusSignedIn, confirmed)
	return confirmed.Clone(), nil
}

// Reload fetches the profile of the signed-in account and commits it. It is
// how the profile is restored after a process restart.
func (s *Session) Reload(ctx context.Context) (*schema.User, error) {
	user, err := s.api.Me(ctx)
	if err != nil {
		return nil, err
	}
	s.commit(StatusSignedIn, user)
	return user.Clone(), nil
}

// patchFromForm maps the validated form onto the wire patch; empty fields
// stay nil so the server leaves them unchanged.
func patchFromForm(form ProfileForm) *schema.ProfileUpdateRequest {
	patch := &schema.ProfileUpdateRequest{}
	if form.Name != "" {
		patch.Name = &form.Name
	}
	if form.Email != "" {
		patch.Email = &form.Email
	}
	if form.changesPassword() {
		patch.Password = &form.NewPassword
		patch.CurrentPassword = &form.CurrentPassword
	}
	return patch
}

// commit replaces session state and notifies subscribers. It is the single
// mutation point for status and user.
func (s *Session) commit(status Status, user *schema.User) {
	s.mu.Lock()
	s.status = status
	s.user = user
	snapshot := Snapshot{Status: status, User: user.Clone()}
	s.mu.Unlock()
	s.notify(snapshot)
}

// expire reacts to a failed renewal: the transport already cleared the
// store, so only in-memory state and subscribers are left to handle. All
// screens treat this exactly like an explicit sign-out.
func (s *Session) expire(err error) {
	slogctx.Warn(context.Background(), "session expired", "error", err)
	s.commit(StatusSignedOut, nil)
}
