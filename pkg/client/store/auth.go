package store

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/taskboard/task-api/pkg/client"
)

// ErrNoToken is returned by FetchProfile before a successful Login.
var ErrNoToken = errors.New("no token found")

// AuthGateway is the part of *client.Client an AuthStore uses.
type AuthGateway interface {
	Register(ctx context.Context, in client.RegisterInput) (*client.User, error)
	Login(ctx context.Context, email, password string) (*client.LoginResult, error)
	Logout()
	Token() string
	Profile(ctx context.Context) (*client.User, error)
	UpdateProfile(ctx context.Context, in client.ProfileUpdate) (*client.User, error)
	UploadProfileImage(ctx context.Context, filename string, image io.Reader) (string, error)
	ScrapeLinkedIn(ctx context.Context, userID, linkedInURL string) (*client.User, error)
}

// AuthState is a copy of the session held by an AuthStore.
type AuthState struct {
	User          *client.User
	Authenticated bool
	Loading       bool
	Error         string
}

// AuthStore tracks the signed-in user.
type AuthStore struct {
	gw  AuthGateway
	log zerolog.Logger

	mu    sync.Mutex
	state AuthState
}

func NewAuthStore(gw AuthGateway, log zerolog.Logger) *AuthStore {
	return &AuthStore{gw: gw, log: log}
}

func (s *AuthStore) Snapshot() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.state
	if out.User != nil {
		u := *out.User
		out.User = &u
	}
	return out
}

// Register creates the account. The session stays signed out until Login,
// because registration issues no token.
func (s *AuthStore) Register(ctx context.Context, in client.RegisterInput) (*client.User, error) {
	s.begin()
	user, err := s.gw.Register(ctx, in)
	if err != nil {
		return nil, s.fail(err, "Registration failed", false)
	}
	s.succeed(func(st *AuthState) { st.User = user })
	return user, nil
}

func (s *AuthStore) Login(ctx context.Context, email, password string) (*client.User, error) {
	s.begin()
	res, err := s.gw.Login(ctx, email, password)
	if err != nil {
		return nil, s.fail(err, "Login failed", false)
	}
	user := res.User
	s.succeed(func(st *AuthState) {
		st.User = &user
		st.Authenticated = true
	})
	return &res.User, nil
}

func (s *AuthStore) Logout() {
	s.gw.Logout()
	s.mu.Lock()
	s.state = AuthState{}
	s.mu.Unlock()
}

// FetchProfile refreshes the user. Any failure signs the session out.
func (s *AuthStore) FetchProfile(ctx context.Context) (*client.User, error) {
	s.begin()
	if s.gw.Token() == "" {
		return nil, s.fail(ErrNoToken, "Failed to fetch profile", true)
	}
	user, err := s.gw.Profile(ctx)
	if err != nil {
		return nil, s.fail(err, "Failed to fetch profile", true)
	}
	s.succeed(func(st *AuthState) {
		st.User = user
		st.Authenticated = true
	})
	return user, nil
}

func (s *AuthStore) UpdateProfile(ctx context.Context, in client.ProfileUpdate) (*client.User, error) {
	s.begin()
	user, err := s.gw.UpdateProfile(ctx, in)
	if err != nil {
		return nil, s.fail(err, "Failed to update profile", false)
	}
	s.succeed(func(st *AuthState) { st.User = user })
	return user, nil
}

// ScrapeLinkedIn enriches the signed-in user from a LinkedIn profile URL.
func (s *AuthStore) ScrapeLinkedIn(ctx context.Context, linkedInURL string) (*client.User, error) {
	s.begin()
	s.mu.Lock()
	var userID string
	if s.state.User != nil {
		userID = s.state.User.ID
	}
	s.mu.Unlock()

	user, err := s.gw.ScrapeLinkedIn(ctx, userID, linkedInURL)
	if err != nil {
		return nil, s.fail(err, "Failed to scrape LinkedIn profile", false)
	}
	s.succeed(func(st *AuthState) { st.User = user })
	return user, nil
}

// UploadProfileImage returns the hosted image URL and records it on the user.
func (s *AuthStore) UploadProfileImage(ctx context.Context, filename string, image io.Reader) (string, error) {
	s.begin()
	imageURL, err := s.gw.UploadProfileImage(ctx, filename, image)
	if err != nil {
		return "", s.fail(err, "Failed to update profile image", false)
	}
	s.succeed(func(st *AuthState) {
		if st.User != nil {
			u := *st.User
			u.ProfileImage = imageURL
			st.User = &u
		}
	})
	return imageURL, nil
}

func (s *AuthStore) begin() {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()
}

func (s *AuthStore) succeed(apply func(*AuthState)) {
	s.mu.Lock()
	apply(&s.state)
	s.state.Loading = false
	s.mu.Unlock()
}

func (s *AuthStore) fail(err error, fallback string, signOut bool) error {
	msg := errorMessage(err, fallback)
	s.mu.Lock()
	s.state.Loading = false
	s.state.Error = msg
	if signOut {
		s.state.Authenticated = false
	}
	s.mu.Unlock()
	s.log.Error().Err(err).Msg(msg)
	return err
}
