package domain

import "errors"

// Unauthorized.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Conflict.
var (
	ErrEmailTaken    = errors.New("email is already registered")
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrRequestInFlight is returned while an earlier request with the same
	// idempotency key has not finished.
	ErrRequestInFlight = errors.New("a request with this idempotency key is still in progress")
)

// Not found. Ownership mismatches surface as these too, so callers cannot
// probe for records belonging to someone else.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrNoFile             = errors.New("no file uploaded")
	ErrMissingLinkedInURL = errors.New("linkedin url is required")
)

// Invalid argument.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidImage    = errors.New("invalid image")
)

// ErrUpstream wraps failures of third-party collaborators (image host,
// profile scraper).
var ErrUpstream = errors.New("upstream failure")

// ErrAuthWall is returned by profile scrapers when the target page demands
// a sign-in.
var ErrAuthWall = errors.New("authentication wall encountered")
