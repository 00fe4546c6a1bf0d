package domain

import "time"

// User models an account owning tasks and categories.
type User struct {
	ID                   string    `json:"id"`
	Username             string    `json:"username"`
	Email                string    `json:"email"`
	PasswordHash         string    `json:"-"`
	ProfileImage         string    `json:"profileImage"`
	LinkedInURL          string    `json:"linkedinUrl"`
	LinkedInName         string    `json:"linkedInName"`
	LinkedInProfileURL   string    `json:"linkedInProfileUrl"`
	LinkedInProfileImage string    `json:"linkedInProfileImage"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// UserPatch lists the user fields a single update may change. Nil fields are
// left untouched.
type UserPatch struct {
	Username             *string
	Email                *string
	ProfileImage         *string
	LinkedInURL          *string
	LinkedInName         *string
	LinkedInProfileURL   *string
	LinkedInProfileImage *string
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Username == nil && p.Email == nil && p.ProfileImage == nil && p.LinkedInURL == nil &&
		p.LinkedInName == nil && p.LinkedInProfileURL == nil && p.LinkedInProfileImage == nil
}

// LinkedInProfile is what the scraper extracts from a public profile page.
type LinkedInProfile struct {
	Name            string
	ProfileImageURL string
	CanonicalURL    string
}

// AuthWallName is stored as the LinkedIn name when the profile page asked
// for a sign-in instead of rendering.
const AuthWallName = "Authentication required"
