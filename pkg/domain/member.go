package domain

import "time"

// Member roles as reported by the backend.
const (
	RoleAdmin  = "ADMIN"
	RolePlayer = "PLAYER"
	RoleUser   = "USER"
)

// Membership pay types recognized by the checkout flow.
const (
	PayTypeOneTime   = "onetime"
	PayTypeYearly    = "yearly"
	PayTypeRecurring = "recurring"
)

// Member represents the currently signed-in member's profile.
// It is fetched per page and never cached across views.
type Member struct {
	ID                int64     `json:"id"`
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	Nickname          string    `json:"nickname"`
	Role              string    `json:"role"`
	MembershipPayType string    `json:"membershipPayType,omitempty"`
	ProfileImagePath  string    `json:"profileImagePath,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// IsAdmin reports whether the member may enter the admin console.
func (m Member) IsAdmin() bool {
	return m.Role == RoleAdmin
}

// HasMembershipPrivilege reports whether the member may write to community
// boards: admin role, player role, or an active paid membership.
func (m Member) HasMembershipPrivilege() bool {
	if m.Role == RoleAdmin || m.Role == RolePlayer {
		return true
	}
	return m.MembershipPayType != ""
}

// Credentials is the persisted session: tokens plus the email derived from
// the access token. Presence of AccessToken is the sole authenticated signal;
// no expiry check happens client-side.
type Credentials struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	MemberEmail  string `json:"memberEmail,omitempty"`
}
