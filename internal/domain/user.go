package domain

// User is the user record as transported by the remote API.
// The same struct is persisted as the session record.
type User struct {
	ID             string   `bson:"id" json:"id"`
	Name           string   `bson:"name" json:"name"`
	Email          string   `bson:"email" json:"email"`
	MobileNumber   string   `bson:"mobileNumber,omitempty" json:"mobileNumber,omitempty"`
	ProfileImage   string   `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Followers      []string `bson:"followers,omitempty" json:"followers,omitempty"` // Ids of users following this user
	FollowersCount int      `bson:"followersCount" json:"followersCount"`
	FollowingCount int      `bson:"followingCount" json:"followingCount"`
	Active         bool     `bson:"active" json:"active"`
}

// Key returns the identity of the user.
func (u User) Key() string { return u.ID }

// IsFollowedBy reports whether userID is in the followers set.
func (u *User) IsFollowedBy(userID string) bool {
	for _, id := range u.Followers {
		if id == userID {
			return true
		}
	}
	return false
}

// ProfileUpdate holds the editable profile fields. Empty fields are left unchanged
// by the server; Password is only sent when non-empty.
type ProfileUpdate struct {
	Name         string `json:"name,omitempty" validate:"omitempty,min=3,max=20"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	Password     string `json:"password,omitempty" validate:"omitempty,password"`
	ProfileImage string `json:"profileImage,omitempty" validate:"omitempty,url"`
}

// Registration is the payload of a new account.
type Registration struct {
	Name         string `json:"name" validate:"required,min=3,max=20"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,password"`
	MobileNumber string `json:"mobileNumber" validate:"required,min=10,numeric"`
	ProfileImage string `json:"profileImage,omitempty" validate:"omitempty,url"`
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}
