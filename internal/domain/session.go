package domain

// SessionKey is the fixed name the session record is stored under.
const SessionKey = "user"

// Session is the persisted record identifying the logged-in user.
type Session struct {
	User  User   `bson:"user" json:"user"`
	Token string `bson:"token,omitempty" json:"token,omitempty"` // Bearer token, when the server issues one
}
