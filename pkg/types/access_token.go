package types

const (
	DEFAULT_ACCESS_TOKEN_VERSION = "v1"
)

// AccessToken is the revocation record behind a signed token. The claims
// live inside the JWT itself, the row only says whether it is still valid.
type AccessToken struct {
	ID        int64  `json:"id" db:"id"`
	Appid     string `json:"appid" db:"appid"`
	UserID    string `json:"user_id" db:"user_id"`
	Token     string `json:"token" db:"token"`
	Version   string `json:"version" db:"version"`
	Info      string `json:"info" db:"info"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
	ExpiresAt int64  `json:"expires_at" db:"expires_at"`
}
