package types

type User struct {
	ID        string `json:"id" db:"id"`
	Appid     string `json:"appid" db:"appid"`
	Name      string `json:"name" db:"name"`
	Avatar    string `json:"avatar" db:"avatar"`
	Email     string `json:"email" db:"email"`
	Password  string `json:"-" db:"password"`
	Salt      string `json:"-" db:"salt"`
	Source    string `json:"source" db:"source"`
	UpdatedAt int64  `json:"updated_at" db:"updated_at"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}

// UserProfile is the slice of account data the CV default document is
// derived from. Mirrors what the auth layer knows about a signed-in user.
type UserProfile struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Avatar      string `json:"avatar"`
}
