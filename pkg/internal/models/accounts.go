package models

type AccountRole string

const (
	RoleUser      = AccountRole("user")
	RoleModerator = AccountRole("moderator")
	RoleAdmin     = AccountRole("admin")
)

// Valid reports whether the role is one of the closed set.
// Roles are stored as strings, but every policy decision goes through
// an exhaustive switch so that a typo can never grant access.
func (v AccountRole) Valid() bool {
	switch v {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	default:
		return false
	}
}

type Account struct {
	BaseModel

	Login    string      `json:"login" gorm:"uniqueIndex;not null"`
	Password string      `json:"-" gorm:"not null"`
	Role     AccountRole `json:"role" gorm:"not null;default:user"`

	Posts []Post `json:"posts,omitempty" gorm:"foreignKey:AuthorID"`
}

// Principal is the authenticated actor of one operation, resolved from
// the request session and passed explicitly into every service call.
type Principal struct {
	AccountID uint        `json:"account_id"`
	Role      AccountRole `json:"role"`
}

func (v Account) Principal() Principal {
	return Principal{AccountID: v.ID, Role: v.Role}
}
