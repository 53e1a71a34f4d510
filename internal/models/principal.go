package models

// Principal is the authenticated identity attached to a request. It is a
// plain value object threaded through handler calls; stores never reach
// into ambient session state themselves.
type Principal struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

// PrincipalFromUser builds a Principal from a user row. The password hash
// never crosses this boundary.
func PrincipalFromUser(u *User) Principal {
	return Principal{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
		FullName: u.FullName,
		Email:    u.Email,
		Avatar:   u.Avatar,
	}
}
