package user

// User is the server-owned identity rendered across views.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// Principal identifies the authenticated user inside the client. It is the
// only identity views may consult; there is no ambient current-user state.
type Principal struct {
	UserID string
	Name   string
	Email  string
	Avatar string
}

func PrincipalFromUser(u User) Principal {
	return Principal{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
	}
}
