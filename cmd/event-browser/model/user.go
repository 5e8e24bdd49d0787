package model

// User is the mock signed-in identity.
type User struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name,omitempty"`
	Username    string `json:"username,omitempty"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	AccountType string `json:"accountType,omitempty"`
}

// DefaultUser is the identity seeded when nothing has been persisted yet.
func DefaultUser() *User {
	return &User{
		ID:          "12345",
		Name:        "Test User",
		Username:    "testuser",
		Email:       "test@bears.unco.edu",
		AccountType: "Student",
	}
}

// Identities lists every value the user may have been recorded under.
func (u *User) Identities() []string {
	if u == nil {
		return nil
	}
	return uniqueStrings([]string{u.ID, u.Username, u.Email})
}

// DisplayName picks the first non-empty of name, username and email.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	for _, s := range []string{u.Name, u.Username, u.Email} {
		if s != "" {
			return s
		}
	}
	return u.ID
}

// Clone returns a copy of u, or nil.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
