package session

import (
	"github.com/maxaizer/job-portal/internal/domain/models"
	"github.com/pkg/errors"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type demoAccount struct {
	password string
	user     models.User
}

// Demo accounts stand in for a real identity provider. Nothing verifies them server-side
// after login, so the stored role is trusted as is.
var demoAccounts = map[string]demoAccount{
	"admin@example.com": {
		password: "admin123",
		user:     models.User{ID: "1", Name: "Admin User", Email: "admin@example.com", Role: models.RoleAdmin},
	},
	"user@example.com": {
		password: "user123",
		user:     models.User{ID: "2", Name: "Regular User", Email: "user@example.com", Role: models.RoleUser},
	},
}

// Authenticate matches email and password exactly against the demo accounts.
func Authenticate(email, password string) (*models.User, error) {
	account, ok := demoAccounts[email]
	if !ok || account.password != password {
		return nil, ErrInvalidCredentials
	}
	user := account.user
	return &user, nil
}
