package i

import (
	dmn "github.com/maeln/r-astar/domain"
)

// Authenticator registers accounts and issues access tokens.
type Authenticator interface {
	Register(username, password string) error
	SignIn(username, password string) (*dmn.User, string, error)
	Profile(userID string) (*dmn.User, error)
}
