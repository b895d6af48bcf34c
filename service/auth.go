package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	dmn "github.com/maeln/r-astar/domain"
	"github.com/maeln/r-astar/service/i"
)

const tokenLifetime = 24 * time.Hour

// Auth registers users and signs them in with bearer tokens.
type Auth struct {
	userRepo  i.UserRepo
	tokenizer i.Tokenizer
	logger    i.Logger
}

// NewAuthService creates an Auth service backed by the given repository and tokenizer.
func NewAuthService(ur i.UserRepo, t i.Tokenizer, logger i.Logger) (i.Authenticator, error) {
	if ur == nil || t == nil || logger == nil {
		return nil, errors.New("auth service requires a user repo, a tokenizer and a logger")
	}
	return &Auth{
		userRepo:  ur,
		tokenizer: t,
		logger:    logger,
	}, nil
}

// Register creates a new account.
func (a *Auth) Register(username, password string) error {
	if _, err := a.userRepo.ByUsername(username); err == nil {
		return dmn.ErrUsernameConflict
	} else if !errors.Is(err, dmn.ErrUserNotFound) {
		return err
	}

	user, err := dmn.NewUser(dmn.UserConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	})
	if err != nil {
		return err
	}

	if err := a.userRepo.Save(user); err != nil {
		a.logger.Error(fmt.Sprintf("saving user %s: %s", username, err))
		return err
	}

	a.logger.Info(fmt.Sprintf("registered user: %s", user.ID))
	return nil
}

// SignIn checks the credentials and returns the user with a fresh token.
func (a *Auth) SignIn(username, password string) (*dmn.User, string, error) {
	user, err := a.userRepo.ByUsername(username)
	if errors.Is(err, dmn.ErrUserNotFound) {
		return nil, "", dmn.ErrInvalidCredentials
	}
	if err != nil {
		a.logger.Error(fmt.Sprintf("looking up user %s: %s", username, err))
		return nil, "", err
	}

	if !user.VerifyPassword(password) {
		return nil, "", dmn.ErrInvalidCredentials
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		"userID":   user.ID.String(),
		"username": user.Username,
	}, tokenLifetime)
	if err != nil {
		a.logger.Error(fmt.Sprintf("generating token for %s: %s", user.ID, err))
		return nil, "", err
	}

	return user, token, nil
}

// Profile returns the account behind a token's user ID claim.
func (a *Auth) Profile(userID string) (*dmn.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, dmn.ErrUserNotFound
	}

	user, err := a.userRepo.ByID(id)
	if err != nil && !errors.Is(err, dmn.ErrUserNotFound) {
		a.logger.Error(fmt.Sprintf("looking up user %s: %s", id, err))
	}
	return user, err
}
