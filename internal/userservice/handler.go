package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"inkpost/internal/common"
)

var (
	ErrAuthenticationFailure = errors.New("unauthorized access")
)

func NewUserService(db *sql.DB, mb common.Publisher) *UserService {
	return &UserService{
		m:  newUserModel(db),
		mb: mb,
	}
}

// CreateUser registers a new user account, creates its activation token and
// publishes a registration event for the mail consumer.
func (s *UserService) CreateUser(ctx context.Context, username, email, password string) (*string, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Username: username,
		Email:    email,
	}

	err := u.Password.set(password)
	if err != nil {
		return nil, err
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return nil, err
	}

	token, err := s.m.createToken(ctx, u.ID, ActivationTokenTime, TokenScopeActivate)
	if err != nil {
		return nil, err
	}

	data := struct {
		Email string
		Token string
	}{
		Email: u.Email,
		Token: token.Plain,
	}

	emailData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	err = s.mb.Publish(ctx, emailData, common.UserRegisteredKey, common.AccountExchange)
	if err != nil {
		return nil, err
	}

	return &token.Plain, nil
}

// ActivateUser activates a user account from its activation token. In one
// transaction the account is marked activated, the token deleted and the
// blog:write permission granted.
func (s *UserService) ActivateUser(ctx context.Context, token string) error {
	v := common.NewValidator()
	ValidateToken(v, token)
	if !v.Valid() {
		return v.ValidationError()
	}

	user, err := s.m.getUserByToken(ctx, TokenScopeActivate, hashToken(token))
	if err != nil {
		return err
	}

	return common.WithTx(ctx, s.m.db, func(tx *sql.Tx) error {
		if err := s.m.activateUserAccount(tx, ctx, user.ID, user.Version); err != nil {
			return err
		}

		if err := s.m.deleteToken(tx, ctx, user.ID, TokenScopeActivate); err != nil {
			return err
		}

		return s.m.addUserPermission(tx, ctx, user.ID, PermissionWriteBlog)
	})
}

// LoginUser verifies the credentials and returns an access/refresh token
// pair. A still-valid existing pair is reused; an expired pair is rotated.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*AuthToken, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getUserByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.matches(password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAuthenticationFailure
	}

	dbToken, err := s.m.getAuthToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if dbToken != nil && dbToken.AccessTokenExpiry.After(time.Now()) && dbToken.RefreshTokenExpiry.After(time.Now()) {
		return dbToken, nil
	}

	var authToken *AuthToken
	err = common.WithTx(ctx, s.m.db, func(tx *sql.Tx) error {
		if dbToken != nil {
			if err := s.m.deleteAuthToken(tx, ctx, user.ID); err != nil {
				return err
			}
		}

		authToken, err = s.m.createAuthToken(tx, ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return authToken, nil
}

// GetUserByAccessToken resolves a bearer token to the user it identifies.
// This is the identity lookup behind the authenticate middleware.
func (s *UserService) GetUserByAccessToken(ctx context.Context, token string) (*User, error) {
	v := common.NewValidator()
	ValidateToken(v, token)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getUserByAccessToken(ctx, hashToken(token))
}

func (s *UserService) LogoutUser(ctx context.Context, userID int) error {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return common.WithTx(ctx, s.m.db, func(tx *sql.Tx) error {
		return s.m.deleteAuthToken(tx, ctx, userID)
	})
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}

func (u *User) IsActivated() bool {
	return u.Activated
}

func (u *User) HasPermission(permission Permission) bool {
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}

	return false
}
