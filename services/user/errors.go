package user

import (
	"errors"

	"localconnect/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIdentifierRequired = utils.BadRequest("username or email is required")
	ErrAccountTaken       = utils.BadRequest("username or email already taken")
	ErrUserNotFound       = errors.New("user not found")
)
