package cart

import "errors"

var (
	ErrNotAuthenticated = errors.New("please login to modify cart")
	ErrInvalidArgument  = errors.New("invalid product or quantity")
)
