package usecase

import crerr "github.com/cockroachdb/errors"

var ErrInvalidInput = crerr.New("invalid input")
