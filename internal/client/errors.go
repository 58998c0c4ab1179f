package client

import "errors"

var (
	ErrNoCommand       = errors.New("no command given")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("missing required argument")
	ErrSiteNotFound    = errors.New("no credential stored for site")
	ErrAmbiguousSite   = errors.New("site is stored in several categories, pass -category")
)
