package types

import "errors"

var (
	ErrNoTransactionsSource = errors.New("no transactions file configured. Use --transactions or a config file")
	ErrUnknownView          = errors.New("unknown view")
	ErrInvalidChoice        = errors.New("invalid choice")
)
