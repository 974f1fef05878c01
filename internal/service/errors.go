package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrPasswordTooLong     = errors.New("password is longer than 72 bytes")
	ErrWrongCredentials    = errors.New("invalid email or password")

	ErrSessionCreationFailed = errors.New("session token creation failed")
	ErrSessionInvalid        = errors.New("session is expired or invalid")

	ErrSendingResetMail = errors.New("error sending password reset mail")
	ErrBuildingReport   = errors.New("error building report")
)
