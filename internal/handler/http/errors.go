// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrInvalidExerciseID is returned when the exercise id in a URL or query
	// string is not a positive integer.
	ErrInvalidExerciseID = errors.New("invalid exercise id")

	// ErrMalformedFlash is returned when the flash cookie cannot be decoded.
	ErrMalformedFlash = errors.New("malformed flash cookie")
)

// Flash messages shown to the user.
const (
	msgDatabaseUnavailable = "Database connection failed. Please try again later."
	msgRegistered          = "Registration successful! Please log in."
	msgEmailExists         = "Email already exists. Please use a different email."
	msgInvalidCredentials  = "Invalid email or password"
	msgLoginRequired       = "Please log in to access this page."
	msgLoggedOut           = "You have been logged out."
	msgResetLinkSent       = "A password reset link has been sent to your email."
	msgEmailNotFound       = "Email not found. Please check your email address."
	msgResetMailFailed     = "Could not send the reset e-mail. Please try again later."
	msgInvalidResetToken   = "Invalid or expired reset token."
	msgPasswordsDoNotMatch = "Passwords do not match."
	msgPasswordReset       = "Your password has been reset successfully."
	msgFillAllFields       = "Please fill in all fields."
	msgPasswordTooLong     = "Password is too long. Please use at most 72 bytes."
	msgExerciseNotFound    = "Exercise not found."
	msgUnexpectedError     = "An unexpected error occurred. Please try again."
	msgReportUnavailable   = "Could not build the report. Please try again later."
)

// Flash categories, used as CSS classes.
const (
	flashSuccess = "success"
	flashError   = "error"
)
