// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package mailer delivers plain-text e-mails over SMTP.
package mailer

import (
	"context"
	"errors"
)

// ErrSendingMail is returned when the SMTP server could not accept a message.
var ErrSendingMail = errors.New("error sending mail")

// Message is a single plain-text e-mail.
type Message struct {
	To      string
	Subject string
	Body    string
}

//go:generate mockgen -source=mailer.go -destination=../mock/mailer_mock.go -package=mock

// Sender delivers e-mail messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
