package service

import "errors"

// Business errors returned to the handler layer, which maps them to HTTP
// status codes.
var (
	ErrInternalServer       = errors.New("service: internal error")
	ErrRegistrationFailed   = errors.New("service: registration failed")
	ErrAuthenticationFailed = errors.New("service: authentication failed")
	ErrUserNotFound         = errors.New("service: user not found")
	ErrChatNotFound         = errors.New("service: chat not found")
	ErrMessageNotFound      = errors.New("service: message not found")
	ErrCallNotFound         = errors.New("service: call not found")
	ErrNotParticipant       = errors.New("service: user is not a participant of this chat")
	ErrNotSender            = errors.New("service: user is not the sender of this message")
	ErrInvalidInput         = errors.New("service: invalid input")
)
