package service

import (
	"context"
	"log/slog"
)

type NotificationKind string

const (
	NoticeSignInSuccess      NotificationKind = "signin_success"
	NoticeInvalidCredentials NotificationKind = "invalid_credentials"
	NoticeAccessDenied       NotificationKind = "access_denied"
	NoticeSignedOut          NotificationKind = "signed_out"
	NoticeSignUpSuccess      NotificationKind = "signup_success"
	NoticeEmailInUse         NotificationKind = "email_in_use"
)

type NotificationLevel string

const (
	LevelSuccess NotificationLevel = "success"
	LevelError   NotificationLevel = "error"
	LevelInfo    NotificationLevel = "info"
)

// Notification is advisory user-facing feedback. Nothing downstream depends on it being delivered.
type Notification struct {
	Kind    NotificationKind  `json:"kind"`
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
	Email   string            `json:"-"`
}

var notificationText = map[NotificationKind]struct {
	level   NotificationLevel
	message string
}{
	NoticeSignInSuccess:      {LevelSuccess, "Login successful"},
	NoticeInvalidCredentials: {LevelError, "Invalid credentials"},
	NoticeAccessDenied:       {LevelError, "Access denied: administrator account required"},
	NoticeSignedOut:          {LevelInfo, "You've been logged out"},
	NoticeSignUpSuccess:      {LevelSuccess, "Account created"},
	NoticeEmailInUse:         {LevelError, "An account with this email already exists"},
}

func NewNotification(kind NotificationKind, email string) Notification {
	t := notificationText[kind]
	return Notification{Kind: kind, Level: t.level, Message: t.message, Email: email}
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, notification Notification) {
	n.logger.InfoContext(ctx, "user notification",
		"kind", notification.Kind,
		"level", notification.Level,
		"message", notification.Message,
		"email", notification.Email,
	)
}

type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, Notification) {}
