// Package notify composes and dispatches the notification messages emitted
// by workflow transitions. Delivery is best effort: the message record is
// persisted first, then handed to the delivery channel in the background,
// and a delivery failure is logged but never surfaced to the caller.
package notify

import (
	"context"
	"time"

	"github.com/cinelist/backend/internal/models"
	"github.com/cinelist/backend/internal/repositories"
	"github.com/cinelist/backend/pkg/logger"
)

// Notifier is the external delivery channel for notification messages.
type Notifier interface {
	Deliver(ctx context.Context, msg *models.Message) error
}

// LogNotifier is a Notifier that only logs the delivery. It stands in for a
// real mail transport in development and in tests.
type LogNotifier struct{}

func (LogNotifier) Deliver(_ context.Context, msg *models.Message) error {
	logger.Info("Delivering notification",
		"to", msg.ToEmail,
		"subject", msg.Subject,
	)
	return nil
}

// Service writes message records and pushes them to the delivery channel.
type Service struct {
	messages repositories.MessageRepository
	notifier Notifier
	from     string
}

// NewService creates a notification service.
func NewService(messages repositories.MessageRepository, notifier Notifier, from string) *Service {
	return &Service{messages: messages, notifier: notifier, from: from}
}

func (s *Service) dispatch(ctx context.Context, msg *models.Message) {
	if err := s.messages.Create(ctx, msg); err != nil {
		logger.Error("Failed to store notification message", "error", err)
		return
	}

	go func(m models.Message) {
		deliverCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.notifier.Deliver(deliverCtx, &m); err != nil {
			logger.Warn("Notification delivery failed",
				"to", m.ToEmail,
				"subject", m.Subject,
				"error", err,
			)
		}
	}(*msg)
}

// SendWelcome notifies a freshly registered user.
func (s *Service) SendWelcome(ctx context.Context, user *models.User) {
	body := "Welcome to CineList, " + user.FirstName + "!\n" +
		"The first thing you should do is build out your CineList library with movies you own.\n" +
		"Once you have your library built, you should search for friends and begin sharing movies.\nThank you!"

	s.dispatch(ctx, &models.Message{
		Subject:     "Welcome to CineList",
		Body:        body,
		FromEmail:   s.from,
		ToEmail:     user.Email,
		RecipientID: user.ID,
	})
}

// SendFriendRequest notifies the receiver of a new friend request.
func (s *Service) SendFriendRequest(ctx context.Context, sender, receiver *models.User) {
	body := "Hello from CineList, \n" + sender.FullName() + " would like to become your friend.\n" +
		"To reply to this friend request, please sign into your CineList account. Thank you!"

	s.dispatch(ctx, &models.Message{
		Subject:     "CineList friend request from " + sender.FullName(),
		Body:        body,
		FromEmail:   s.from,
		ToEmail:     receiver.Email,
		RecipientID: receiver.ID,
	})
}

// SendBorrowRequest notifies a movie's owner of a new borrow request,
// including the borrower's note when present.
func (s *Service) SendBorrowRequest(ctx context.Context, sender, owner *models.User, movie *models.Movie, notes string) {
	body := "Hello from CineList! Your friend, " + sender.FullName() +
		", would like to borrow your movie, " + movie.Title + ".\n"
	if notes != "" {
		body += "Note from " + sender.FirstName + ": " + notes + "\n"
	}
	body += "To reply to this borrow request, please sign into your CineList account. Thank you!"

	s.dispatch(ctx, &models.Message{
		Subject:     "CineList borrow request from " + sender.FullName(),
		Body:        body,
		FromEmail:   s.from,
		ToEmail:     owner.Email,
		RecipientID: owner.ID,
	})
}
