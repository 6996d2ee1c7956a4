package usecase

import (
	"context"
	"fmt"
	"time"

	"complaint-desk/internal/data/entity"
	"complaint-desk/pkg/mailer"

	"go.uber.org/zap"
)

// Notifier is the email side-channel for lifecycle events. Delivery is
// best-effort: implementations never report failure to the caller.
type Notifier interface {
	SignupOTP(email, otp string)
	LoginOTP(email, otp string)
	// ComplaintSubmitted notifies the author and one admin. Either
	// recipient may be nil.
	ComplaintSubmitted(author, admin *entity.User, complaint *entity.Complaint)
	// StatusChanged notifies the admin always; the author only when
	// notifyAuthor is set.
	StatusChanged(admin *entity.User, complaint *entity.ComplaintWithAuthor, notifyAuthor bool)
}

const (
	dispatchTimeout  = 30 * time.Second
	dispatchAttempts = 3
	dispatchBackoff  = 2 * time.Second
)

// mailNotifier dispatches through an SMTP mailer on a background goroutine.
type mailNotifier struct {
	mailer mailer.Mailer
	log    *zap.Logger
}

func NewMailNotifier(m mailer.Mailer, log *zap.Logger) Notifier {
	return &mailNotifier{
		mailer: m,
		log:    log,
	}
}

// dispatch sends asynchronously with bounded retry. A failed delivery is
// logged and dropped; it never affects the triggering operation.
func (n *mailNotifier) dispatch(msg mailer.Message) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		var err error
		for attempt := 1; attempt <= dispatchAttempts; attempt++ {
			if err = n.mailer.Send(ctx, msg); err == nil {
				n.log.Info("Notification sent",
					zap.String("to", msg.To),
					zap.String("subject", msg.Subject))
				return
			}

			n.log.Warn("Notification attempt failed",
				zap.Error(err),
				zap.String("to", msg.To),
				zap.Int("attempt", attempt))

			select {
			case <-ctx.Done():
				err = ctx.Err()
				attempt = dispatchAttempts
			case <-time.After(dispatchBackoff):
			}
		}

		n.log.Error("Notification dropped after retries",
			zap.Error(err),
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject))
	}()
}

func (n *mailNotifier) SignupOTP(email, otp string) {
	n.dispatch(otpMessage(email, otp))
}

func (n *mailNotifier) LoginOTP(email, otp string) {
	n.dispatch(otpMessage(email, otp))
}

func otpMessage(email, otp string) mailer.Message {
	return mailer.Message{
		To:      email,
		Subject: "Verify Your Email for Complaint Management App",
		TextBody: fmt.Sprintf(
			"Your OTP for email verification is: %s. It is valid for 10 minutes.", otp),
		HTMLBody: fmt.Sprintf(
			"<p>Your OTP for email verification is: <strong>%s</strong>.</p><p>It is valid for 10 minutes.</p>", otp),
	}
}

func (n *mailNotifier) ComplaintSubmitted(author, admin *entity.User, complaint *entity.Complaint) {
	if author != nil && author.Email != "" {
		n.dispatch(mailer.Message{
			To:      author.Email,
			Subject: fmt.Sprintf("Your Complaint %q Has Been Submitted", complaint.Title),
			TextBody: fmt.Sprintf(
				"Dear %s,\n\nYour complaint %q has been successfully submitted.\n\nDetails:\nCategory: %s\nPriority: %s\nDescription: %s\n\nWe will review it shortly.",
				author.Username, complaint.Title, complaint.Category, complaint.Priority, complaint.Description),
			HTMLBody: fmt.Sprintf(
				"<p>Dear %s,</p><p>Your complaint %q has been successfully submitted.</p><ul><li><strong>Category:</strong> %s</li><li><strong>Priority:</strong> %s</li><li><strong>Description:</strong> %s</li></ul><p>We will review it shortly.</p>",
				author.Username, complaint.Title, complaint.Category, complaint.Priority, complaint.Description),
		})
	}

	if admin != nil && admin.Email != "" {
		submitter := "a user"
		if author != nil {
			submitter = author.Username
		}
		n.dispatch(mailer.Message{
			To:      admin.Email,
			Subject: fmt.Sprintf("New Complaint Submitted: %s", complaint.Title),
			TextBody: fmt.Sprintf(
				"A new complaint has been submitted by %s.\n\nTitle: %s\nCategory: %s\nPriority: %s\nDescription: %s\n\nComplaint ID: %s",
				submitter, complaint.Title, complaint.Category, complaint.Priority, complaint.Description, complaint.ID),
			HTMLBody: fmt.Sprintf(
				"<p>A new complaint has been submitted by <strong>%s</strong>.</p><ul><li><strong>Title:</strong> %s</li><li><strong>Category:</strong> %s</li><li><strong>Priority:</strong> %s</li><li><strong>Description:</strong> %s</li></ul><p><strong>Complaint ID:</strong> %s</p>",
				submitter, complaint.Title, complaint.Category, complaint.Priority, complaint.Description, complaint.ID),
		})
	}
}

func (n *mailNotifier) StatusChanged(admin *entity.User, complaint *entity.ComplaintWithAuthor, notifyAuthor bool) {
	updateDate := time.Now().Format("January 2, 2006 03:04 PM")

	if admin != nil && admin.Email != "" {
		n.dispatch(mailer.Message{
			To:      admin.Email,
			Subject: fmt.Sprintf("Complaint Status Updated: %s", complaint.Title),
			TextBody: fmt.Sprintf(
				"The status of complaint %q has been updated to: %s.\n\nUpdated On: %s\nComplaint ID: %s",
				complaint.Title, complaint.Status, updateDate, complaint.ID),
			HTMLBody: fmt.Sprintf(
				"<p>The status of complaint %q has been updated to: <strong>%s</strong>.</p><p><strong>Updated On:</strong> %s</p><p><strong>Complaint ID:</strong> %s</p>",
				complaint.Title, complaint.Status, updateDate, complaint.ID),
		})
	}

	if notifyAuthor && complaint.AuthorEmail != "" {
		username := complaint.AuthorUsername
		if username == "" {
			username = "User"
		}
		n.dispatch(mailer.Message{
			To:      complaint.AuthorEmail,
			Subject: fmt.Sprintf("Your Complaint %q Status Updated", complaint.Title),
			TextBody: fmt.Sprintf(
				"Dear %s,\n\nYour complaint %q has been updated to: %s.\n\nUpdated On: %s\n\nThank you for your patience.",
				username, complaint.Title, complaint.Status, updateDate),
			HTMLBody: fmt.Sprintf(
				"<p>Dear %s,</p><p>Your complaint %q has been updated to: <strong>%s</strong>.</p><p><strong>Updated On:</strong> %s</p><p>Thank you for your patience.</p>",
				username, complaint.Title, complaint.Status, updateDate),
		})
	}
}
