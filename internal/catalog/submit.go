package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mandag122/WeeVora/internal/mapper"
	"github.com/mandag122/WeeVora/internal/models"
)

// Feedback table field names
const (
	fieldName        = "Name"
	fieldEmail       = "Email"
	fieldSubject     = "Subject"
	fieldReason      = "Reason"
	fieldMessage     = "Message"
	fieldSubmittedOn = "Submitted On"
	fieldRelatedCamp = "Related Camp"
	fieldStatus      = "Status"
)

// SubmitContact stores a contact form message in the feedback table
func (s *Service) SubmitContact(ctx context.Context, req models.ContactRequest) error {
	if s.source == nil {
		return ErrNotConfigured
	}

	fields := map[string]any{
		fieldName:    strings.TrimSpace(req.Name),
		fieldEmail:   strings.TrimSpace(req.Email),
		fieldSubject: strings.TrimSpace(req.Subject),
		fieldMessage: strings.TrimSpace(req.Message),
	}
	if _, err := s.source.CreateRecord(ctx, mapper.TableFeedback, fields, false); err != nil {
		return fmt.Errorf("submit contact: %w", err)
	}

	s.notify(ctx, fmt.Sprintf("New contact message from %s <%s>\n%s", req.Name, req.Email, req.Message))
	return nil
}

// SubmitFeedback stores a feedback entry. A message plus a name or an email
// is required. The related camp is written as a one element link list.
func (s *Service) SubmitFeedback(ctx context.Context, req models.FeedbackRequest) (models.Record, error) {
	if s.source == nil {
		return models.Record{}, ErrNotConfigured
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	message := strings.TrimSpace(req.Message)
	if message == "" || (name == "" && email == "") {
		return models.Record{}, ErrInvalidSubmission
	}

	fields := map[string]any{
		fieldMessage:     message,
		fieldSubmittedOn: time.Now().UTC().Format(time.RFC3339),
	}
	setIf := func(key, value string) {
		if v := strings.TrimSpace(value); v != "" {
			fields[key] = v
		}
	}
	setIf(fieldName, name)
	setIf(fieldEmail, email)
	setIf(fieldReason, req.Reason)
	setIf(fieldStatus, req.Status)
	if id := strings.TrimSpace(req.RelatedCampID); id != "" {
		fields[fieldRelatedCamp] = []string{id}
	}

	rec, err := s.source.CreateRecord(ctx, mapper.TableFeedback, fields, true)
	if err != nil {
		return models.Record{}, fmt.Errorf("submit feedback: %w", err)
	}

	who := name
	if who == "" {
		who = email
	}
	s.notify(ctx, fmt.Sprintf("New feedback from %s\n%s", who, message))
	return rec, nil
}

func (s *Service) notify(ctx context.Context, text string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, text); err != nil {
		s.log.Warn("failed to send notification", zap.Error(err))
	}
}
