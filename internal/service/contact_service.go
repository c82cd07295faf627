package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/teamsite/internal/db"
	"github.com/teamsite/internal/storage"
	"gorm.io/gorm"
)

var (
	ErrContactNotFound       = errors.New("contact message not found")
	ErrContactFieldsRequired = errors.New("contact name, email and message are required")
	ErrContactEmailInvalid   = errors.New("contact email is invalid")
)

// ContactService handles contact form submissions and the admin inbox.
type ContactService struct {
	db       *gorm.DB
	ingest   *Ingestor
	validate *validator.Validate
}

// ContactInput represents fields accepted when submitting a contact message.
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// NewContactService creates a ContactService instance.
func NewContactService(gdb *gorm.DB, ingest *Ingestor) *ContactService {
	return &ContactService{db: gdb, ingest: ingest, validate: validator.New()}
}

// ListAll returns every contact message, newest first. The inbox shows read
// and unread messages alike.
func (s *ContactService) ListAll() ([]db.ContactMessage, error) {
	messages := make([]db.ContactMessage, 0)
	if err := s.db.Order("created_at desc").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordStore, err)
	}
	return messages, nil
}

// CountUnread returns the number of unread messages.
func (s *ContactService) CountUnread() (int64, error) {
	var count int64
	if err := s.db.Model(&db.ContactMessage{}).
		Where("is_read = ?", false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRecordStore, err)
	}
	return count, nil
}

// Create validates the submission, stages the optional attachment, and
// persists the message. The attachment URL is returned to the caller but is
// not stored on the record; contact messages never feed back into the media
// pipeline.
func (s *ContactService) Create(ctx context.Context, input ContactInput, attachment *storage.Upload) (*db.ContactMessage, string, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	message := strings.TrimSpace(input.Message)
	if name == "" || email == "" || message == "" {
		return nil, "", ErrContactFieldsRequired
	}
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, "", ErrContactEmailInvalid
	}

	attachmentURL := ""
	blobKey := ""
	if attachment != nil {
		url, target, err := s.ingest.Stage(ctx, attachment)
		if err != nil {
			return nil, "", err
		}
		attachmentURL = url
		blobKey = target.Key()
	}

	msg := db.ContactMessage{
		Name:    name,
		Email:   email,
		Subject: strings.TrimSpace(input.Subject),
		Message: message,
	}

	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		if blobKey != "" {
			logOrphan("contact", blobKey, map[string]string{"name": name, "email": email}, err)
		}
		return nil, "", fmt.Errorf("%w: %v", ErrRecordStore, err)
	}

	return &msg, attachmentURL, nil
}

// MarkRead flags a message as read.
func (s *ContactService) MarkRead(id uint) error {
	var msg db.ContactMessage
	if err := s.db.First(&msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("%w: %v", ErrRecordStore, err)
	}

	if err := s.db.Model(&msg).Update("is_read", true).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrRecordStore, err)
	}
	return nil
}

// Delete removes a contact message by id.
func (s *ContactService) Delete(id uint) error {
	var msg db.ContactMessage
	if err := s.db.First(&msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("%w: %v", ErrRecordStore, err)
	}

	if err := s.db.Delete(&msg).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrRecordStore, err)
	}
	return nil
}
