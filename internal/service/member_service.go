package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/teamsite/internal/db"
	"github.com/teamsite/internal/storage"
	"gorm.io/gorm"
)

var (
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberNameRequired  = errors.New("member name is required")
	ErrMemberRoleRequired  = errors.New("member role is required")
	ErrMemberSocialInvalid = errors.New("member socials are invalid")
)

var allowedSocialPlatforms = map[string]struct{}{
	"instagram": {},
	"github":    {},
	"twitter":   {},
	"linkedin":  {},
}

// MemberService handles team member CRUD and photo ingest.
type MemberService struct {
	db         *gorm.DB
	ingest     *Ingestor
	normalizer storage.Normalizer
}

// MemberInput represents fields accepted when creating a member. Socials is
// a JSON object mapping platform name to URL. Photo carries an already
// resolved URL or path fragment for the no-upload path.
type MemberInput struct {
	Name    string
	Role    string
	Bio     string
	Photo   string
	Socials string
}

// NewMemberService creates a MemberService instance.
func NewMemberService(gdb *gorm.DB, ingest *Ingestor, normalizer storage.Normalizer) *MemberService {
	return &MemberService{db: gdb, ingest: ingest, normalizer: normalizer}
}

// ListActive returns active members, newest first, with photo paths
// normalized to fetchable URLs.
func (s *MemberService) ListActive() ([]db.Member, error) {
	members := make([]db.Member, 0)
	if err := s.db.Where("is_active = ?", true).
		Order("created_at desc").
		Find(&members).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordStore, err)
	}

	for i := range members {
		members[i].Photo = s.normalizer.Normalize(members[i].Photo)
	}
	return members, nil
}

// Create validates the input, stages the photo upload when present, and
// persists the member. Validation failures happen before any store call.
func (s *MemberService) Create(ctx context.Context, input MemberInput, upload *storage.Upload) (*db.Member, error) {
	name := strings.TrimSpace(input.Name)
	role := strings.TrimSpace(input.Role)
	if name == "" {
		return nil, ErrMemberNameRequired
	}
	if role == "" {
		return nil, ErrMemberRoleRequired
	}

	socials, err := parseSocials(input.Socials)
	if err != nil {
		return nil, err
	}

	photo := strings.TrimSpace(input.Photo)
	blobKey := ""
	if upload != nil {
		url, target, err := s.ingest.Stage(ctx, upload)
		if err != nil {
			return nil, err
		}
		photo = url
		blobKey = target.Key()
	}

	member := db.Member{
		Name:     name,
		Role:     role,
		Bio:      strings.TrimSpace(input.Bio),
		Photo:    photo,
		Socials:  socials,
		IsActive: true,
	}

	if err := s.db.WithContext(ctx).Create(&member).Error; err != nil {
		if blobKey != "" {
			logOrphan("member", blobKey, map[string]string{"name": name, "role": role}, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrRecordStore, err)
	}

	return &member, nil
}

// Delete removes a member by id.
func (s *MemberService) Delete(id uint) error {
	var member db.Member
	if err := s.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("%w: %v", ErrRecordStore, err)
	}

	if err := s.db.Delete(&member).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrRecordStore, err)
	}
	return nil
}

func parseSocials(raw string) (db.SocialLinks, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, nil
	}

	var links db.SocialLinks
	if err := json.Unmarshal([]byte(raw), &links); err != nil {
		return nil, ErrMemberSocialInvalid
	}

	for platform := range links {
		if _, ok := allowedSocialPlatforms[strings.ToLower(platform)]; !ok {
			return nil, ErrMemberSocialInvalid
		}
	}
	return links, nil
}
