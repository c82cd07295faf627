package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// SocialLinks maps a platform name to a profile URL. Stored as a JSON text
// column so the hosted store needs no extra table.
type SocialLinks map[string]string

// Value implements driver.Valuer.
func (s SocialLinks) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (s *SocialLinks) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported source type for social links")
	}
}

// Member is a team member shown on the public members page.
type Member struct {
	ID        uint        `gorm:"primarykey" json:"id"`
	Name      string      `gorm:"size:120;not null" json:"name"`
	Role      string      `gorm:"size:120;not null" json:"role"`
	Bio       string      `json:"bio"`
	Photo     string      `gorm:"size:500" json:"photo"`
	Socials   SocialLinks `gorm:"type:text" json:"socials"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
}
