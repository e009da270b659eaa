package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeedPreferences holds the calendar feed filters of one user. All three
// fields are always present; the zero value includes nothing.
type FeedPreferences struct {
	IncludeAppointmentTypes []AppointmentType `gorm:"serializer:json"`
	IncludeResponseTypes    []ResponseType    `gorm:"serializer:json"`
	IncludeDraftStatus      bool              `gorm:"not null;default:false"`
}

type User struct {
	ID              int             `gorm:"primaryKey"`
	SubUUID         string          `gorm:"uniqueIndex;not null"`
	Username        string          `gorm:"not null"`
	FeedID          string          `gorm:"uniqueIndex;not null"`
	FeedPreferences FeedPreferences `gorm:"embedded;embeddedPrefix:feed_"`
	CreatedAt       int64           `gorm:"autoCreateTime:milli"`
	UpdatedAt       int64           `gorm:"autoUpdateTime:milli"`

	// Relations
	Responses []Response `gorm:"foreignKey:UserID;references:ID"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.FeedID == "" {
		u.FeedID = uuid.NewString()
	}
	return nil
}
