package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentType string

const (
	AppointmentTypeTournament   AppointmentType = "TOURNAMENT"
	AppointmentTypeTournamentDE AppointmentType = "TOURNAMENT_DE"
	AppointmentTypeTraining     AppointmentType = "TRAINING"
	AppointmentTypeMatch        AppointmentType = "MATCH"
	AppointmentTypeHoliday      AppointmentType = "HOLIDAY"
	AppointmentTypeOther        AppointmentType = "OTHER"
)

var AppointmentTypes = []AppointmentType{
	AppointmentTypeTournament,
	AppointmentTypeTournamentDE,
	AppointmentTypeTraining,
	AppointmentTypeMatch,
	AppointmentTypeHoliday,
	AppointmentTypeOther,
}

func (t AppointmentType) IsValid() bool {
	for _, known := range AppointmentTypes {
		if t == known {
			return true
		}
	}
	return false
}

type AppointmentStatus string

const (
	AppointmentStatusDraft     AppointmentStatus = "DRAFT"
	AppointmentStatusPublished AppointmentStatus = "PUBLISHED"
)

type Appointment struct {
	ID         string             `gorm:"primaryKey"`
	Title      string             `gorm:"not null"`
	ShortTitle string             `gorm:"not null"`
	Type       AppointmentType    `gorm:"not null;index"`
	Status     *AppointmentStatus `gorm:"index"` // NULL counts as published
	StartDate  time.Time          `gorm:"not null;index"`
	EndDate    *time.Time         `gorm:"column:end_date"`
	Location   *string            `gorm:"column:location"`
	CreatedAt  int64              `gorm:"autoCreateTime:milli"`
	UpdatedAt  int64              `gorm:"autoUpdateTime:milli"`
	DeletedAt  gorm.DeletedAt     `gorm:"index"`
}

func (a *Appointment) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
