package repository

import (
	"clubcal/cmd/internal/domain/entity"
	"context"
	"errors"
	"gorm.io/gorm"
)

type DefaultAppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *DefaultAppointmentRepository {
	return &DefaultAppointmentRepository{db: db}
}

func (a *DefaultAppointmentRepository) FindByID(ctx context.Context, id string) (*entity.Appointment, error) {
	var appt entity.Appointment
	err := a.db.WithContext(ctx).First(&appt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &appt, err
}

// Query returns the appointments matching filter, ordered by start date.
func (a *DefaultAppointmentRepository) Query(ctx context.Context, filter entity.AppointmentFilter) ([]*entity.Appointment, error) {
	results := make([]*entity.Appointment, 0)
	if len(filter.Types) == 0 || (filter.IDs != nil && len(filter.IDs) == 0) {
		return results, nil
	}

	tx := a.db.WithContext(ctx).Model(&entity.Appointment{})
	if !filter.ExcludeDeleted {
		tx = tx.Unscoped()
	}

	tx = tx.Where("type IN ?", filter.Types)

	if filter.PublishedOnly {
		tx = tx.Where("(status = ? OR status IS NULL)", entity.AppointmentStatusPublished)
	}

	if filter.IDs != nil {
		tx = tx.Where("id IN ?", filter.IDs)
	}

	err := tx.Order("start_date asc").
		Find(&results).Error

	if err != nil {
		return nil, err
	}
	return results, nil
}

func (a *DefaultAppointmentRepository) Save(ctx context.Context, appointment *entity.Appointment) error {
	return a.db.WithContext(ctx).Save(appointment).Error
}

func (a *DefaultAppointmentRepository) Delete(ctx context.Context, appointment *entity.Appointment) error {
	return a.db.WithContext(ctx).Delete(appointment).Error
}
