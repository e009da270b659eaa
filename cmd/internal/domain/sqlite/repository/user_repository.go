package repository

import (
	"clubcal/cmd/internal/domain/entity"
	"context"
	"errors"
	"gorm.io/gorm"
)

type DefaultUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *DefaultUserRepository {
	return &DefaultUserRepository{db: db}
}

// FindByFeedID looks a user up by feed token, responses included.
// A missing user yields (nil, nil).
func (u *DefaultUserRepository) FindByFeedID(ctx context.Context, feedID string) (*entity.User, error) {
	var user entity.User
	err := u.db.WithContext(ctx).
		Preload("Responses").
		Where("feed_id = ?", feedID).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *DefaultUserRepository) FindBySub(ctx context.Context, sub string) (*entity.User, error) {
	var user entity.User
	err := u.db.WithContext(ctx).Where("sub_uuid = ?", sub).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *DefaultUserRepository) Save(ctx context.Context, user *entity.User) error {
	return u.db.WithContext(ctx).Save(user).Error
}

func (u *DefaultUserRepository) SaveResponse(ctx context.Context, response *entity.Response) error {
	return u.db.WithContext(ctx).Save(response).Error
}
