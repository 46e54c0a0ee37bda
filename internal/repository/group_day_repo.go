package repository

import (
	"context"

	"gorm.io/gorm"

	"tutor-center/backend/internal/model"
)

// GroupDayRepository cohort data access
type GroupDayRepository interface {
	Create(ctx context.Context, group *model.GroupDay) error
	GetByID(ctx context.Context, id string) (*model.GroupDay, error)
	List(ctx context.Context, gradeID, trackID string) ([]model.GroupDay, error)
}

type groupDayRepo struct {
	db *gorm.DB
}

// NewGroupDayRepo creates a GroupDayRepository
func NewGroupDayRepo(db *gorm.DB) GroupDayRepository {
	return &groupDayRepo{db: db}
}

func (r *groupDayRepo) Create(ctx context.Context, group *model.GroupDay) error {
	return r.db.WithContext(ctx).Omit("Grade", "Track").Create(group).Error
}

func (r *groupDayRepo) GetByID(ctx context.Context, id string) (*model.GroupDay, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var group model.GroupDay
	err := r.db.WithContext(ctx).
		Preload("Grade").
		Preload("Track").
		Where("group_day_id = ?", id).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupDayRepo) List(ctx context.Context, gradeID, trackID string) ([]model.GroupDay, error) {
	var groups []model.GroupDay
	db := r.db.WithContext(ctx)

	if gradeID != "" {
		db = db.Where("grade_id = ?", gradeID)
	}
	if trackID != "" {
		db = db.Where("track_id = ?", trackID)
	}

	err := db.Preload("Grade").
		Preload("Track").
		Order("grade_id ASC, first_day ASC, time_slot ASC").
		Find(&groups).Error
	return groups, err
}
