package repository

import (
	"context"

	"gorm.io/gorm"

	"tutor-center/backend/internal/model"
)

// GradeRepository grade and track reference data access
type GradeRepository interface {
	Create(ctx context.Context, grade *model.Grade) error
	GetByID(ctx context.Context, id string) (*model.Grade, error)
	List(ctx context.Context) ([]model.Grade, error)
}

// TrackRepository track data access
type TrackRepository interface {
	Create(ctx context.Context, track *model.Track) error
	GetByID(ctx context.Context, id string) (*model.Track, error)
	ListByGrade(ctx context.Context, gradeID string) ([]model.Track, error)
}

// ── Grade ──

type gradeRepo struct {
	db *gorm.DB
}

func NewGradeRepo(db *gorm.DB) GradeRepository {
	return &gradeRepo{db: db}
}

func (r *gradeRepo) Create(ctx context.Context, grade *model.Grade) error {
	return r.db.WithContext(ctx).Omit("Tracks").Create(grade).Error
}

func (r *gradeRepo) GetByID(ctx context.Context, id string) (*model.Grade, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var grade model.Grade
	err := r.db.WithContext(ctx).
		Preload("Tracks", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Where("grade_id = ?", id).
		First(&grade).Error
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

func (r *gradeRepo) List(ctx context.Context) ([]model.Grade, error) {
	var grades []model.Grade
	err := r.db.WithContext(ctx).
		Preload("Tracks", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Order("name ASC").
		Find(&grades).Error
	return grades, err
}

// ── Track ──

type trackRepo struct {
	db *gorm.DB
}

func NewTrackRepo(db *gorm.DB) TrackRepository {
	return &trackRepo{db: db}
}

func (r *trackRepo) Create(ctx context.Context, track *model.Track) error {
	return r.db.WithContext(ctx).Create(track).Error
}

func (r *trackRepo) GetByID(ctx context.Context, id string) (*model.Track, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var track model.Track
	err := r.db.WithContext(ctx).
		Where("track_id = ?", id).
		First(&track).Error
	if err != nil {
		return nil, err
	}
	return &track, nil
}

func (r *trackRepo) ListByGrade(ctx context.Context, gradeID string) ([]model.Track, error) {
	var tracks []model.Track
	err := r.db.WithContext(ctx).
		Where("grade_id = ?", gradeID).
		Order("name ASC").
		Find(&tracks).Error
	return tracks, err
}
