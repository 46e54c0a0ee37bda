package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tutor-center/backend/internal/model"
)

// HomeworkFilter assignment list filters; empty fields are ignored.
type HomeworkFilter struct {
	GradeID    string
	TrackID    string
	GroupDayID string
}

// HomeworkRepository assignment data access
type HomeworkRepository interface {
	Create(ctx context.Context, hw *model.Homework) error
	GetByID(ctx context.Context, id string) (*model.Homework, error)
	List(ctx context.Context, filter HomeworkFilter) ([]model.Homework, error)
	// ListForStudent assignments whose grade matches and whose optional
	// track/group either is unset or matches the student.
	ListForStudent(ctx context.Context, student *model.Student) ([]model.Homework, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// SubmissionRepository homework submission data access
type SubmissionRepository interface {
	Create(ctx context.Context, sub *model.HomeworkSubmission) error
	GetByID(ctx context.Context, id string) (*model.HomeworkSubmission, error)
	ListByHomework(ctx context.Context, homeworkID string) ([]model.HomeworkSubmission, error)
	ListByStudent(ctx context.Context, studentID string, homeworkIDs []string) ([]model.HomeworkSubmission, error)
	UpdateReview(ctx context.Context, id string, accepted bool, feedback *string, reviewerID string, reviewedAt time.Time) error
}

// ── Homework ──

type homeworkRepo struct {
	db *gorm.DB
}

// NewHomeworkRepo creates a HomeworkRepository
func NewHomeworkRepo(db *gorm.DB) HomeworkRepository {
	return &homeworkRepo{db: db}
}

func (r *homeworkRepo) Create(ctx context.Context, hw *model.Homework) error {
	return r.db.WithContext(ctx).Create(hw).Error
}

func (r *homeworkRepo) GetByID(ctx context.Context, id string) (*model.Homework, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var hw model.Homework
	err := r.db.WithContext(ctx).
		Where("homework_id = ?", id).
		First(&hw).Error
	if err != nil {
		return nil, err
	}
	return &hw, nil
}

func (r *homeworkRepo) List(ctx context.Context, filter HomeworkFilter) ([]model.Homework, error) {
	var list []model.Homework
	db := r.db.WithContext(ctx)

	if filter.GradeID != "" {
		db = db.Where("grade_id = ?", filter.GradeID)
	}
	if filter.TrackID != "" {
		db = db.Where("track_id = ?", filter.TrackID)
	}
	if filter.GroupDayID != "" {
		db = db.Where("group_day_id = ?", filter.GroupDayID)
	}

	err := db.Order("due_date DESC").Find(&list).Error
	return list, err
}

func (r *homeworkRepo) ListForStudent(ctx context.Context, student *model.Student) ([]model.Homework, error) {
	var list []model.Homework
	db := r.db.WithContext(ctx).
		Where("grade_id = ?", student.GradeID).
		Where("group_day_id IS NULL OR group_day_id = ?", student.GroupDayID)

	if student.TrackID != nil {
		db = db.Where("track_id IS NULL OR track_id = ?", *student.TrackID)
	} else {
		db = db.Where("track_id IS NULL")
	}

	err := db.Order("due_date DESC").Find(&list).Error
	return list, err
}

// Delete removes the assignment; submissions go with it via ON DELETE CASCADE.
func (r *homeworkRepo) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("homework_id = ?", id).
		Delete(&model.Homework{})
	return result.RowsAffected, result.Error
}

// ── Submission ──

type submissionRepo struct {
	db *gorm.DB
}

// NewSubmissionRepo creates a SubmissionRepository
func NewSubmissionRepo(db *gorm.DB) SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) Create(ctx context.Context, sub *model.HomeworkSubmission) error {
	return r.db.WithContext(ctx).Omit("Student").Create(sub).Error
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*model.HomeworkSubmission, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var sub model.HomeworkSubmission
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", id).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepo) ListByHomework(ctx context.Context, homeworkID string) ([]model.HomeworkSubmission, error) {
	var subs []model.HomeworkSubmission
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("homework_id = ?", homeworkID).
		Order("submitted_at DESC").
		Find(&subs).Error
	return subs, err
}

func (r *submissionRepo) ListByStudent(ctx context.Context, studentID string, homeworkIDs []string) ([]model.HomeworkSubmission, error) {
	var subs []model.HomeworkSubmission
	db := r.db.WithContext(ctx).Where("student_id = ?", studentID)
	if homeworkIDs != nil {
		if len(homeworkIDs) == 0 {
			return nil, nil
		}
		db = db.Where("homework_id IN ?", homeworkIDs)
	}
	err := db.Order("submitted_at DESC").Find(&subs).Error
	return subs, err
}

func (r *submissionRepo) UpdateReview(ctx context.Context, id string, accepted bool, feedback *string, reviewerID string, reviewedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.HomeworkSubmission{}).
		Where("submission_id = ?", id).
		Updates(map[string]interface{}{
			"is_accepted": accepted,
			"feedback":    feedback,
			"reviewed_by": reviewerID,
			"reviewed_at": reviewedAt,
		}).Error
}
