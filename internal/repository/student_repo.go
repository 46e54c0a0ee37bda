package repository

import (
	"context"

	"gorm.io/gorm"

	"tutor-center/backend/internal/model"
)

// StudentRepository roster data access
type StudentRepository interface {
	// CreateWithAccount inserts the login account and the roster row in one transaction.
	CreateWithAccount(ctx context.Context, user *model.User, student *model.Student) error
	GetByID(ctx context.Context, id string) (*model.Student, error)
	ListActive(ctx context.Context, filter model.StudentFilter) ([]model.Student, error)
	Update(ctx context.Context, student *model.Student) error
	// Deactivate retires the student and its account; fact rows are untouched.
	Deactivate(ctx context.Context, id string, updatedBy string) error
}

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo creates a StudentRepository
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) CreateWithAccount(ctx context.Context, user *model.User, student *model.Student) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		student.StudentID = user.UserID
		return tx.Omit("Grade", "Track", "GroupDay").Create(student).Error
	})
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var student model.Student
	err := r.db.WithContext(ctx).
		Preload("Grade").
		Preload("Track").
		Preload("GroupDay").
		Where("student_id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) ListActive(ctx context.Context, filter model.StudentFilter) ([]model.Student, error) {
	var students []model.Student
	db := r.db.WithContext(ctx).Where("is_active = ?", true)

	if filter.GradeID != "" {
		db = db.Where("grade_id = ?", filter.GradeID)
	}
	if filter.TrackID != "" {
		db = db.Where("track_id = ?", filter.TrackID)
	}
	if filter.GroupDayID != "" {
		db = db.Where("group_day_id = ?", filter.GroupDayID)
	}

	err := db.Preload("Grade").
		Preload("Track").
		Preload("GroupDay").
		Order("full_name ASC").
		Find(&students).Error
	return students, err
}

func (r *studentRepo) Update(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("student_id = ?", student.StudentID).
		Updates(map[string]interface{}{
			"full_name":    student.FullName,
			"phone":        student.Phone,
			"parent_phone": student.ParentPhone,
			"grade_id":     student.GradeID,
			"track_id":     student.TrackID,
			"group_day_id": student.GroupDayID,
			"updated_by":   student.UpdatedBy,
			"updated_at":   gorm.Expr("NOW()"),
		}).Error
}

func (r *studentRepo) Deactivate(ctx context.Context, id string, updatedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		changes := map[string]interface{}{
			"is_active":  false,
			"updated_by": updatedBy,
			"updated_at": gorm.Expr("NOW()"),
		}
		if err := tx.Model(&model.Student{}).Where("student_id = ?", id).Updates(changes).Error; err != nil {
			return err
		}
		return tx.Model(&model.User{}).Where("user_id = ?", id).Updates(changes).Error
	})
}
