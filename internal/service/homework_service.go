package service

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"tutor-center/backend/internal/dto"
	"tutor-center/backend/internal/model"
	"tutor-center/backend/internal/repository"
)

// HomeworkService assignments, submissions and derived homework status
type HomeworkService interface {
	CreateAssignment(ctx context.Context, actor dto.Actor, req *dto.CreateHomeworkRequest) (*dto.HomeworkResponse, error)
	ListAssignments(ctx context.Context, actor dto.Actor, req *dto.HomeworkListRequest) ([]dto.HomeworkResponse, error)
	// AssignmentDetails the assignment with its submissions, newest first.
	AssignmentDetails(ctx context.Context, actor dto.Actor, homeworkID string) (*dto.HomeworkDetailResponse, error)
	DeleteAssignment(ctx context.Context, actor dto.Actor, homeworkID string) error
	// Submit appends a submission; the scope check runs before any write.
	Submit(ctx context.Context, actor dto.Actor, homeworkID string, req *dto.SubmitHomeworkRequest) (*dto.SubmissionResponse, error)
	// StudentHomework assignments addressed to the student, by due date ascending.
	StudentHomework(ctx context.Context, actor dto.Actor, studentID string) ([]dto.StudentHomeworkItem, error)
	ReviewSubmission(ctx context.Context, actor dto.Actor, submissionID string, req *dto.ReviewSubmissionRequest) (*dto.SubmissionResponse, error)
}

type homeworkService struct {
	repo   *repository.Repository
	clock  Clock
	logger *zap.Logger
}

// NewHomeworkService creates a HomeworkService
func NewHomeworkService(repo *repository.Repository, clock Clock, logger *zap.Logger) HomeworkService {
	return &homeworkService{repo: repo, clock: clock, logger: logger}
}

// ────────────────────── Assignments ──────────────────────

func (s *homeworkService) CreateAssignment(ctx context.Context, actor dto.Actor, req *dto.CreateHomeworkRequest) (*dto.HomeworkResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	if err := s.checkScope(ctx, req.GradeID, req.TrackID, req.GroupDayID); err != nil {
		return nil, err
	}

	hw := &model.Homework{
		GradeID:       req.GradeID,
		TrackID:       req.TrackID,
		GroupDayID:    req.GroupDayID,
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		DueDate:       req.DueDate,
		AttachmentURL: req.AttachmentURL,
	}
	hw.Stamp(actor.ID)

	if err := s.repo.Homework.Create(ctx, hw); err != nil {
		return nil, storeError(s.logger, "create homework", err, zap.String("grade_id", req.GradeID))
	}

	resp := toHomeworkResponse(hw)
	return &resp, nil
}

// checkScope track belongs to grade; group belongs to grade and, when both are
// set, to the track.
func (s *homeworkService) checkScope(ctx context.Context, gradeID string, trackID, groupDayID *string) error {
	if _, err := lookup(ctx, s.logger, "get grade", ErrGradeNotFound, func(ctx context.Context) (*model.Grade, error) {
		return s.repo.Grade.GetByID(ctx, gradeID)
	}, zap.String("grade_id", gradeID)); err != nil {
		return err
	}

	if trackID != nil {
		track, err := lookup(ctx, s.logger, "get track", ErrTrackNotFound, func(ctx context.Context) (*model.Track, error) {
			return s.repo.Track.GetByID(ctx, *trackID)
		}, zap.String("track_id", *trackID))
		if err != nil {
			return err
		}
		if track.GradeID != gradeID {
			return ErrTrackGradeMismatch
		}
	}

	if groupDayID != nil {
		group, err := lookup(ctx, s.logger, "get group day", ErrGroupDayNotFound, func(ctx context.Context) (*model.GroupDay, error) {
			return s.repo.GroupDay.GetByID(ctx, *groupDayID)
		}, zap.String("group_day_id", *groupDayID))
		if err != nil {
			return err
		}
		if group.GradeID != gradeID {
			return ErrGroupGradeMismatch
		}
		if trackID != nil && group.TrackID != nil && *group.TrackID != *trackID {
			return ErrGroupTrackMismatch
		}
	}
	return nil
}

func (s *homeworkService) ListAssignments(ctx context.Context, actor dto.Actor, req *dto.HomeworkListRequest) ([]dto.HomeworkResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	filter := repository.HomeworkFilter{GradeID: req.GradeID, TrackID: req.TrackID, GroupDayID: req.GroupDayID}
	list, err := readList(ctx, s.logger, "list homework", func(ctx context.Context) ([]model.Homework, error) {
		return s.repo.Homework.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}

	result := make([]dto.HomeworkResponse, 0, len(list))
	for i := range list {
		result = append(result, toHomeworkResponse(&list[i]))
	}
	return result, nil
}

func (s *homeworkService) AssignmentDetails(ctx context.Context, actor dto.Actor, homeworkID string) (*dto.HomeworkDetailResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	hw, err := s.getHomework(ctx, homeworkID)
	if err != nil {
		return nil, err
	}

	subs, err := readList(ctx, s.logger, "list submissions", func(ctx context.Context) ([]model.HomeworkSubmission, error) {
		return s.repo.Submission.ListByHomework(ctx, homeworkID)
	}, zap.String("homework_id", homeworkID))
	if err != nil {
		return nil, err
	}
	sortNewestFirst(subs)

	resp := &dto.HomeworkDetailResponse{
		Homework:    toHomeworkResponse(hw),
		Submissions: make([]dto.SubmissionResponse, 0, len(subs)),
	}
	for i := range subs {
		resp.Submissions = append(resp.Submissions, toSubmissionResponse(&subs[i]))
	}
	return resp, nil
}

// DeleteAssignment removes the assignment together with its submissions.
func (s *homeworkService) DeleteAssignment(ctx context.Context, actor dto.Actor, homeworkID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	n, err := s.repo.Homework.Delete(ctx, homeworkID)
	if err != nil {
		return storeError(s.logger, "delete homework", err, zap.String("homework_id", homeworkID))
	}
	if n == 0 {
		return ErrHomeworkNotFound
	}

	s.logger.Info("homework deleted", zap.String("homework_id", homeworkID), zap.String("by", actor.ID))
	return nil
}

// ────────────────────── Submissions ──────────────────────

func (s *homeworkService) Submit(ctx context.Context, actor dto.Actor, homeworkID string, req *dto.SubmitHomeworkRequest) (*dto.SubmissionResponse, error) {
	studentID := req.StudentID
	if studentID == "" {
		studentID = actor.ID
	}
	if !actor.CanAccessStudent(studentID) {
		return nil, ErrHomeworkOutOfScope
	}

	hw, err := s.getHomework(ctx, homeworkID)
	if err != nil {
		return nil, err
	}

	student, err := findStudent(ctx, s.repo, s.logger, studentID)
	if err != nil {
		return nil, err
	}
	if !student.IsActive || !hw.Covers(student) {
		return nil, ErrHomeworkOutOfScope
	}

	sub := &model.HomeworkSubmission{
		HomeworkID:    hw.HomeworkID,
		StudentID:     student.StudentID,
		AnswerText:    req.AnswerText,
		AttachmentURL: req.AttachmentURL,
		Notes:         req.Notes,
		SubmittedAt:   s.clock(),
	}
	if err := s.repo.Submission.Create(ctx, sub); err != nil {
		return nil, storeError(s.logger, "create submission", err,
			zap.String("homework_id", homeworkID), zap.String("student_id", studentID))
	}

	sub.Student = student
	resp := toSubmissionResponse(sub)
	return &resp, nil
}

func (s *homeworkService) StudentHomework(ctx context.Context, actor dto.Actor, studentID string) ([]dto.StudentHomeworkItem, error) {
	if err := requireStudentAccess(actor, studentID); err != nil {
		return nil, err
	}

	student, err := findStudent(ctx, s.repo, s.logger, studentID)
	if err != nil {
		return nil, err
	}

	list, err := readList(ctx, s.logger, "list student homework", func(ctx context.Context) ([]model.Homework, error) {
		return s.repo.Homework.ListForStudent(ctx, student)
	}, zap.String("student_id", studentID))
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return []dto.StudentHomeworkItem{}, nil
	}

	ids := make([]string, len(list))
	for i := range list {
		ids[i] = list[i].HomeworkID
	}
	subs, err := readList(ctx, s.logger, "list student submissions", func(ctx context.Context) ([]model.HomeworkSubmission, error) {
		return s.repo.Submission.ListByStudent(ctx, studentID, ids)
	}, zap.String("student_id", studentID))
	if err != nil {
		return nil, err
	}
	subsByHomework := make(map[string][]model.HomeworkSubmission)
	for _, sub := range subs {
		subsByHomework[sub.HomeworkID] = append(subsByHomework[sub.HomeworkID], sub)
	}

	sort.SliceStable(list, func(i, j int) bool { return list[i].DueDate.Before(list[j].DueDate) })

	now := s.clock()
	result := make([]dto.StudentHomeworkItem, 0, len(list))
	for i := range list {
		hw := &list[i]
		if !hw.Covers(student) {
			continue
		}
		hwSubs := subsByHomework[hw.HomeworkID]
		item := dto.StudentHomeworkItem{
			Homework:        toHomeworkResponse(hw),
			Status:          string(model.DeriveHomeworkStatus(hw, hwSubs, now)),
			SubmissionCount: len(hwSubs),
		}
		if latest := model.LatestSubmission(hwSubs); latest != nil {
			sr := toSubmissionResponse(latest)
			item.LatestSubmission = &sr
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *homeworkService) ReviewSubmission(ctx context.Context, actor dto.Actor, submissionID string, req *dto.ReviewSubmissionRequest) (*dto.SubmissionResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	if _, err := s.getSubmission(ctx, submissionID); err != nil {
		return nil, err
	}

	if err := s.repo.Submission.UpdateReview(ctx, submissionID, *req.Accepted, req.Feedback, actor.ID, s.clock()); err != nil {
		return nil, storeError(s.logger, "review submission", err, zap.String("submission_id", submissionID))
	}

	sub, err := s.getSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	resp := toSubmissionResponse(sub)
	return &resp, nil
}

// ────────────────────── helpers ──────────────────────

func (s *homeworkService) getHomework(ctx context.Context, id string) (*model.Homework, error) {
	return lookup(ctx, s.logger, "get homework", ErrHomeworkNotFound, func(ctx context.Context) (*model.Homework, error) {
		return s.repo.Homework.GetByID(ctx, id)
	}, zap.String("homework_id", id))
}

func (s *homeworkService) getSubmission(ctx context.Context, id string) (*model.HomeworkSubmission, error) {
	return lookup(ctx, s.logger, "get submission", ErrSubmissionNotFound, func(ctx context.Context) (*model.HomeworkSubmission, error) {
		return s.repo.Submission.GetByID(ctx, id)
	}, zap.String("submission_id", id))
}

func sortNewestFirst(subs []model.HomeworkSubmission) {
	sort.SliceStable(subs, func(i, j int) bool { return subs[i].SubmittedAt.After(subs[j].SubmittedAt) })
}

// ────────────────────── mapping ──────────────────────

func toHomeworkResponse(h *model.Homework) dto.HomeworkResponse {
	return dto.HomeworkResponse{
		ID:            h.HomeworkID,
		GradeID:       h.GradeID,
		TrackID:       h.TrackID,
		GroupDayID:    h.GroupDayID,
		Title:         h.Title,
		Description:   h.Description,
		DueDate:       h.DueDate.Format(timeLayout),
		AttachmentURL: h.AttachmentURL,
		CreatedAt:     h.CreatedAt.Format(timeLayout),
	}
}

func toSubmissionResponse(sub *model.HomeworkSubmission) dto.SubmissionResponse {
	resp := dto.SubmissionResponse{
		ID:            sub.SubmissionID,
		HomeworkID:    sub.HomeworkID,
		StudentID:     sub.StudentID,
		AnswerText:    sub.AnswerText,
		AttachmentURL: sub.AttachmentURL,
		Notes:         sub.Notes,
		IsAccepted:    sub.IsAccepted,
		Feedback:      sub.Feedback,
		SubmittedAt:   sub.SubmittedAt.Format(timeLayout),
		ReviewedAt:    formatOptionalTime(sub.ReviewedAt),
	}
	if sub.Student != nil {
		resp.StudentName = sub.Student.FullName
	}
	return resp
}
