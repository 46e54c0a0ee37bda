package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tutor-center/backend/internal/model"
	"tutor-center/backend/internal/repository"
)

// ── id generation ──

var (
	mockSeqMu sync.Mutex
	mockSeq   int
)

func nextID(prefix string) string {
	mockSeqMu.Lock()
	defer mockSeqMu.Unlock()
	mockSeq++
	return fmt.Sprintf("%s-%d", prefix, mockSeq)
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = nextID("user")
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock GradeRepository / TrackRepository ──

type mockGradeRepo struct {
	grades map[string]*model.Grade
	tracks *mockTrackRepo
}

func newMockGradeRepo(tracks *mockTrackRepo) *mockGradeRepo {
	return &mockGradeRepo{grades: make(map[string]*model.Grade), tracks: tracks}
}

func (m *mockGradeRepo) Create(_ context.Context, grade *model.Grade) error {
	if grade.GradeID == "" {
		grade.GradeID = nextID("grade")
	}
	m.grades[grade.GradeID] = grade
	return nil
}

func (m *mockGradeRepo) GetByID(ctx context.Context, id string) (*model.Grade, error) {
	g, ok := m.grades[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *g
	copied.Tracks, _ = m.tracks.ListByGrade(ctx, id)
	return &copied, nil
}

func (m *mockGradeRepo) List(ctx context.Context) ([]model.Grade, error) {
	var result []model.Grade
	for id := range m.grades {
		g, _ := m.GetByID(ctx, id)
		result = append(result, *g)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

type mockTrackRepo struct {
	tracks map[string]*model.Track
}

func newMockTrackRepo() *mockTrackRepo {
	return &mockTrackRepo{tracks: make(map[string]*model.Track)}
}

func (m *mockTrackRepo) Create(_ context.Context, track *model.Track) error {
	if track.TrackID == "" {
		track.TrackID = nextID("track")
	}
	m.tracks[track.TrackID] = track
	return nil
}

func (m *mockTrackRepo) GetByID(_ context.Context, id string) (*model.Track, error) {
	if t, ok := m.tracks[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTrackRepo) ListByGrade(_ context.Context, gradeID string) ([]model.Track, error) {
	var result []model.Track
	for _, t := range m.tracks {
		if t.GradeID == gradeID {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock GroupDayRepository ──

type mockGroupDayRepo struct {
	groups map[string]*model.GroupDay
	grades *mockGradeRepo
	tracks *mockTrackRepo
}

func newMockGroupDayRepo(grades *mockGradeRepo, tracks *mockTrackRepo) *mockGroupDayRepo {
	return &mockGroupDayRepo{groups: make(map[string]*model.GroupDay), grades: grades, tracks: tracks}
}

func (m *mockGroupDayRepo) Create(_ context.Context, group *model.GroupDay) error {
	if group.GroupDayID == "" {
		group.GroupDayID = nextID("group")
	}
	m.groups[group.GroupDayID] = group
	return nil
}

func (m *mockGroupDayRepo) GetByID(_ context.Context, id string) (*model.GroupDay, error) {
	g, ok := m.groups[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *g
	copied.Grade = m.grades.grades[g.GradeID]
	if g.TrackID != nil {
		copied.Track = m.tracks.tracks[*g.TrackID]
	}
	return &copied, nil
}

func (m *mockGroupDayRepo) List(ctx context.Context, gradeID, trackID string) ([]model.GroupDay, error) {
	var result []model.GroupDay
	for id, g := range m.groups {
		if gradeID != "" && g.GradeID != gradeID {
			continue
		}
		if trackID != "" && (g.TrackID == nil || *g.TrackID != trackID) {
			continue
		}
		copied, _ := m.GetByID(ctx, id)
		result = append(result, *copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].GroupDayID < result[j].GroupDayID })
	return result, nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
	users    *mockUserRepo
	groups   *mockGroupDayRepo

	// listErrs are returned, in order, by the next ListActive calls
	listErrs []error
	listCall int
}

func newMockStudentRepo(users *mockUserRepo, groups *mockGroupDayRepo) *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student), users: users, groups: groups}
}

func (m *mockStudentRepo) CreateWithAccount(ctx context.Context, user *model.User, student *model.Student) error {
	if err := m.users.Create(ctx, user); err != nil {
		return err
	}
	student.StudentID = user.UserID
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	st, ok := m.students[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *st
	if g, err := m.groups.GetByID(ctx, st.GroupDayID); err == nil {
		copied.GroupDay = g
	}
	copied.Grade = m.groups.grades.grades[st.GradeID]
	if st.TrackID != nil {
		copied.Track = m.groups.tracks.tracks[*st.TrackID]
	}
	return &copied, nil
}

func (m *mockStudentRepo) ListActive(_ context.Context, filter model.StudentFilter) ([]model.Student, error) {
	if m.listCall < len(m.listErrs) {
		err := m.listErrs[m.listCall]
		m.listCall++
		if err != nil {
			return nil, err
		}
	}
	var result []model.Student
	for _, st := range m.students {
		if !st.IsActive {
			continue
		}
		if filter.GradeID != "" && st.GradeID != filter.GradeID {
			continue
		}
		if filter.TrackID != "" && (st.TrackID == nil || *st.TrackID != filter.TrackID) {
			continue
		}
		if filter.GroupDayID != "" && st.GroupDayID != filter.GroupDayID {
			continue
		}
		result = append(result, *st)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FullName < result[j].FullName })
	return result, nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	existing, ok := m.students[student.StudentID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	existing.FullName = student.FullName
	existing.Phone = student.Phone
	existing.ParentPhone = student.ParentPhone
	existing.GradeID = student.GradeID
	existing.TrackID = student.TrackID
	existing.GroupDayID = student.GroupDayID
	return nil
}

func (m *mockStudentRepo) Deactivate(_ context.Context, id string, _ string) error {
	if st, ok := m.students[id]; ok {
		st.IsActive = false
	}
	if u, ok := m.users.users[id]; ok {
		u.IsActive = false
	}
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records map[string]*model.AttendanceRecord // key: student|date
	upserts int

	// upsertErr, when set, fails every Upsert
	upsertErr error
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{records: make(map[string]*model.AttendanceRecord)}
}

func attendanceKey(studentID string, date time.Time) string {
	return studentID + "|" + model.CalendarDate(date).Format(model.DateLayout)
}

func (m *mockAttendanceRepo) Get(_ context.Context, studentID string, date time.Time) (*model.AttendanceRecord, error) {
	if r, ok := m.records[attendanceKey(studentID, date)]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) Upsert(_ context.Context, record *model.AttendanceRecord) (*model.AttendanceRecord, error) {
	if m.upsertErr != nil {
		return nil, m.upsertErr
	}
	m.upserts++
	key := attendanceKey(record.StudentID, time.Time(record.Date))
	if existing, ok := m.records[key]; ok {
		existing.Status = record.Status
		existing.Notes = record.Notes
		existing.UpdatedBy = record.UpdatedBy
		copied := *existing
		return &copied, nil
	}
	stored := *record
	stored.AttendanceID = nextID("att")
	m.records[key] = &stored
	copied := stored
	return &copied, nil
}

func (m *mockAttendanceRepo) inRange(studentID string, from, to time.Time) []model.AttendanceRecord {
	var result []model.AttendanceRecord
	for _, r := range m.records {
		d := time.Time(r.Date)
		if r.StudentID == studentID && !d.Before(from) && !d.After(to) {
			result = append(result, *r)
		}
	}
	return result
}

func (m *mockAttendanceRepo) ListByStudent(_ context.Context, studentID string, from, to time.Time) ([]model.AttendanceRecord, error) {
	result := m.inRange(studentID, from, to)
	sort.Slice(result, func(i, j int) bool { return time.Time(result[i].Date).After(time.Time(result[j].Date)) })
	return result, nil
}

func (m *mockAttendanceRepo) ListByStudents(_ context.Context, studentIDs []string, from, to time.Time) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	for _, id := range studentIDs {
		result = append(result, m.inRange(id, from, to)...)
	}
	return result, nil
}

func (m *mockAttendanceRepo) put(studentID string, date time.Time, status model.AttendanceStatus) {
	m.records[attendanceKey(studentID, date)] = &model.AttendanceRecord{
		AttendanceID: nextID("att"),
		StudentID:    studentID,
		Date:         datatypes.Date(model.CalendarDate(date)),
		Status:       status,
	}
}

// ── Mock PaymentRepository ──

type mockPaymentRepo struct {
	payments []*model.Payment

	// createErr, when set, fails every Create and UpsertMonthly
	createErr error
	// monthlyQueries counts ListMonthlyForStudents calls
	monthlyQueries int
}

func newMockPaymentRepo() *mockPaymentRepo {
	return &mockPaymentRepo{}
}

func (m *mockPaymentRepo) GetByID(_ context.Context, id string) (*model.Payment, error) {
	for _, p := range m.payments {
		if p.PaymentID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPaymentRepo) FindMonthly(_ context.Context, studentID string, year, month int) (*model.Payment, error) {
	for _, p := range m.payments {
		if p.StudentID == studentID && p.PaymentType == model.PaymentMonthly && *p.Year == year && *p.Month == month {
			copied := *p
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPaymentRepo) UpsertMonthly(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	for _, p := range m.payments {
		if p.StudentID == payment.StudentID && p.PaymentType == model.PaymentMonthly && *p.Year == *payment.Year && *p.Month == *payment.Month {
			p.Amount = payment.Amount
			p.PaymentDate = payment.PaymentDate
			p.ReceiptNumber = payment.ReceiptNumber
			p.Notes = payment.Notes
			p.UpdatedBy = payment.UpdatedBy
			return m.FindMonthly(ctx, payment.StudentID, *payment.Year, *payment.Month)
		}
	}
	if err := m.Create(ctx, payment); err != nil {
		return nil, err
	}
	return m.FindMonthly(ctx, payment.StudentID, *payment.Year, *payment.Month)
}

func (m *mockPaymentRepo) Create(_ context.Context, payment *model.Payment) error {
	if m.createErr != nil {
		return m.createErr
	}
	if payment.PaymentID == "" {
		payment.PaymentID = nextID("pay")
	}
	stored := *payment
	m.payments = append(m.payments, &stored)
	return nil
}

func (m *mockPaymentRepo) Delete(_ context.Context, id string) (int64, error) {
	for i, p := range m.payments {
		if p.PaymentID == id {
			m.payments = append(m.payments[:i], m.payments[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockPaymentRepo) ListByStudent(_ context.Context, studentID string) ([]model.Payment, error) {
	var result []model.Payment
	for _, p := range m.payments {
		if p.StudentID == studentID {
			result = append(result, *p)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].PaidOn().After(result[j].PaidOn()) })
	return result, nil
}

func (m *mockPaymentRepo) ListMonthlyForStudents(_ context.Context, studentIDs []string, year, month int) ([]model.Payment, error) {
	m.monthlyQueries++
	wanted := make(map[string]bool, len(studentIDs))
	for _, id := range studentIDs {
		wanted[id] = true
	}
	var result []model.Payment
	for _, p := range m.payments {
		if wanted[p.StudentID] && p.PaymentType == model.PaymentMonthly && *p.Year == year && *p.Month == month {
			result = append(result, *p)
		}
	}
	return result, nil
}

// ── Mock PaymentSettingsRepository ──

type mockPaymentSettingsRepo struct {
	settings     []*model.PaymentSettings
	gradeQueries int
}

func newMockPaymentSettingsRepo() *mockPaymentSettingsRepo {
	return &mockPaymentSettingsRepo{}
}

func (m *mockPaymentSettingsRepo) ListByGrade(_ context.Context, gradeID string) ([]model.PaymentSettings, error) {
	var result []model.PaymentSettings
	for _, s := range m.settings {
		if s.GradeID == gradeID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockPaymentSettingsRepo) ListByGrades(ctx context.Context, gradeIDs []string) ([]model.PaymentSettings, error) {
	m.gradeQueries++
	var result []model.PaymentSettings
	for _, id := range gradeIDs {
		rows, _ := m.ListByGrade(ctx, id)
		result = append(result, rows...)
	}
	return result, nil
}

func (m *mockPaymentSettingsRepo) Upsert(_ context.Context, settings *model.PaymentSettings) error {
	for _, s := range m.settings {
		if s.GradeID == settings.GradeID && model.SameOptionalID(s.TrackID, settings.TrackID) {
			s.MonthlyAmount = settings.MonthlyAmount
			s.BookAmount = settings.BookAmount
			settings.SettingID = s.SettingID
			return nil
		}
	}
	settings.SettingID = nextID("setting")
	stored := *settings
	m.settings = append(m.settings, &stored)
	return nil
}

// ── Mock HomeworkRepository / SubmissionRepository ──

type mockHomeworkRepo struct {
	homework    map[string]*model.Homework
	submissions *mockSubmissionRepo
}

func newMockHomeworkRepo(submissions *mockSubmissionRepo) *mockHomeworkRepo {
	return &mockHomeworkRepo{homework: make(map[string]*model.Homework), submissions: submissions}
}

func (m *mockHomeworkRepo) Create(_ context.Context, hw *model.Homework) error {
	if hw.HomeworkID == "" {
		hw.HomeworkID = nextID("hw")
	}
	stored := *hw
	m.homework[hw.HomeworkID] = &stored
	return nil
}

func (m *mockHomeworkRepo) GetByID(_ context.Context, id string) (*model.Homework, error) {
	if hw, ok := m.homework[id]; ok {
		copied := *hw
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHomeworkRepo) List(_ context.Context, filter repository.HomeworkFilter) ([]model.Homework, error) {
	var result []model.Homework
	for _, hw := range m.homework {
		if filter.GradeID != "" && hw.GradeID != filter.GradeID {
			continue
		}
		if filter.TrackID != "" && (hw.TrackID == nil || *hw.TrackID != filter.TrackID) {
			continue
		}
		if filter.GroupDayID != "" && (hw.GroupDayID == nil || *hw.GroupDayID != filter.GroupDayID) {
			continue
		}
		result = append(result, *hw)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DueDate.After(result[j].DueDate) })
	return result, nil
}

func (m *mockHomeworkRepo) ListForStudent(_ context.Context, student *model.Student) ([]model.Homework, error) {
	var result []model.Homework
	for _, hw := range m.homework {
		if hw.Covers(student) {
			result = append(result, *hw)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DueDate.After(result[j].DueDate) })
	return result, nil
}

func (m *mockHomeworkRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := m.homework[id]; !ok {
		return 0, nil
	}
	delete(m.homework, id)
	for subID, sub := range m.submissions.subs {
		if sub.HomeworkID == id {
			delete(m.submissions.subs, subID)
		}
	}
	return 1, nil
}

type mockSubmissionRepo struct {
	subs     map[string]*model.HomeworkSubmission
	students *mockStudentRepo
}

func newMockSubmissionRepo() *mockSubmissionRepo {
	return &mockSubmissionRepo{subs: make(map[string]*model.HomeworkSubmission)}
}

func (m *mockSubmissionRepo) Create(_ context.Context, sub *model.HomeworkSubmission) error {
	if sub.SubmissionID == "" {
		sub.SubmissionID = nextID("sub")
	}
	stored := *sub
	stored.Student = nil
	m.subs[sub.SubmissionID] = &stored
	return nil
}

func (m *mockSubmissionRepo) GetByID(_ context.Context, id string) (*model.HomeworkSubmission, error) {
	if sub, ok := m.subs[id]; ok {
		copied := *sub
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubmissionRepo) ListByHomework(_ context.Context, homeworkID string) ([]model.HomeworkSubmission, error) {
	var result []model.HomeworkSubmission
	for _, sub := range m.subs {
		if sub.HomeworkID == homeworkID {
			copied := *sub
			if m.students != nil {
				copied.Student = m.students.students[sub.StudentID]
			}
			result = append(result, copied)
		}
	}
	// deliberately unordered; the service sorts
	return result, nil
}

func (m *mockSubmissionRepo) ListByStudent(_ context.Context, studentID string, homeworkIDs []string) ([]model.HomeworkSubmission, error) {
	wanted := make(map[string]bool, len(homeworkIDs))
	for _, id := range homeworkIDs {
		wanted[id] = true
	}
	var result []model.HomeworkSubmission
	for _, sub := range m.subs {
		if sub.StudentID == studentID && (homeworkIDs == nil || wanted[sub.HomeworkID]) {
			result = append(result, *sub)
		}
	}
	return result, nil
}

func (m *mockSubmissionRepo) UpdateReview(_ context.Context, id string, accepted bool, feedback *string, reviewerID string, reviewedAt time.Time) error {
	sub, ok := m.subs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	sub.IsAccepted = &accepted
	sub.Feedback = feedback
	sub.ReviewedBy = &reviewerID
	sub.ReviewedAt = &reviewedAt
	return nil
}

// ── assembled fixture ──

type mockRepos struct {
	users       *mockUserRepo
	grades      *mockGradeRepo
	tracks      *mockTrackRepo
	groups      *mockGroupDayRepo
	students    *mockStudentRepo
	attendance  *mockAttendanceRepo
	payments    *mockPaymentRepo
	settings    *mockPaymentSettingsRepo
	homework    *mockHomeworkRepo
	submissions *mockSubmissionRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	m := &mockRepos{}
	m.users = newMockUserRepo()
	m.tracks = newMockTrackRepo()
	m.grades = newMockGradeRepo(m.tracks)
	m.groups = newMockGroupDayRepo(m.grades, m.tracks)
	m.students = newMockStudentRepo(m.users, m.groups)
	m.attendance = newMockAttendanceRepo()
	m.payments = newMockPaymentRepo()
	m.settings = newMockPaymentSettingsRepo()
	m.submissions = newMockSubmissionRepo()
	m.submissions.students = m.students
	m.homework = newMockHomeworkRepo(m.submissions)

	repo := &repository.Repository{
		User:            m.users,
		Grade:           m.grades,
		Track:           m.tracks,
		GroupDay:        m.groups,
		Student:         m.students,
		Attendance:      m.attendance,
		Payment:         m.payments,
		PaymentSettings: m.settings,
		Homework:        m.homework,
		Submission:      m.submissions,
	}
	return repo, m
}
