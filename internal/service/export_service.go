package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"tutor-center/backend/internal/dto"
	"tutor-center/backend/internal/model"
	"tutor-center/backend/internal/repository"
)

// ExportService spreadsheet exports of the monthly group views.
//
// Exports reuse the attendance and payment views, so they show exactly what
// the JSON endpoints show. The workbook is returned as a buffer and the
// handler sets the download headers.
type ExportService interface {
	// ExportGroupAttendance students as rows, class dates as columns, P/A/L cells and a rate column.
	ExportGroupAttendance(ctx context.Context, actor dto.Actor, groupDayID string, year int, month time.Month) (*bytes.Buffer, string, error)
	// ExportGroupPayments one row per active student with the month's payment, if any.
	ExportGroupPayments(ctx context.Context, actor dto.Actor, groupDayID string, year int, month time.Month) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo       *repository.Repository
	attendance AttendanceService
	payment    PaymentService
	logger     *zap.Logger
}

// NewExportService creates an ExportService
func NewExportService(repo *repository.Repository, attendance AttendanceService, payment PaymentService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, attendance: attendance, payment: payment, logger: logger}
}

var statusLetters = map[string]string{
	string(model.AttendancePresent):  "P",
	string(model.AttendanceAbsent):   "A",
	string(model.AttendanceLate):     "L",
	string(model.AttendanceUnmarked): "",
}

// ═══════════════════════════════════════════════════════════
// ExportGroupAttendance
// ═══════════════════════════════════════════════════════════
//
// Layout:
//   - row 1: title, merged across the table
//   - row 2: "Student" | one column per class date (DD/MM) | "Rate %"
//   - row 3+: one row per active student

func (s *exportService) ExportGroupAttendance(ctx context.Context, actor dto.Actor, groupDayID string, year int, month time.Month) (*bytes.Buffer, string, error) {
	group, err := s.group(ctx, groupDayID)
	if err != nil {
		return nil, "", err
	}

	view, err := s.attendance.GroupAttendanceForMonth(ctx, actor, groupDayID, year, month)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance"
	idx, _ := f.NewSheet(sheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	lastCol := colName(len(view.ClassDates) + 1)
	styles := newSheetStyles(f)

	// title
	f.SetCellValue(sheet, "A1", fmt.Sprintf("%s - attendance %04d-%02d", groupTitle(group), year, int(month)))
	f.MergeCell(sheet, "A1", cell(lastCol, 1))
	f.SetCellStyle(sheet, "A1", "A1", styles.header)

	// header
	f.SetColWidth(sheet, "A", "A", 28)
	f.SetCellValue(sheet, cell("A", 2), "Student")
	for i, key := range view.ClassDates {
		d, _ := model.ParseDate(key)
		col := colName(i + 1)
		f.SetCellValue(sheet, cell(col, 2), d.Format("02/01"))
		f.SetColWidth(sheet, col, col, 7)
	}
	f.SetCellValue(sheet, cell(lastCol, 2), "Rate %")
	f.SetCellStyle(sheet, cell("A", 2), cell(lastCol, 2), styles.header)

	// rows
	row := 3
	for _, r := range view.Students {
		f.SetCellValue(sheet, cell("A", row), r.Student.FullName)
		for i, key := range view.ClassDates {
			f.SetCellValue(sheet, cell(colName(i+1), row), statusLetters[r.Statuses[key]])
		}
		f.SetCellValue(sheet, cell(lastCol, row), r.Rate)
		f.SetCellStyle(sheet, cell("B", row), cell(lastCol, row), styles.centered)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write attendance workbook failed", zap.String("group_day_id", groupDayID), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, fmt.Sprintf("attendance_%s_%04d-%02d.xlsx", fileSafe(group), year, int(month)), nil
}

// ═══════════════════════════════════════════════════════════
// ExportGroupPayments
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportGroupPayments(ctx context.Context, actor dto.Actor, groupDayID string, year int, month time.Month) (*bytes.Buffer, string, error) {
	group, err := s.group(ctx, groupDayID)
	if err != nil {
		return nil, "", err
	}

	view, err := s.payment.MonthlyPaymentsForGroup(ctx, actor, groupDayID, year, month)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Payments"
	idx, _ := f.NewSheet(sheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	styles := newSheetStyles(f)
	headers := []string{"Student", "Paid", "Expected", "Amount", "Payment date", "Receipt"}
	lastCol := colName(len(headers) - 1)

	f.SetCellValue(sheet, "A1", fmt.Sprintf("%s - tuition %04d-%02d", groupTitle(group), year, int(month)))
	f.MergeCell(sheet, "A1", cell(lastCol, 1))
	f.SetCellStyle(sheet, "A1", "A1", styles.header)

	for i, h := range headers {
		f.SetCellValue(sheet, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheet, cell("A", 2), cell(lastCol, 2), styles.header)
	f.SetColWidth(sheet, "A", "A", 28)
	f.SetColWidth(sheet, "B", lastCol, 14)

	row := 3
	for _, r := range view.Students {
		f.SetCellValue(sheet, cell("A", row), r.Student.FullName)
		paid := "no"
		if r.HasPaid {
			paid = "yes"
		}
		f.SetCellValue(sheet, cell("B", row), paid)
		if r.ExpectedAmount != nil {
			f.SetCellValue(sheet, cell("C", row), *r.ExpectedAmount)
		}
		if p := r.Payment; p != nil {
			f.SetCellValue(sheet, cell("D", row), p.Amount)
			f.SetCellValue(sheet, cell("E", row), p.PaymentDate)
			if p.ReceiptNumber != nil {
				f.SetCellValue(sheet, cell("F", row), *p.ReceiptNumber)
			}
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write payments workbook failed", zap.String("group_day_id", groupDayID), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, fmt.Sprintf("payments_%s_%04d-%02d.xlsx", fileSafe(group), year, int(month)), nil
}

// group an export needs the group itself, so an unknown id is NotFound here.
func (s *exportService) group(ctx context.Context, id string) (*model.GroupDay, error) {
	return lookup(ctx, s.logger, "get group day", ErrGroupDayNotFound, func(ctx context.Context) (*model.GroupDay, error) {
		return s.repo.GroupDay.GetByID(ctx, id)
	}, zap.String("group_day_id", id))
}

// ── helpers ──

type sheetStyles struct {
	header   int
	centered int
}

func newSheetStyles(f *excelize.File) sheetStyles {
	header, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	centered, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	return sheetStyles{header: header, centered: centered}
}

// groupTitle e.g. "Grade 2 Science Sat/Tue 4:00 PM"
func groupTitle(g *model.GroupDay) string {
	title := g.Label()
	if g.Track != nil {
		title = g.Track.Name + " " + title
	}
	if g.Grade != nil {
		title = g.Grade.Name + " " + title
	}
	return title
}

func fileSafe(g *model.GroupDay) string {
	name := "group"
	if g.Grade != nil {
		name = g.Grade.Name
	}
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '-')
		}
	}
	return string(out)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
