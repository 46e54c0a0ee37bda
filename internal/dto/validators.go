package dto

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"tutor-center/backend/internal/model"
)

// custom validation tags
const (
	attendanceStatusTag = "attendance_status"
	weekdayTag          = "weekday"
	ymdTag              = "ymd"
)

// RegisterValidators installs the custom tags on gin's validator engine.
// Call once at startup before the router serves requests.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return registerOn(v)
}

func registerOn(v *validator.Validate) error {
	// report json names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag := fld.Tag.Get("json")
		if tag == "" {
			tag = fld.Tag.Get("form")
		}
		name := strings.SplitN(tag, ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation(attendanceStatusTag, attendanceStatusValidation); err != nil {
		return err
	}
	if err := v.RegisterValidation(weekdayTag, weekdayValidation); err != nil {
		return err
	}
	if err := v.RegisterValidation(ymdTag, ymdValidation); err != nil {
		return err
	}
	v.RegisterStructValidation(groupDayStructValidation, CreateGroupDayRequest{})
	return nil
}

// attendanceStatusValidation only storable statuses; "unmarked" is a read-side value.
func attendanceStatusValidation(fl validator.FieldLevel) bool {
	return model.AttendanceStatus(fl.Field().String()).Valid()
}

// weekdayValidation 0 (Sunday) through 6 (Saturday)
func weekdayValidation(fl validator.FieldLevel) bool {
	d := fl.Field().Int()
	return d >= 0 && d <= 6
}

func ymdValidation(fl validator.FieldLevel) bool {
	_, err := model.ParseDate(fl.Field().String())
	return err == nil
}

// groupDayStructValidation a group meets on two distinct weekdays
func groupDayStructValidation(sl validator.StructLevel) {
	req := sl.Current().Interface().(CreateGroupDayRequest)
	if req.FirstDay != nil && req.SecondDay != nil && *req.FirstDay == *req.SecondDay {
		sl.ReportError(req.SecondDay, "second_day", "SecondDay", "nefield", "first_day")
	}
}
