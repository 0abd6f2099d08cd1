package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"tutorhub/services/scheduling"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the scheduling tags to gin's validator:
// timeofday, civildate, scheduletype and weekday.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		// Report fields by their json names.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		rules := map[string]validator.Func{
			"timeofday": func(fl validator.FieldLevel) bool {
				_, e := scheduling.ParseTime(fl.Field().String())
				return e == nil
			},
			"civildate": func(fl validator.FieldLevel) bool {
				_, e := scheduling.ParseDate(fl.Field().String())
				return e == nil
			},
			"scheduletype": func(fl validator.FieldLevel) bool {
				_, ok := scheduling.ParseScheduleType(fl.Field().String())
				return ok
			},
			"weekday": func(fl validator.FieldLevel) bool {
				_, ok := scheduling.ParseWeekday(fl.Field().String())
				return ok
			},
		}
		for tag, fn := range rules {
			if err = v.RegisterValidation(tag, fn); err != nil {
				return
			}
		}
	})
	return err
}

var tagMessages = map[string]string{
	"required":     "is required",
	"civildate":    "must be a date in YYYY-MM-DD form",
	"timeofday":    "must be a time of day such as 14:30 or 2:30 PM",
	"scheduletype": "must be one-time or weekly-recurring",
	"weekday":      "must be a weekday name",
	"min":          "is too small",
	"max":          "is too large",
}

// describeBindingError turns validator output into "field: message" lines.
func describeBindingError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := tagMessages[fe.Tag()]
		if !ok {
			msg = "failed " + fe.Tag()
		}
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), msg))
	}
	return strings.Join(parts, "; ")
}
