package numerology

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	MinYear = 1900
	MaxYear = 2025
)

var (
	ErrInvalidDateFormat = errors.New("birth date must be in DD.MM.YYYY format")
	ErrDayOutOfRange     = errors.New("day must be between 1 and 31")
	ErrMonthOutOfRange   = errors.New("month must be between 1 and 12")
	ErrYearOutOfRange    = fmt.Errorf("year must be between %d and %d", MinYear, MaxYear)
	ErrDayNotInMonth     = errors.New("day does not exist in the given month")
)

var validate = validator.New()

// BirthDate is a calendar-valid date of birth. Construct it with NewBirthDate
// or ParseBirthDate; the zero value is not valid.
type BirthDate struct {
	Day   int `validate:"min=1,max=31"`
	Month int `validate:"min=1,max=12"`
	Year  int `validate:"min=1900,max=2025"`
}

// NewBirthDate validates the ranges of each field and then the calendar itself
// (30-day months, February in leap and common years).
func NewBirthDate(day, month, year int) (BirthDate, error) {
	b := BirthDate{Day: day, Month: month, Year: year}
	if err := validate.Struct(b); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			switch verrs[0].Field() {
			case "Day":
				return BirthDate{}, ErrDayOutOfRange
			case "Month":
				return BirthDate{}, ErrMonthOutOfRange
			case "Year":
				return BirthDate{}, ErrYearOutOfRange
			}
		}
		return BirthDate{}, fmt.Errorf("validating birth date: %w", err)
	}

	if day > DaysInMonth(month, year) {
		return BirthDate{}, fmt.Errorf("%w: %d.%d has %d days", ErrDayNotInMonth, month, year, DaysInMonth(month, year))
	}
	return b, nil
}

// ParseBirthDate accepts "DD.MM.YYYY" (single-digit day and month allowed).
func ParseBirthDate(s string) (BirthDate, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return BirthDate{}, ErrInvalidDateFormat
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || p == "" {
			return BirthDate{}, ErrInvalidDateFormat
		}
		nums[i] = n
	}
	return NewBirthDate(nums[0], nums[1], nums[2])
}

// DaysInMonth returns the number of days in month of year.
func DaysInMonth(month, year int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FromTime builds a BirthDate from the calendar date of t.
func FromTime(t time.Time) (BirthDate, error) {
	return NewBirthDate(t.Day(), int(t.Month()), t.Year())
}

// Time returns midnight UTC of the birth date.
func (b BirthDate) Time() time.Time {
	return time.Date(b.Year, time.Month(b.Month), b.Day, 0, 0, 0, 0, time.UTC)
}

// String formats the date as DD.MM.YYYY.
func (b BirthDate) String() string {
	return fmt.Sprintf("%02d.%02d.%04d", b.Day, b.Month, b.Year)
}

// AgeOn returns the age used for band selection: the difference in calendar
// years between now and the birth year. Month and day are not considered.
func AgeOn(b BirthDate, now time.Time) int {
	return now.Year() - b.Year
}
