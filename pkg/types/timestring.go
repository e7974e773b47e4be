package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"time"
)

// TimeString время дня в формате "HH:MM" (разрешение до минуты)
type TimeString string

const timeLayout = "15:04"

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате времени
	ErrInvalidTimeFormat = errors.New("types: invalid time string format, expected HH:MM")

	// Принимаем и "9:00", и "09:00" (как в пользовательском вводе)
	timePattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)
)

// NewTimeString создает TimeString из time.Time (отбрасывает секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString создает TimeString из строки с валидацией.
// Нормализует к двузначному часу: "9:00" -> "09:00".
func NewTimeStringFromString(s string) (TimeString, error) {
	m := timePattern.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	if len(m[1]) == 1 {
		return TimeString("0" + s), nil
	}
	return TimeString(s), nil
}

// FromMinutes создает TimeString из количества минут с начала дня.
// Переполнение минут переносится в часы без обрезки по границе суток,
// чтобы вычисленные границы (например, конец break с padding) оставались читабельными.
func FromMinutes(m int) TimeString {
	if m < 0 {
		m = 0
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60))
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат времени
func (t TimeString) Validate() error {
	if !timePattern.MatchString(string(t)) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return nil
}

// Minutes возвращает количество минут с начала дня
func (t TimeString) Minutes() (int, error) {
	m := timePattern.FindStringSubmatch(string(t))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	var h, min int
	fmt.Sscanf(m[1], "%d", &h)
	fmt.Sscanf(m[2], "%d", &min)
	return h*60 + min, nil
}

// AddMinutes возвращает время, сдвинутое на minutes минут вперед
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	base, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return FromMinutes(base + minutes), nil
}

// minutesOrNegative используется для сравнений: невалидное время меньше любого валидного
func (t TimeString) minutesOrNegative() int {
	m, err := t.Minutes()
	if err != nil {
		return -1
	}
	return m
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutesOrNegative() < other.minutesOrNegative()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.minutesOrNegative() > other.minutesOrNegative()
}

// Equal сравнивает два времени по минутам (нормализует "9:00" и "09:00")
func (t TimeString) Equal(other TimeString) bool {
	return t.minutesOrNegative() == other.minutesOrNegative()
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner. Колонка TIME приходит из postgres
// как "15:04:05" - обрезаем секунды.
func (t *TimeString) Scan(src interface{}) error {
	if src == nil {
		*t = ""
		return nil
	}

	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("types: cannot scan %T into TimeString", src)
	}

	if len(s) >= 5 {
		s = s[:5]
	}

	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
