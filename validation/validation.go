// Package validation holds the storefront's field rules: contact formats and
// the delivery date/time windows of the kitchen.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	nameRegex  = regexp.MustCompile(`^[a-zA-Z\x{0590}-\x{05FF}\s\-']+$`)
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^(\+972|0)?[2-9]\d{7,8}$`)
	phoneJunk  = regexp.MustCompile(`[\s\-()]`)
)

// IsValidFullName accepts Hebrew or Latin letters, at least two characters.
func IsValidFullName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if len([]rune(trimmed)) < 2 {
		return false
	}
	return nameRegex.MatchString(trimmed)
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPhone checks Israeli numbering, with or without the +972 prefix.
func IsValidPhone(phone string) bool {
	cleaned := phoneJunk.ReplaceAllString(phone, "")
	return phoneRegex.MatchString(cleaned)
}

// FormatPhone normalizes a local number to international +972 form.
func FormatPhone(phone string) string {
	cleaned := phoneJunk.ReplaceAllString(phone, "")
	if strings.HasPrefix(cleaned, "+972") {
		return cleaned
	}
	if strings.HasPrefix(cleaned, "0") {
		return "+972" + cleaned[1:]
	}
	return "+972" + cleaned
}

// ParseDate parses the storefront's YYYY-MM-DD date fields.
func ParseDate(date string) (time.Time, error) {
	return time.Parse("2006-01-02", date)
}

// IsValidDeliveryDate requires tomorrow or later and never a Saturday.
func IsValidDeliveryDate(date string, now time.Time) bool {
	d, err := ParseDate(date)
	if err != nil {
		return false
	}
	if d.Weekday() == time.Saturday {
		return false
	}
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return !d.Before(tomorrow)
}

// IsValidDeliveryTime checks HH:MM against the delivery windows: Friday
// 13:00-15:00, Saturday closed, other days 13:00-21:00.
func IsValidDeliveryTime(timeStr, date string) bool {
	var hours, minutes int
	if _, err := fmt.Sscanf(timeStr, "%d:%d", &hours, &minutes); err != nil {
		return false
	}
	total := hours*60 + minutes

	if date != "" {
		d, err := ParseDate(date)
		if err != nil {
			return false
		}
		switch d.Weekday() {
		case time.Friday:
			return total >= 13*60 && total <= 15*60
		case time.Saturday:
			return false
		}
	}

	return total >= 13*60 && total <= 21*60
}

// AvailableDeliveryTimes lists the 30-minute slots for the given date, empty
// for Saturdays or unparseable dates.
func AvailableDeliveryTimes(date string) []string {
	d, err := ParseDate(date)
	if err != nil {
		return nil
	}

	lastHour := 21
	switch d.Weekday() {
	case time.Friday:
		lastHour = 15
	case time.Saturday:
		return nil
	}

	var times []string
	for hour := 13; hour <= lastHour; hour++ {
		for minute := 0; minute < 60; minute += 30 {
			if hour == lastHour && minute > 0 {
				break
			}
			times = append(times, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	return times
}

// MinDeliveryDate returns tomorrow in YYYY-MM-DD form.
func MinDeliveryDate(now time.Time) string {
	return now.AddDate(0, 0, 1).Format("2006-01-02")
}
