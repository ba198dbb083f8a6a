package enums

import "fmt"

// BookingStatus tracks a booking intent through payment preference creation.
type BookingStatus string

const (
	BookingStatusPending           BookingStatus = "pending"
	BookingStatusPreferenceCreated BookingStatus = "preference_created"
	BookingStatusPreferenceFailed  BookingStatus = "preference_failed"
)

var validBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusPreferenceCreated,
	BookingStatusPreferenceFailed,
}

// String implements fmt.Stringer.
func (b BookingStatus) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BookingStatus.
func (b BookingStatus) IsValid() bool {
	for _, candidate := range validBookingStatuses {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBookingStatus converts raw input into a BookingStatus.
func ParseBookingStatus(value string) (BookingStatus, error) {
	for _, candidate := range validBookingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid booking status %q", value)
}
