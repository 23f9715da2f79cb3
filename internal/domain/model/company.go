package model

const (
	WeekdaysAll       = "all_week_days"
	WeekdaysMonday    = "monday"
	WeekdaysTuesday   = "tuesday"
	WeekdaysWednesday = "wednesday"
	WeekdaysThursday  = "thursday"
	WeekdaysFriday    = "friday"
	WeekdaysSaturday  = "saturday"
	WeekdaysSunday    = "sunday"
)

// ValidWeekdays reports whether value is a member of the schedule enum.
// The empty string is accepted; the field is optional.
func ValidWeekdays(value string) bool {
	switch value {
	case "", WeekdaysAll, WeekdaysMonday, WeekdaysTuesday, WeekdaysWednesday,
		WeekdaysThursday, WeekdaysFriday, WeekdaysSaturday, WeekdaysSunday:
		return true
	}
	return false
}

type Company struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Slug             string `json:"slug"`
	Description      string `json:"description"`
	ScheduleStart    string `json:"schedule_start"` // "HH:MM"
	ScheduleEnd      string `json:"schedule_end"`   // "HH:MM"
	ScheduleWeekdays string `json:"schedule_weekdays"`
	PhoneNumber      string `json:"phone_number"`
	Email            string `json:"email"`
	MapLink          string `json:"map_link"`
	SocialMedia1     string `json:"social_media1"`
	SocialMedia2     string `json:"social_media2"`
	SocialMedia3     string `json:"social_media3"`
}
