package domain

import "time"

type Setting struct {
	Key       string    `json:"key" db:"key"`
	Value     string    `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

const (
	SettingDeadlineWarningDays     = "deadline_warning_days"
	SettingOrderableDaysLimit      = "orderable_days_limit"
	SettingMaxNormalRequestsPerDay = "max_normal_requests_per_day"
	SettingMaxUrgentRequestsPerDay = "max_urgent_requests_per_day"
	SettingDefaultDesignerID       = "default_designer_id"
)

type UpdateSettingInput struct {
	Value string `json:"value" validate:"max=500"`
}
