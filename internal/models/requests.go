package models

// Request payloads for the JSON API. Validation tags are checked by the
// handlers before any repository call.

type CreateUserRequest struct {
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type CreateVideoRequest struct {
	UserID      string  `json:"user_id" validate:"required,uuid"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	FileSize    int64   `json:"file_size"`
	Format      string  `json:"format"`
	Resolution  string  `json:"resolution"`
}

type QualityCheckRequest struct {
	VideoID          string                 `json:"video_id" validate:"required,uuid"`
	CheckType        string                 `json:"check_type" validate:"required,oneof=face lighting audio positioning"`
	Status           string                 `json:"status" validate:"omitempty,oneof=checking success warning error"`
	Score            int                    `json:"score" validate:"min=0,max=100"`
	Message          string                 `json:"message"`
	TechnicalDetails map[string]interface{} `json:"technical_details"`
}

type QualityCheckBatchRequest struct {
	VideoID       string                       `json:"video_id" validate:"required,uuid"`
	QualityChecks map[string]QualityCheckEntry `json:"quality_checks" validate:"required,dive"`
}

type QualityCheckEntry struct {
	Status           string                 `json:"status" validate:"omitempty,oneof=checking success warning error"`
	Score            int                    `json:"score" validate:"min=0,max=100"`
	Message          string                 `json:"message"`
	TechnicalDetails map[string]interface{} `json:"technical_details"`
}

type QualityAnalysisRequest struct {
	VideoID  string                       `json:"video_id" validate:"required,uuid"`
	Analysis map[string]QualityCheckEntry `json:"analysis" validate:"required,dive"`
}

type StartRecordingRequest struct {
	DeviceSettings    map[string]interface{} `json:"device_settings"`
	InstructionsShown []string               `json:"instructions_shown"`
}

type StopRecordingRequest struct {
	DurationSeconds       *int     `json:"duration_seconds"`
	InstructionsCompleted []string `json:"instructions_completed"`
}

type CandidateProfileRequest struct {
	UserID             string  `json:"user_id" validate:"required,uuid"`
	FirstName          string  `json:"first_name" validate:"required"`
	LastName           string  `json:"last_name" validate:"required"`
	Phone              string  `json:"phone"`
	Location           string  `json:"location"`
	EducationLevel     string  `json:"education_level"`
	University         string  `json:"university"`
	Major              string  `json:"major"`
	GraduationYear     *int    `json:"graduation_year"`
	ExperienceYears    int     `json:"experience_years" validate:"min=0"`
	PortfolioURL       string  `json:"portfolio_url" validate:"omitempty,url"`
	LinkedinURL        string  `json:"linkedin_url" validate:"omitempty,url"`
	Status             string  `json:"status" validate:"omitempty,oneof=active passive not_available"`
	IsProfilePublic    *bool   `json:"is_profile_public"`
	AcceptsOffers      *bool   `json:"accepts_offers"`
	PreferredSalaryMin *int    `json:"preferred_salary_min"`
	PreferredSalaryMax *int    `json:"preferred_salary_max"`
	CVFile             *string `json:"cv_file"`
}

type LinkVideoRequest struct {
	VideoID string `json:"video_id" validate:"required,uuid"`
}

type QuickVideoLinkRequest struct {
	VideoID string `json:"video_id" validate:"required,uuid"`
	UserID  string `json:"user_id" validate:"required,uuid"`
}

type RecruiterProfileRequest struct {
	UserID                   string                 `json:"user_id" validate:"required,uuid"`
	CompanyName              string                 `json:"company_name" validate:"required"`
	Position                 string                 `json:"position"`
	Phone                    string                 `json:"phone"`
	Department               string                 `json:"department"`
	PreferredEducationLevels []string               `json:"preferred_education_levels"`
	PreferredExperienceRange map[string]interface{} `json:"preferred_experience_range"`
	PreferredUniversities    []string               `json:"preferred_universities"`
	IsActive                 *bool                  `json:"is_active"`
}

type LogVideoViewRequest struct {
	RecruiterID      string `json:"recruiter_id" validate:"required,uuid"`
	ViewDuration     int    `json:"view_duration" validate:"min=0"`
	CompletedViewing bool   `json:"completed_viewing"`
	Rating           *int   `json:"rating" validate:"omitempty,min=1,max=5"`
	Notes            string `json:"notes"`
}

type LogProfileViewRequest struct {
	RecruiterID      string   `json:"recruiter_id" validate:"required,uuid"`
	ViewDuration     int      `json:"view_duration" validate:"min=0"`
	SectionsViewed   []string `json:"sections_viewed"`
	CVDownloaded     bool     `json:"cv_downloaded"`
	VideoWatched     bool     `json:"video_watched"`
	ContactAttempted bool     `json:"contact_attempted"`
	InterestLevel    *int     `json:"interest_level" validate:"omitempty,min=1,max=5"`
	Notes            string   `json:"notes"`
}

type CreateNotificationRequest struct {
	RecipientID       string                 `json:"recipient_id" validate:"required,uuid"`
	SenderID          string                 `json:"sender_id" validate:"omitempty,uuid"`
	NotificationType  string                 `json:"notification_type" validate:"required"`
	Title             string                 `json:"title" validate:"required"`
	Message           string                 `json:"message" validate:"required"`
	Priority          string                 `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	RelatedObjectType string                 `json:"related_object_type"`
	RelatedObjectID   string                 `json:"related_object_id" validate:"omitempty,uuid"`
	ExtraData         map[string]interface{} `json:"extra_data"`
	ActionURL         string                 `json:"action_url"`
	ActionText        string                 `json:"action_text"`
}

type BulkCreateNotificationsRequest struct {
	Notifications []CreateNotificationRequest `json:"notifications" validate:"required,min=1,dive"`
}

type MarkAllAsReadRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

type AddFavoriteRequest struct {
	RecruiterID string `json:"recruiter_id" validate:"required,uuid"`
	CandidateID string `json:"candidate_id" validate:"required,uuid"`
	Priority    int    `json:"priority" validate:"omitempty,min=1,max=5"`
	Notes       string `json:"notes"`
}

type UpdatePreferencesRequest struct {
	EmailNotifications    *bool                  `json:"email_notifications"`
	PushNotifications     *bool                  `json:"push_notifications"`
	SMSNotifications      *bool                  `json:"sms_notifications"`
	NotifyVideoViewed     *bool                  `json:"notify_video_viewed"`
	NotifyVideoApproved   *bool                  `json:"notify_video_approved"`
	NotifySyncNeeded      *bool                  `json:"notify_sync_needed"`
	NotifyProfileComplete *bool                  `json:"notify_profile_complete"`
	DailyDigest           *bool                  `json:"daily_digest"`
	WeeklySummary         *bool                  `json:"weekly_summary"`
	QuietHours            map[string]interface{} `json:"quiet_hours"`
}
