package main

import (
	"log"
	"time"

	"github.com/google/uuid"

	"jobgate/video-studio/internal/config"
	"jobgate/video-studio/internal/models"
	"jobgate/video-studio/internal/repositories"
	"jobgate/video-studio/internal/services"
)

// Seeds a demo candidate with an approved, fully-checked presentation video
// plus a recruiter account, so the API can be explored without a frontend.
func main() {
	log.Println("🚀 Seeding demo data...")

	cfg := config.Load()
	appLog := config.InitLogger()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	userRepo := repositories.NewUserRepository(db)
	videoRepo := repositories.NewVideoRepository(db)
	notifier := services.NewNotificationService(
		repositories.NewNotificationRepository(db),
		repositories.NewPreferenceRepository(db),
		repositories.NewTemplateRepository(db),
	)
	quality := services.NewQualityService(videoRepo, repositories.NewQualityCheckRepository(db))
	linkage := services.NewLinkageService(db, notifier, appLog)

	if _, err := userRepo.FindByUsername("demo_candidate"); err == nil {
		log.Println("✅ Demo data already present, nothing to do")
		return
	}

	candidate := &models.User{
		ID:        uuid.New(),
		Username:  "demo_candidate",
		Email:     "candidate@jobgate.example",
		FirstName: "Amina",
		LastName:  "Ben Salah",
	}
	if err := userRepo.Create(candidate); err != nil {
		log.Fatalf("❌ Failed to create demo candidate: %v", err)
	}

	recruiter := &models.User{
		ID:        uuid.New(),
		Username:  "demo_recruiter",
		Email:     "recruiter@jobgate.example",
		FirstName: "Karim",
		LastName:  "Haddad",
	}
	if err := userRepo.Create(recruiter); err != nil {
		log.Fatalf("❌ Failed to create demo recruiter: %v", err)
	}

	now := time.Now()
	video := &models.Video{
		ID:         uuid.New(),
		UserID:     candidate.ID,
		Title:      "Presentation video",
		Duration:   92,
		Format:     "webm",
		Resolution: "1280x720",
		Status:     models.VideoStatusCompleted,
		IsApproved: true,
		RecordedAt: &now,
	}
	if err := videoRepo.Create(video); err != nil {
		log.Fatalf("❌ Failed to create demo video: %v", err)
	}

	result, err := quality.BatchUpsert(video.ID, map[string]models.QualityCheckEntry{
		"face":        {Status: "success", Score: 92, Message: "Face clearly visible"},
		"lighting":    {Status: "success", Score: 85, Message: "Good lighting"},
		"audio":       {Status: "warning", Score: 74, Message: "Slight background noise"},
		"positioning": {Status: "success", Score: 88, Message: "Well centered"},
	})
	if err != nil {
		log.Fatalf("❌ Failed to seed quality checks: %v", err)
	}
	log.Printf("✅ Demo video scored %d/100 (ready: %v)", result.OverallScore, result.IsReady)

	profile, err := linkage.QuickLink(candidate.ID, video.ID)
	if err != nil {
		log.Fatalf("❌ Failed to link demo video: %v", err)
	}

	log.Printf("✅ Demo candidate %s ready (profile %s, completeness %d%%)",
		candidate.Username, profile.ID, profile.ProfileCompleteness)
	log.Printf("✅ Demo recruiter %s ready (%s)", recruiter.Username, recruiter.ID)
}
