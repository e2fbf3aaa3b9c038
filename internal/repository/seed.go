package repository

import (
	"fmt"
	"net/url"
	"time"

	"github.com/Ubaid075/DOT-AI/internal/models"
)

// Styles offered by the generator. Settings seed with the full list; the
// admin can narrow it later.
var ImageStyles = []string{
	"Aesthetic",
	"Cartoon",
	"3D Model",
	"HDR Photography",
	"Portrait",
	"Realistic",
	"Ultra High Quality",
	"Anime",
	"Pixel Art",
	"Vintage Photography",
	"4K Resolution",
	"8K Resolution",
	"16K Resolution",
}

// CreditPlans are the purchasable packages shown to users and referenced by
// credit requests.
var CreditPlans = []models.CreditPlan{
	{ID: "plan_basic", Name: "Basic", Credits: 100, Price: 9, Notes: "For casual usage"},
	{ID: "plan_standard", Name: "Standard", Credits: 200, Price: 17, Notes: "Frequent image generation"},
	{ID: "plan_pro", Name: "Pro", Credits: 400, Price: 40, Notes: "Heavy usage / professional"},
	{ID: "plan_premium", Name: "Premium", Credits: 1000, Price: 75, Notes: "Large-scale generation"},
}

// PlanByID returns the fixed plan with the given id, or nil.
func PlanByID(id string) *models.CreditPlan {
	for i := range CreditPlans {
		if CreditPlans[i].ID == id {
			return &CreditPlans[i]
		}
	}
	return nil
}

// AvatarURL derives the default profile picture for a display name.
func AvatarURL(name string) string {
	return fmt.Sprintf("https://api.dicebear.com/8.x/initials/svg?seed=%s", url.QueryEscape(name))
}

// BootstrapAdmin describes the account seeded on first boot.
type BootstrapAdmin struct {
	Email    string
	Password string
}

// SeedUsers builds the first-boot users collection: exactly one admin with
// an effectively unlimited balance.
func SeedUsers(admin BootstrapAdmin) func() []models.User {
	return func() []models.User {
		now := time.Now().UTC()
		return []models.User{{
			ID:              "admin-0",
			Name:            "Admin",
			Email:           admin.Email,
			Password:        admin.Password,
			ProfilePic:      AvatarURL("Admin"),
			Credits:         999999,
			Role:            models.RoleAdmin,
			Status:          models.StatusActive,
			CreatedAt:       now,
			LastLogin:       now,
			GeneratedImages: []models.GeneratedImage{},
			FavoriteImages:  []models.Favorite{},
		}}
	}
}

// SeedGallery builds the first-boot public gallery.
func SeedGallery() []models.PublicImage {
	now := time.Now().UTC()
	return []models.PublicImage{{
		ID:             "gallery-1",
		UserID:         "admin-0",
		Title:          "A placeholder image from the web, showcasing a serene landscape.",
		ImageURL:       "https://storage.googleapis.com/proudcity/mebanenc/uploads/2021/03/placeholder-image.png",
		UserName:       "Admin",
		UserProfilePic: AvatarURL("Admin"),
		CreatedAt:      now,
		Likes:          []models.Like{},
		Comments:       []models.Comment{},
	}}
}

// SeedReviews builds the preloaded, already-approved testimonials.
func SeedReviews() []models.Review {
	now := time.Now().UTC()
	preloaded := []struct {
		name    string
		rating  int
		comment string
	}{
		{"Alex Johnson", 5, "Absolutely stunning results! The 3D models are incredibly detailed. I'm blown away by the quality."},
		{"Samantha Bee", 5, "As a photographer, I'm impressed with the HDR and Portrait styles. They look so professional and save me so much editing time."},
		{"Chris Lee", 4, "Great tool for concept art. The Aesthetic and Anime styles are perfect for brainstorming new character designs. Would love more customization options!"},
		{"Maria Garcia", 5, "So easy to use! I got 25 free credits on signup and was able to generate amazing images for my blog right away. Highly recommend."},
		{"David Chen", 5, "The privacy-first approach is a huge plus. I love that my creations aren't stored anywhere. The performance is also top-notch."},
	}
	reviews := make([]models.Review, 0, len(preloaded))
	for i, p := range preloaded {
		reviews = append(reviews, models.Review{
			ID:             fmt.Sprintf("preloaded-%d", i),
			UserID:         "system",
			Name:           p.name,
			ProfilePicture: AvatarURL(p.name),
			Rating:         p.rating,
			Comment:        p.comment,
			Date:           now,
			Approved:       true,
		})
	}
	return reviews
}

// DefaultSettings is the first-boot system configuration.
func DefaultSettings() models.SystemSettings {
	return models.SystemSettings{
		PlatformName:    "DOT AI",
		DefaultTheme:    "dark",
		MaintenanceMode: false,
		EnabledStyles:   append([]string(nil), ImageStyles...),
	}
}
