package saved

import (
	"strconv"

	"github.com/linkagehub/marketplace-api/internal/platform/timeutil"
	savedsvc "github.com/linkagehub/marketplace-api/internal/service/saved"
	vasvc "github.com/linkagehub/marketplace-api/internal/service/va"
)

// SavedVA is one saved-list entry with the VA's display fields joined in.
// VA is null when the VA's account was deleted after being saved; such
// entries stay listed with unavailable=true.
type SavedVA struct {
	ID          string        `json:"id"                    doc:"Saved entry ID"`
	VAID        string        `json:"vaId"                  doc:"Saved VA's ID"`
	VA          *VACard       `json:"va,omitempty"          doc:"VA display fields"`
	Notes       string        `json:"notes,omitempty"       doc:"Private notes on this VA"`
	SavedAt     timeutil.Time `json:"savedAt"               doc:"When the VA was saved"`
	Unavailable bool          `json:"unavailable,omitempty" doc:"VA is deactivated, suspended or deleted"`
}

// VACard carries the VA fields the saved list renders.
type VACard struct {
	ID                string        `json:"id"                doc:"VA ID"`
	Name              string        `json:"name"              doc:"Display name"            example:"Maria Santos"`
	Hero              string        `json:"hero,omitempty"    doc:"Hero tagline"`
	Title             string        `json:"title,omitempty"   doc:"Professional title"      example:"Executive Assistant"`
	Skills            []string      `json:"skills,omitempty"  doc:"Skills"`
	Specialties       []string      `json:"specialties,omitempty" doc:"Specialties"`
	Rating            float64       `json:"rating,omitempty"  doc:"Average rating"`
	HourlyRate        float64       `json:"hourlyRate,omitempty" doc:"Hourly rate in USD"`
	Availability      string        `json:"availability,omitempty" doc:"Availability"       example:"full_time"`
	Timezone          string        `json:"timezone,omitempty" doc:"Timezone"               example:"Asia/Manila"`
	Avatar            string        `json:"avatar,omitempty"  doc:"Avatar URL"`
	Bio               string        `json:"bio,omitempty"     doc:"Short bio"`
	Status            string        `json:"status"            doc:"Account status"          example:"active"`
	Industry          string        `json:"industry,omitempty" doc:"Primary industry"`
	Location          string        `json:"location,omitempty" doc:"Location"`
	YearsOfExperience int           `json:"yearsOfExperience,omitempty" doc:"Years of experience"`
	LastActive        timeutil.Time `json:"lastActive"        doc:"Last activity timestamp"`
}

// CountData is the saved-count payload. DisplayCount caps at "99+" for
// badge rendering.
type CountData struct {
	Count        int    `json:"count"        doc:"Number of saved VAs"       example:"12"`
	DisplayCount string `json:"displayCount" doc:"Badge-friendly count"      example:"12"`
}

// ExistsData is the exists-check payload.
type ExistsData struct {
	Saved bool `json:"saved" doc:"Whether the VA is in the saved list" example:"true"`
}

func toSavedVA(item savedsvc.Item) SavedVA {
	out := SavedVA{
		ID:          item.Entry.ID,
		VAID:        item.Entry.VAID,
		Notes:       item.Entry.Notes,
		SavedAt:     timeutil.NewTime(item.Entry.SavedAt),
		Unavailable: item.Unavailable,
	}
	if item.VA != nil {
		out.VA = toVACard(item.VA)
	}
	return out
}

func toVACard(v *vasvc.VA) *VACard {
	return &VACard{
		ID:                v.ID,
		Name:              v.Name(),
		Hero:              v.Hero,
		Title:             v.Title,
		Skills:            v.Skills,
		Specialties:       v.Specialties,
		Rating:            v.Rating,
		HourlyRate:        v.HourlyRate,
		Availability:      v.Availability,
		Timezone:          v.Timezone,
		Avatar:            v.Avatar,
		Bio:               v.Bio,
		Status:            v.Status,
		Industry:          v.Industry,
		Location:          v.Location,
		YearsOfExperience: v.YearsOfExperience,
		LastActive:        timeutil.NewTime(v.LastActive),
	}
}

func toEntry(entry *savedsvc.Entry) SavedVA {
	return SavedVA{
		ID:      entry.ID,
		VAID:    entry.VAID,
		Notes:   entry.Notes,
		SavedAt: timeutil.NewTime(entry.SavedAt),
	}
}

func displayCount(count int) string {
	if count > 99 {
		return "99+"
	}
	return strconv.Itoa(count)
}
