// Package seed holds the default salon catalogue and the routines that load
// it, together with random staff, into the database.
package seed

import (
	"log/slog"

	"github.com/chuk05/myy-signature-myy-style/internal/domain"
	"github.com/chuk05/myy-signature-myy-style/internal/repository"
	"github.com/chuk05/myy-signature-myy-style/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type categoryDef struct {
	name        string
	description string
	color       string
	icon        string
}

var categoryDefs = []categoryDef{
	{"Women's Hair", "Precision cuts, styling, and professional hair care for women", "#8B5CF6", "scissors"},
	{"Color Services", "Professional coloring, highlights, and color correction", "#EC4899", "palette"},
	{"Treatment Services", "Deep conditioning, smoothing, and therapeutic treatments", "#10B981", "sparkles"},
	{"Men's Grooming", "Classic and modern grooming services for men", "#3B82F6", "user"},
	{"Specialty Services", "Bridal, extensions, and special occasion services", "#F59E0B", "star"},
	{"Texture Services", "Chemical services and curl definition", "#EF4444", "sparkles"},
	{"Kids Services", "Fun and gentle haircuts for children and teens", "#06B6D4", "heart"},
	{"Add-on Services", "Additional treatments and enhancements", "#6B7280", "plus"},
}

// DefaultCategories returns a fresh copy of the default category list, in
// display order. Slugs are derived from the names.
func DefaultCategories() []*domain.Category {
	categories := make([]*domain.Category, 0, len(categoryDefs))
	for i, def := range categoryDefs {
		categories = append(categories, &domain.Category{
			Name:        def.name,
			Slug:        utils.Slugify(def.name),
			Description: def.description,
			Color:       def.color,
			IconName:    def.icon,
			SortOrder:   int32(i + 1),
			IsActive:    true,
		})
	}
	return categories
}

type serviceDef struct {
	name     string
	duration int32
	price    float64
}

var serviceDefs = map[string][]serviceDef{
	"womens-hair":        {{"Women's Haircut", 60, 65}, {"Blowout", 45, 45}, {"Silk Press", 90, 85}},
	"color-services":     {{"Single Process Color", 90, 95}, {"Full Highlights", 150, 165}, {"Balayage", 180, 200}},
	"treatment-services": {{"Deep Conditioning", 30, 35}, {"Keratin Smoothing", 150, 250}},
	"mens-grooming":      {{"Men's Haircut", 30, 35}, {"Beard Trim", 15, 20}},
	"specialty-services": {{"Bridal Styling", 120, 175}, {"Sew-in Extensions", 180, 250}},
	"texture-services":   {{"Relaxer", 120, 110}, {"Curl Definition", 90, 80}},
	"kids-services":      {{"Kids Haircut", 30, 25}},
	"add-on-services":    {{"Scalp Treatment", 15, 15}, {"Gloss", 20, 30}},
}

// DefaultServices returns the sample services of one category slug.
func DefaultServices(categorySlug string, categoryID uuid.UUID) []*domain.Service {
	defs := serviceDefs[categorySlug]

	services := make([]*domain.Service, 0, len(defs))
	for i, def := range defs {
		id := categoryID
		services = append(services, &domain.Service{
			CategoryID:   &id,
			Name:         def.name,
			Duration:     def.duration,
			Price:        def.price,
			IsActive:     true,
			DisplayOrder: int32(i + 1),
		})
	}
	return services
}

// SeedCatalogue upserts the default categories and inserts their sample
// services. It returns how many services were created.
func SeedCatalogue(r *repository.Repository) (int, error) {
	categories := DefaultCategories()
	if err := r.UpsertCategories(categories); err != nil {
		return 0, err
	}

	cnt := 0
	for _, category := range categories {
		for _, service := range DefaultServices(category.Slug, category.ID) {
			if err := r.CreateService(service); err != nil {
				slog.Error("failed to insert service", slog.String("name", service.Name), slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
	}

	return cnt, nil
}

// SeedStaff creates n random staff members sharing password, assigns every
// active service to them and gives each a random weekly template.
func SeedStaff(r *repository.Repository, n int, password, emailDomain string) (int, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	services, err := r.GetActiveServices(nil)
	if err != nil {
		return 0, err
	}
	serviceIDs := make([]uuid.UUID, 0, len(services))
	for _, s := range services {
		serviceIDs = append(serviceIDs, s.ID)
	}

	cnt := 0
	for range n {
		staff := utils.GenerateRandomStaff(emailDomain)
		profile := &domain.Profile{
			Email:        staff.Email,
			PasswordHash: string(passwordHash),
			FullName:     staff.FullName,
			Role:         domain.RoleStaff,
		}

		if err := r.CreateStaff(profile, staff); err != nil {
			slog.Error("failed to insert staff", slog.String("email", staff.Email), slog.String("error", err.Error()))
			continue
		}

		if err := r.ReplaceStaffServices(staff.ID, serviceIDs); err != nil {
			slog.Error("failed to assign services", slog.String("staff_id", staff.ID.String()), slog.String("error", err.Error()))
			continue
		}

		if err := r.ReplaceWorkingHours(staff.ID, utils.GenerateRandomWorkingHours(staff.ID)); err != nil {
			slog.Error("failed to insert working hours", slog.String("staff_id", staff.ID.String()), slog.String("error", err.Error()))
			continue
		}

		cnt++
	}

	return cnt, nil
}
