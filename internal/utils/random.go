package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mrand "math/rand"

	"github.com/chuk05/myy-signature-myy-style/internal/domain"
	"github.com/google/uuid"
)

func randomInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}
	return int(v.Int64())
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", randomInt(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[randomInt(len(letters))]
	}
	return string(password)
}

var firstNames = []string{
	"Aaliyah", "Brianna", "Camille", "Danielle", "Erica", "Fatima", "Gabrielle", "Imani",
	"Jasmine", "Keisha", "Marcus", "Andre", "Darnell", "Jamal", "Terrence", "Malik",
	"小红", "丽华", "建国", "美玲",
}

var lastNames = []string{
	"Johnson", "Williams", "Brown", "Jackson", "Davis", "Harris", "Robinson", "Walker",
	"王", "李", "陈",
}

var positions = []string{"Stylist", "Senior Stylist", "Colorist", "Barber", "Texture Specialist"}

// GenerateRandomStaff builds a staff member whose e-mail is derived from the name,
// so CJK names get a pinyin local part.
func GenerateRandomStaff(emailDomain string) *domain.Staff {
	fullName := firstNames[mrand.Intn(len(firstNames))] + " " + lastNames[mrand.Intn(len(lastNames))]
	local := Slugify(fullName)
	if local == "" {
		local = "staff"
	}

	return &domain.Staff{
		ID:              uuid.New(),
		Email:           fmt.Sprintf("%s%d@%s", local, mrand.Intn(1000), emailDomain),
		FullName:        fullName,
		Role:            domain.RoleStaff,
		Position:        positions[mrand.Intn(len(positions))],
		Specialization:  []string{"General Styling"},
		ExperienceYears: int32(mrand.Intn(20) + 1),
		IsActive:        true,
	}
}

// GenerateRandomWorkingHours returns a weekly template with a random set of
// working days; every working day starts between 08:00 and 11:00 and lasts 6-9 hours.
func GenerateRandomWorkingHours(staffID uuid.UUID) []domain.WorkingHours {
	days := mrand.Perm(7)[:mrand.Intn(4)+3]

	hours := make([]domain.WorkingHours, 0, len(days))
	for _, day := range days {
		start := mrand.Intn(4) + 8
		end := start + mrand.Intn(4) + 6
		hours = append(hours, domain.WorkingHours{
			StaffID:   staffID,
			DayOfWeek: int32(day),
			StartTime: fmt.Sprintf("%02d:00", start),
			EndTime:   fmt.Sprintf("%02d:%02d", end, 30*mrand.Intn(2)),
			IsActive:  true,
		})
	}

	return hours
}
