package database

import (
	"exhibition_manager/model"
	"exhibition_manager/utils"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func parseDate(dateStr string) utils.CustomDate {
	t, _ := time.Parse("2006-01-02", dateStr)
	return utils.CustomDate{Time: t}
}

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("admin12345"), 10)
	hashPassword := string(bytes)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}

	admin := model.User{
		Email:    "admin@exhibitions.local",
		Password: hashPassword,
		FullName: "Administrator",
		Admin:    true,
		Active:   utils.Ptr(true),
	}
	if err := db.Where(model.User{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
		log.Println("failed to seed admin user:", err)
	}

	locations := []model.Location{
		{Name: "National Gallery", City: "Belgrade", Address: "Trg Republike 1a"},
		{Name: "Museum of Contemporary Art", City: "Novi Sad", Address: "Dunavska 37"},
	}
	for i := range locations {
		if err := db.Where(model.Location{Name: locations[i].Name}).FirstOrCreate(&locations[i]).Error; err != nil {
			log.Println("failed to seed location:", locations[i].Name, "error:", err)
		}
	}

	exhibitions := []model.Exhibition{
		{
			Title:      "Impressionists on Paper",
			Slug:       "impressionists-on-paper",
			StartDate:  parseDate("2026-09-15"),
			EndDate:    parseDate("2026-12-20"),
			Capacity:   250,
			Curator:    "Mila Petrovic",
			Published:  utils.Ptr(true),
			Active:     utils.Ptr(true),
			LocationId: locations[0].ID,
		},
		{
			Title:      "Concrete Utopias",
			Slug:       "concrete-utopias",
			StartDate:  parseDate("2026-10-01"),
			EndDate:    parseDate("2027-01-31"),
			Capacity:   120,
			Curator:    "Jovan Ilic",
			Published:  utils.Ptr(false),
			Active:     utils.Ptr(true),
			LocationId: locations[1].ID,
		},
	}
	for i := range exhibitions {
		if exhibitions[i].LocationId == 0 {
			continue
		}
		if err := db.Where(model.Exhibition{Slug: exhibitions[i].Slug}).FirstOrCreate(&exhibitions[i]).Error; err != nil {
			log.Println("failed to seed exhibition:", exhibitions[i].Title, "error:", err)
		}
	}
}
