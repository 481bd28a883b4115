package main

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/okravets/institutions-api/database"
	"github.com/okravets/institutions-api/model"
)

// Seeds the catalog with a couple of sample institutions for local
// development. Safe to run repeatedly: already-present institutions are
// skipped by (name, foundation date) equivalence.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	store, err := database.StartGORM()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	existing, err := store.FindAllInstitutions()
	if err != nil {
		log.Fatalf("Failed to read catalog: %v", err)
	}

	seeded := 0
	for _, inst := range sampleInstitutions() {
		skip := false
		for _, have := range existing {
			if have.Matches(inst) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}

		if err := store.InsertInstitution(&inst); err != nil {
			log.Fatalf("Failed to seed %q: %v", inst.Name, err)
		}
		seeded++
		fmt.Printf("Seeded %q (id %d, discipline id %d)\n", inst.Name, inst.ID, inst.Discipline.ID)
	}

	fmt.Printf("Seeding done, %d new institutions\n", seeded)
}

func sampleInstitutions() []model.Institution {
	return []model.Institution{
		{
			Name:                  "Igor Sikorsky Kyiv Polytechnic Institute",
			AccreditationLevel:    "IV",
			Address:               "37 Peremohy Ave, Kyiv",
			FoundationDate:        time.Date(1898, 8, 31, 0, 0, 0, 0, time.UTC),
			FacultiesCount:        18,
			Website:               "https://kpi.ua",
			HasMilitaryDepartment: true,
			Discipline: model.Discipline{
				Name:           "Information Security",
				Institution:    "Institute of Physics and Technology",
				SpecialityCode: "125",
				Semester:       5,
				HoursCount:     120,
				ApprovalDate:   time.Date(2021, 6, 15, 10, 0, 0, 0, time.UTC),
				HasExam:        true,
			},
		},
		{
			Name:                  "Taras Shevchenko National University of Kyiv",
			AccreditationLevel:    "IV",
			Address:               "60 Volodymyrska St, Kyiv",
			FoundationDate:        time.Date(1834, 7, 15, 0, 0, 0, 0, time.UTC),
			FacultiesCount:        13,
			Website:               "https://knu.ua",
			HasMilitaryDepartment: false,
			Discipline: model.Discipline{
				Name:           "Applied Mathematics",
				Institution:    "Faculty of Computer Science and Cybernetics",
				SpecialityCode: "113",
				Semester:       3,
				HoursCount:     150,
				ApprovalDate:   time.Date(2020, 9, 1, 9, 30, 0, 0, time.UTC),
				HasExam:        true,
			},
		},
	}
}
