package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"registra/internal/registrations"
	"registra/internal/shared/config"
	"registra/internal/shared/database"

	"github.com/google/uuid"
)

type Seeder struct {
	db  *database.DB
	rng *rand.Rand
}

func main() {
	fmt.Println("🌱 Starting Registra Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db, rng: rand.New(rand.NewSource(42))}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	// Delete in reverse dependency order
	tables := []string{
		"participations",
		"activities",
		"faculties",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	facultyIDs, err := s.SeedFaculties()
	if err != nil {
		return fmt.Errorf("failed to seed faculties: %w", err)
	}

	activities, err := s.SeedActivities()
	if err != nil {
		return fmt.Errorf("failed to seed activities: %w", err)
	}

	if err := s.SeedParticipations(activities, facultyIDs); err != nil {
		return fmt.Errorf("failed to seed participations: %w", err)
	}

	// Clear Redis cache so everything recomputes against the fresh data
	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}

	return nil
}

// SeedFaculties creates the faculty labels participants register under
func (s *Seeder) SeedFaculties() ([]uuid.UUID, error) {
	fmt.Println("  🏛️ Seeding faculties...")

	names := []string{
		"Faculté de Médecine",
		"Faculté de Droit",
		"Faculté des Sciences",
		"Faculté d'Économie",
		"Faculté Polytechnique",
	}

	var ids []uuid.UUID
	for _, name := range names {
		faculty := registrations.Faculty{
			ID:   uuid.New(),
			Name: name,
		}
		if err := s.db.PostgreSQL.Create(&faculty).Error; err != nil {
			return nil, fmt.Errorf("failed to create faculty %s: %w", name, err)
		}
		ids = append(ids, faculty.ID)
		fmt.Printf("    ✅ Created faculty: %s\n", faculty.Name)
	}

	return ids, nil
}

// SeedActivities creates a mix of activity types with varied capacity and pricing
func (s *Seeder) SeedActivities() ([]registrations.Activity, error) {
	fmt.Println("  🎪 Seeding activities...")

	activitiesData := []struct {
		name      string
		typeLabel string
		capacity  int
		price     float64
		daysAgo   int
	}{
		{"Formation Excel Avancé", "Formation", 40, 5000, 80},
		{"Conférence Entrepreneuriat", "Conférence", 200, 2000, 65},
		{"Atelier Rédaction de CV", "Atelier", 30, 1000, 50},
		{"Formation Comptabilité OHADA", "Formation", 50, 7500, 40},
		{"Séminaire Leadership", "Séminaire", 100, 3000, 30},
		{"Atelier Prise de Parole", "Atelier", 25, 1500, 20},
		{"Conférence Santé Publique", "Conférence", 300, 0, 10},
		{"Formation Python Débutant", "Formation", 35, 6000, 5},
	}

	var activities []registrations.Activity
	for _, data := range activitiesData {
		activity := registrations.Activity{
			ID:           uuid.New(),
			Name:         data.name,
			TypeLabel:    data.typeLabel,
			StartDate:    time.Now().AddDate(0, 0, -data.daysAgo),
			Capacity:     data.capacity,
			DefaultPrice: data.price,
			Active:       true,
		}
		if err := s.db.PostgreSQL.Create(&activity).Error; err != nil {
			return nil, fmt.Errorf("failed to create activity %s: %w", activity.Name, err)
		}
		activities = append(activities, activity)
		fmt.Printf("    ✅ Created activity: %s (%s)\n", activity.Name, activity.TypeLabel)
	}

	return activities, nil
}

// SeedParticipations generates ~90 days of registrations with uneven volume
// so the anomaly detectors and insight generators have something to find:
// a handful of deliberate duplicates, one oversized payment, and weekday
// clustering around late mornings.
func (s *Seeder) SeedParticipations(activities []registrations.Activity, facultyIDs []uuid.UUID) error {
	fmt.Println("  📝 Seeding participations...")

	firstNames := []string{
		"Jean", "Marie", "Joseph", "Grâce", "Patrick", "Esther",
		"Didier", "Sarah", "Emmanuel", "Rachel", "Christian", "Nadine",
	}
	lastNames := []string{
		"Kabila", "Mukendi", "Tshisekedi", "Ilunga", "Kasongo", "Mbuyi",
		"Ngoy", "Kalala", "Mwamba", "Banza", "Kazadi", "Tshibangu",
	}
	statuses := []string{
		registrations.PaymentPaid, registrations.PaymentPaid, registrations.PaymentPaid,
		registrations.PaymentPending, registrations.PaymentCancelled,
	}

	total := 0
	for day := 90; day >= 0; day-- {
		// 2-8 registrations per day, clustered around 10h-12h
		count := 2 + s.rng.Intn(7)
		for i := 0; i < count; i++ {
			activity := activities[s.rng.Intn(len(activities))]
			fullName := firstNames[s.rng.Intn(len(firstNames))] + " " + lastNames[s.rng.Intn(len(lastNames))]

			hour := 8 + s.rng.Intn(9)
			if s.rng.Float64() < 0.4 {
				hour = 10 + s.rng.Intn(2)
			}
			createdAt := time.Now().AddDate(0, 0, -day).
				Truncate(24 * time.Hour).
				Add(time.Duration(hour)*time.Hour + time.Duration(s.rng.Intn(60))*time.Minute)

			kind := registrations.KindStudent
			var facultyID *uuid.UUID
			if s.rng.Float64() < 0.7 {
				id := facultyIDs[s.rng.Intn(len(facultyIDs))]
				facultyID = &id
			} else {
				kind = registrations.KindVisitor
			}

			status := statuses[s.rng.Intn(len(statuses))]
			amount := 0.0
			if status == registrations.PaymentPaid {
				amount = activity.DefaultPrice
			}

			participation := registrations.Participation{
				ID:            uuid.New(),
				FullName:      fullName,
				Kind:          kind,
				Amount:        amount,
				PaymentStatus: status,
				ActivityID:    activity.ID,
				FacultyID:     facultyID,
				CreatedAt:     createdAt,
			}
			if err := s.db.PostgreSQL.Create(&participation).Error; err != nil {
				return fmt.Errorf("failed to create participation: %w", err)
			}
			total++

			// occasionally re-register the same person a few hours later
			if s.rng.Float64() < 0.02 {
				dup := participation
				dup.ID = uuid.New()
				dup.CreatedAt = createdAt.Add(time.Duration(1+s.rng.Intn(5)) * time.Hour)
				if err := s.db.PostgreSQL.Create(&dup).Error; err != nil {
					return fmt.Errorf("failed to create duplicate participation: %w", err)
				}
				total++
			}
		}
	}

	// One oversized payment for the outlier detector
	outlier := registrations.Participation{
		ID:            uuid.New(),
		FullName:      "Emmanuel Kazadi",
		Kind:          registrations.KindVisitor,
		Amount:        95000,
		PaymentStatus: registrations.PaymentPaid,
		ActivityID:    activities[0].ID,
		CreatedAt:     time.Now().AddDate(0, 0, -2),
	}
	if err := s.db.PostgreSQL.Create(&outlier).Error; err != nil {
		return fmt.Errorf("failed to create outlier participation: %w", err)
	}
	total++

	fmt.Printf("    ✅ Created %d participations\n", total)
	return nil
}
