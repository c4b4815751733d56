package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/ysakata/member-api/config"
	"github.com/ysakata/member-api/internal/domain/entity"
	"github.com/ysakata/member-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	memberID := seedUser(db, "member@example.com", "password123", entity.RoleMember)
	if _, err := db.Exec(`
		INSERT INTO member_profiles (user_id, nickname, gender, birth_date, enrollment_date)
		VALUES ($1, $2, $3, $4, CURRENT_DATE)
		ON CONFLICT (user_id) DO NOTHING
	`, memberID, "demo member", int16(entity.GenderOther), "1990-01-01"); err != nil {
		log.Fatalf("failed to seed member profile: %v", err)
	}
	fmt.Printf("seeded member: id=%d email=member@example.com password=password123\n", memberID)

	adminID := seedUser(db, "admin@example.com", "password123", entity.RoleAdmin)
	fmt.Printf("seeded admin: id=%d email=admin@example.com password=password123\n", adminID)
}

func seedUser(db *sql.DB, email, password string, role entity.Role) int64 {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (email, password, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id
	`, email, hash, int16(role)).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	return id
}
