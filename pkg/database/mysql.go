package database

import (
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/onurcolak/blast-tracker/environments"
	"github.com/onurcolak/blast-tracker/pkg/logger"
)

func NewMySQLDB(cfg environments.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&collation=utf8mb4_unicode_ci",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName,
	)

	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Infof("Connected to MySQL database")
	return db, nil
}

func RunMigrations(db *sqlx.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS blast_recipients (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		message_id VARCHAR(128) NOT NULL,
		phone_number VARCHAR(32) NOT NULL,
		jid VARCHAR(128) NOT NULL,
		stage VARCHAR(16) NOT NULL DEFAULT 'sent',
		last_status VARCHAR(32),
		sent_at DATETIME NOT NULL,
		received_at DATETIME,
		read_at DATETIME,
		replied_at DATETIME,
		closed_at DATETIME,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_blast_recipients_message_id (message_id),
		INDEX idx_blast_recipients_jid (jid),
		INDEX idx_blast_recipients_stage (stage)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Infof("Database migrations completed")

	return nil
}

// SeedTestData fills an empty ledger with a small blast spread across every
// funnel stage, so the dashboard has something to draw.
func SeedTestData(db *sqlx.DB) error {
	var count int

	err := db.Get(&count, "SELECT COUNT(*) FROM blast_recipients")
	if err != nil {
		return err
	}

	if count > 0 {
		logger.Infof("Ledger already has %d recipients, skipping seed", count)
		return nil
	}

	seed := []struct {
		phoneNumber string
		stage       string
	}{
		{"60123456701", "sent"},
		{"60123456702", "sent"},
		{"60123456703", "received"},
		{"60123456704", "received"},
		{"60123456705", "received"},
		{"60123456706", "read"},
		{"60123456707", "read"},
		{"60123456708", "replied"},
		{"60123456709", "replied"},
		{"60123456710", "closed"},
	}

	sentAt := time.Now().Add(-time.Hour)
	for i, r := range seed {
		_, err := db.Exec(
			`INSERT INTO blast_recipients (message_id, phone_number, jid, stage, sent_at)
			 VALUES (?, ?, ?, ?, ?)`,
			fmt.Sprintf("SEED%04d", i+1), r.phoneNumber, r.phoneNumber+"@s.whatsapp.net", r.stage, sentAt,
		)
		if err != nil {
			return fmt.Errorf("failed to seed test data: %w", err)
		}
	}

	logger.Infof("Seeded %d blast recipients", len(seed))
	return nil
}
