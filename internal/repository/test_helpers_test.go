package repository_test

import (
	"database/sql"
	"fmt"
	"time"
)

func insertTestService(db *sql.DB, name string, isActive bool) (int64, error) {
	var id int64
	query := `
		INSERT INTO ai_services (name, display_name, api_url, is_active, is_available)
		VALUES ($1, $2, 'https://example.test/v1', $3, TRUE)
		RETURNING id
	`

	err := db.QueryRow(query, name, name, isActive).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert test service: %w", err)
	}

	return id, nil
}

func insertTestModel(db *sql.DB, serviceID int64, name string, isActive, isDefault bool) (int64, error) {
	var id int64
	query := `
		INSERT INTO ai_models (ai_service_id, name, display_name, provider, is_active, is_default)
		VALUES ($1, $2, $2, 'openai', $3, $4)
		RETURNING id
	`

	err := db.QueryRow(query, serviceID, name, isActive, isDefault).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert test model: %w", err)
	}

	return id, nil
}

type testKey struct {
	serviceID         int64
	name              string
	maxUsagePerDay    *int
	currentDailyUsage int
	lastUsageDate     *time.Time
	isActive          bool
	isAvailable       bool
	priority          int
}

func insertTestKey(db *sql.DB, k testKey) (int64, error) {
	var id int64
	query := `
		INSERT INTO ai_api_keys (ai_service_id, name, api_key, max_usage_per_day,
			current_daily_usage, last_usage_date, is_active, is_available, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	apiKey := fmt.Sprintf("sk-test-%s", k.name)
	err := db.QueryRow(query, k.serviceID, k.name, apiKey, k.maxUsagePerDay,
		k.currentDailyUsage, k.lastUsageDate, k.isActive, k.isAvailable, k.priority).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert test key: %w", err)
	}

	return id, nil
}

func insertTestUser(db *sql.DB, externalID, provider string) (int64, error) {
	var id int64
	query := `
		INSERT INTO users (external_id, provider)
		VALUES ($1, $2)
		RETURNING id
	`

	err := db.QueryRow(query, externalID, provider).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert test user: %w", err)
	}

	return id, nil
}

func insertProcessedExchange(db *sql.DB, userID int64, response string, processedAt time.Time) (int64, error) {
	var id int64
	query := `
		INSERT INTO exchanges (user_id, provider, message_type, content, ai_service,
			ai_response, processed_at, raw_payload)
		VALUES ($1, 'bale', 'text', 'hello', 'openrouter', $2, $3, '{}'::jsonb)
		RETURNING id
	`

	err := db.QueryRow(query, userID, response, processedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert processed exchange: %w", err)
	}

	return id, nil
}
