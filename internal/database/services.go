package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"salonbook/internal/models"

	"github.com/google/uuid"
)

// GetServices returns the whole catalog ordered by display rank.
func (db *DB) GetServices(ctx context.Context) ([]models.Service, error) {
	query := `SELECT id, name, description, duration_minutes, price, category, display_order, created_at
              FROM services ORDER BY display_order, id`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get services: %w", err)
	}
	defer rows.Close()

	var services []models.Service
	for rows.Next() {
		var s models.Service
		var description sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &description, &s.DurationMinutes, &s.Price, &s.Category, &s.DisplayOrder, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		s.Description = description.String
		services = append(services, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read services: %w", err)
	}

	return services, nil
}

func (db *DB) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	query := `SELECT id, name, description, duration_minutes, price, category, display_order, created_at
              FROM services WHERE id = ?`

	var s models.Service
	var description sql.NullString
	err := db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Name, &description, &s.DurationMinutes, &s.Price, &s.Category, &s.DisplayOrder, &s.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service by id: %w", err)
	}
	s.Description = description.String
	return &s, nil
}

// CreateService inserts a catalog row, assigning an id when absent. Used by
// the seed script; the API never writes services.
func (db *DB) CreateService(ctx context.Context, service *models.Service) error {
	if service.ID == "" {
		service.ID = uuid.NewString()
	}

	query := `INSERT INTO services (id, name, description, duration_minutes, price, category, display_order)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query,
		service.ID,
		service.Name,
		nullableString(service.Description),
		service.DurationMinutes,
		service.Price,
		service.Category,
		service.DisplayOrder,
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

// UpdateService overwrites an existing catalog row.
func (db *DB) UpdateService(ctx context.Context, service *models.Service) error {
	query := `UPDATE services SET name = ?, description = ?, duration_minutes = ?, price = ?, category = ?, display_order = ?
              WHERE id = ?`
	result, err := db.ExecContext(ctx, query,
		service.Name,
		nullableString(service.Description),
		service.DurationMinutes,
		service.Price,
		service.Category,
		service.DisplayOrder,
		service.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
