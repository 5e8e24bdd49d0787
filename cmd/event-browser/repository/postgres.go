package repository

import (
	"context"
	"event-browser-backend/cmd/event-browser/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresRepo stores entries through gorm in the storage_entries table.
type PostgresRepo struct {
	db *gorm.DB
}

func NewPostgresRepo(db *gorm.DB) *PostgresRepo {
	return &PostgresRepo{
		db: db,
	}
}

func (r *PostgresRepo) Migrate(ctx context.Context) error {
	return r.db.
		WithContext(ctx).
		AutoMigrate(&model.Entry{})
}

func (r *PostgresRepo) Get(ctx context.Context, key string) (string, bool, error) {

	var entries []model.Entry

	result := r.db.
		WithContext(ctx).
		Model(&model.Entry{}).
		Where("name = ?", key).
		Find(&entries)

	if result.Error != nil {
		return "", false, result.Error
	}

	if len(entries) == 0 {
		return "", false, nil
	}

	return entries[0].Value, true, nil
}

func (r *PostgresRepo) Set(ctx context.Context, key, value string) error {

	entry := model.Entry{
		Name:       key,
		Value:      value,
		UpdateDate: time.Now().UTC(),
	}

	result := r.db.
		WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "update_date"}),
		}).
		Create(&entry)

	return result.Error
}

func (r *PostgresRepo) Remove(ctx context.Context, key string) error {

	result := r.db.
		WithContext(ctx).
		Where("name = ?", key).
		Delete(&model.Entry{})

	return result.Error
}

func (r *PostgresRepo) Ping(ctx context.Context) error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}

	return db.PingContext(ctx)
}

func (r *PostgresRepo) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
