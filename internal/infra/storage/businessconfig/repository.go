package businessconfig

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	"github.com/turnord/TurnORD-SchedulingService/pkg/dbmetrics"
	"github.com/turnord/TurnORD-SchedulingService/pkg/psqlbuilder"
)

const configColumns = `id, business_id, business_name, contact_phone, address,
	default_work_start, default_work_end, default_work_days,
	slot_duration_minutes, max_concurrent_per_slot, advance_booking_days,
	reminders_enabled, created_at, updated_at`

// Repository репозиторий конфигурации бизнеса
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBusinessID получает конфигурацию бизнеса
func (r *Repository) GetByBusinessID(ctx context.Context, businessID int64) (*domain.BusinessConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns).
		From("business_configs").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - build select query: %v", ErrBuildQuery, err)
	}

	cfg, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - scan config: %v", ErrScanRow, err)
	}

	return cfg, nil
}

// Upsert создает или обновляет конфигурацию бизнеса.
// Конфигурация одна на бизнес (unique по business_id).
func (r *Repository) Upsert(ctx context.Context, cfg *domain.BusinessConfig) (*domain.BusinessConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("business_configs").
		Columns(
			"business_id",
			"business_name",
			"contact_phone",
			"address",
			"default_work_start",
			"default_work_end",
			"default_work_days",
			"slot_duration_minutes",
			"max_concurrent_per_slot",
			"advance_booking_days",
			"reminders_enabled",
		).
		Values(
			cfg.BusinessID,
			cfg.BusinessName,
			cfg.ContactPhone,
			cfg.Address,
			cfg.DefaultWorkStart,
			cfg.DefaultWorkEnd,
			pq.Array(toInt64s(cfg.DefaultWorkDays)),
			cfg.SlotDurationMinutes,
			cfg.MaxConcurrentPerSlot,
			cfg.AdvanceBookingDays,
			cfg.RemindersEnabled,
		).
		Suffix(`ON CONFLICT (business_id) DO UPDATE SET
			business_name = EXCLUDED.business_name,
			contact_phone = EXCLUDED.contact_phone,
			address = EXCLUDED.address,
			default_work_start = EXCLUDED.default_work_start,
			default_work_end = EXCLUDED.default_work_end,
			default_work_days = EXCLUDED.default_work_days,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			max_concurrent_per_slot = EXCLUDED.max_concurrent_per_slot,
			advance_booking_days = EXCLUDED.advance_booking_days,
			reminders_enabled = EXCLUDED.reminders_enabled,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConfig(row rowScanner) (*domain.BusinessConfig, error) {
	var cfg domain.BusinessConfig
	var workDays pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&cfg.ID,
		&cfg.BusinessID,
		&cfg.BusinessName,
		&cfg.ContactPhone,
		&cfg.Address,
		&cfg.DefaultWorkStart,
		&cfg.DefaultWorkEnd,
		&workDays,
		&cfg.SlotDurationMinutes,
		&cfg.MaxConcurrentPerSlot,
		&cfg.AdvanceBookingDays,
		&cfg.RemindersEnabled,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	cfg.DefaultWorkDays = toInts(workDays)
	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

func toInt64s(days []int) []int64 {
	result := make([]int64, len(days))
	for i, d := range days {
		result[i] = int64(d)
	}
	return result
}

func toInts(days pq.Int64Array) []int {
	result := make([]int, len(days))
	for i, d := range days {
		result[i] = int(d)
	}
	return result
}
