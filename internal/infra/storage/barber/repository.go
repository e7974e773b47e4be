package barber

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

const barberColumns = `id, business_id, name, phone, photo_url,
	work_start, work_end, break_start, break_end, break_padding_minutes,
	work_days, is_active, created_at, updated_at`

// Repository репозиторий мастеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового мастера
func (r *Repository) Create(ctx context.Context, barber *domain.Barber) (*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("barbers").
		Columns(
			"business_id",
			"name",
			"phone",
			"photo_url",
			"work_start",
			"work_end",
			"break_start",
			"break_end",
			"break_padding_minutes",
			"work_days",
			"is_active",
		).
		Values(
			barber.BusinessID,
			barber.Name,
			barber.Phone,
			barber.PhotoURL,
			barber.WorkStart,
			barber.WorkEnd,
			barber.BreakStart,
			barber.BreakEnd,
			barber.BreakPaddingMinutes,
			pq.Array(toInt64s(barber.WorkDays)),
			barber.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&barber.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	barber.CreatedAt = createdAt.Time
	barber.UpdatedAt = updatedAt.Time

	return barber, nil
}

// GetByID получает мастера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(barberColumns).
		From("barbers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	barber, err := scanBarber(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBarberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan barber: %v", ErrScanRow, err)
	}

	return barber, nil
}

// ListByBusiness получает мастеров бизнеса.
// По умолчанию только активных, includeInactive добавляет отключенных.
func (r *Repository) ListByBusiness(ctx context.Context, businessID int64, includeInactive bool) ([]*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(barberColumns).
		From("barbers").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("name ASC")

	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	barbers := make([]*domain.Barber, 0)
	for rows.Next() {
		barber, err := scanBarber(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBusiness - scan row: %v", ErrScanRow, err)
		}
		barbers = append(barbers, barber)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - rows error: %v", ErrScanRow, err)
	}

	return barbers, nil
}

// Update обновляет профиль и расписание мастера
func (r *Repository) Update(ctx context.Context, barber *domain.Barber) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("barbers").
		Set("name", barber.Name).
		Set("phone", barber.Phone).
		Set("photo_url", barber.PhotoURL).
		Set("work_start", barber.WorkStart).
		Set("work_end", barber.WorkEnd).
		Set("break_start", barber.BreakStart).
		Set("break_end", barber.BreakEnd).
		Set("break_padding_minutes", barber.BreakPaddingMinutes).
		Set("work_days", pq.Array(toInt64s(barber.WorkDays))).
		Set("is_active", barber.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": barber.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBarberNotFound
	}

	return nil
}

// Delete удаляет мастера. Сервис обязан заранее проверить,
// что на мастера нет незавершенных записей.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("barbers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBarberNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBarber(row rowScanner) (*domain.Barber, error) {
	var barber domain.Barber
	var workDays pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&barber.ID,
		&barber.BusinessID,
		&barber.Name,
		&barber.Phone,
		&barber.PhotoURL,
		&barber.WorkStart,
		&barber.WorkEnd,
		&barber.BreakStart,
		&barber.BreakEnd,
		&barber.BreakPaddingMinutes,
		&workDays,
		&barber.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	barber.WorkDays = toInts(workDays)
	barber.CreatedAt = createdAt.Time
	barber.UpdatedAt = updatedAt.Time

	return &barber, nil
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
