package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	"github.com/turnord/TurnORD-SchedulingService/pkg/dbmetrics"
	"github.com/turnord/TurnORD-SchedulingService/pkg/psqlbuilder"
)

const reminderColumns = `id, appointment_id, kind, fire_at, sent_at, created_at`

// Repository репозиторий очереди напоминаний
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория напоминаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create ставит напоминание в очередь
func (r *Repository) Create(ctx context.Context, rem *domain.Reminder) (*domain.Reminder, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("scheduled_reminders").
		Columns("appointment_id", "kind", "fire_at").
		Values(rem.AppointmentID, rem.Kind, rem.FireAt).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&rem.ID, &rem.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return rem, nil
}

// GetDue возвращает неотправленные напоминания, чье время наступило.
// FOR UPDATE SKIP LOCKED защищает от двойной отправки при нескольких инстансах.
func (r *Repository) GetDue(ctx context.Context, now time.Time, limit int) ([]*domain.Reminder, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reminderColumns).
		From("scheduled_reminders").
		Where(squirrel.Eq{"sent_at": nil}).
		Where(squirrel.LtOrEq{"fire_at": now}).
		OrderBy("fire_at ASC").
		Limit(uint64(limit))

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE SKIP LOCKED")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDue - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDue - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reminders := make([]*domain.Reminder, 0)
	for rows.Next() {
		var rem domain.Reminder
		err := rows.Scan(
			&rem.ID,
			&rem.AppointmentID,
			&rem.Kind,
			&rem.FireAt,
			&rem.SentAt,
			&rem.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetDue - scan row: %v", ErrScanRow, err)
		}
		reminders = append(reminders, &rem)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetDue - rows error: %v", ErrScanRow, err)
	}

	return reminders, nil
}

// MarkSent помечает напоминание отправленным
func (r *Repository) MarkSent(ctx context.Context, id int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("scheduled_reminders").
		Set("sent_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkSent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkSent - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkSent - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReminderNotFound
	}

	return nil
}

// DeleteByAppointment снимает все неотправленные напоминания записи.
// Вызывается при отмене, переносе и завершении записи.
func (r *Repository) DeleteByAppointment(ctx context.Context, appointmentID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("scheduled_reminders").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		Where(squirrel.Eq{"sent_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByAppointment - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByAppointment - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteStale удаляет напоминания, пропустившие свое окно больше чем на maxAge
func (r *Repository) DeleteStale(ctx context.Context, now time.Time, maxAge time.Duration) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("scheduled_reminders").
		Where(squirrel.Eq{"sent_at": nil}).
		Where(squirrel.Lt{"fire_at": now.Add(-maxAge)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteStale - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteStale - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteStale - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}
