package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	"github.com/turnord/TurnORD-SchedulingService/pkg/dbmetrics"
	"github.com/turnord/TurnORD-SchedulingService/pkg/psqlbuilder"
	"github.com/turnord/TurnORD-SchedulingService/pkg/types"
)

const appointmentColumns = `id, business_id, barber_id, service_id,
	service_name, service_price, service_duration_minutes,
	client_name, client_phone, client_email,
	appointment_date, start_time, status,
	in_service_since, attended_at, cancelled_at,
	amount, payment_method, notes, created_at, updated_at`

// Repository репозиторий записей клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись.
// Если в контексте передана активная транзакция, использует её -
// это обязательно при создании с проверкой занятости слота.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"business_id",
			"barber_id",
			"service_id",
			"service_name",
			"service_price",
			"service_duration_minutes",
			"client_name",
			"client_phone",
			"client_email",
			"appointment_date",
			"start_time",
			"status",
			"notes",
		).
		Values(
			appt.BusinessID,
			appt.BarberID,
			appt.ServiceID,
			appt.ServiceName,
			appt.ServicePrice,
			appt.ServiceDurationMinutes,
			appt.ClientName,
			appt.ClientPhone,
			appt.ClientEmail,
			appt.Date,
			appt.StartTime,
			appt.Status,
			appt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// GetByBarberAndDate получает записи мастера на конкретную дату.
// Внутри транзакции добавляет FOR UPDATE, чтобы параллельное создание
// записей на ту же дату сериализовалось.
func (r *Repository) GetByBarberAndDate(ctx context.Context, barberID int64, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns).
		From("appointments").
		Where(squirrel.Eq{"barber_id": barberID}).
		Where(squirrel.Eq{"appointment_date": date}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBarberAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBarberAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// GetByBusinessWithFilter получает записи бизнеса с гибкой фильтрацией:
// по мастеру, услуге, периоду и статусу. Без явного статуса отмененные
// записи исключаются, если не запрошено IncludeInactive.
func (r *Repository) GetByBusinessWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns).
		From("appointments").
		Where(squirrel.Eq{"business_id": filter.BusinessID})

	if filter.BarberID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"barber_id": *filter.BarberID})
	}
	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	// Для конкретной даты сортируем по времени, иначе - сначала новые
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("appointment_date DESC, start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// CountAtSlot подсчитывает активные записи мастера на точное стартовое время.
// excludeID исключает запись из подсчета (используется при переносе).
func (r *Repository) CountAtSlot(ctx context.Context, barberID int64, date time.Time, start types.TimeString, excludeID *int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{"barber_id": barberID}).
		Where(squirrel.Eq{"appointment_date": date}).
		Where(squirrel.Eq{"start_time": start}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountAtSlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountAtSlot - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Reschedule переносит запись на другой слот (и, опционально, другого мастера/услугу)
func (r *Repository) Reschedule(ctx context.Context, appt *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("barber_id", appt.BarberID).
		Set("service_id", appt.ServiceID).
		Set("service_name", appt.ServiceName).
		Set("service_price", appt.ServicePrice).
		Set("service_duration_minutes", appt.ServiceDurationMinutes).
		Set("appointment_date", appt.Date).
		Set("start_time", appt.StartTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": appt.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Reschedule")
}

// StartService переводит запись в статус in_service
func (r *Repository) StartService(ctx context.Context, id int64, durationMinutes int, since time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusInService).
		Set("service_duration_minutes", durationMinutes).
		Set("in_service_since", since).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: StartService - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "StartService")
}

// Checkout завершает запись: статус attended, сумма и способ оплаты
func (r *Repository) Checkout(ctx context.Context, id int64, amount float64, method domain.PaymentMethod, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusAttended).
		Set("amount", amount).
		Set("payment_method", method).
		Set("attended_at", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Checkout - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Checkout")
}

// Cancel отменяет запись
func (r *Repository) Cancel(ctx context.Context, id int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// CountActiveByBarber подсчитывает незавершенные записи мастера.
// Используется для запрета удаления мастера с живыми записями.
func (r *Repository) CountActiveByBarber(ctx context.Context, barberID int64) (int, error) {
	return r.countActive(ctx, squirrel.Eq{"barber_id": barberID}, "CountActiveByBarber")
}

// CountActiveByService подсчитывает незавершенные записи на услугу
func (r *Repository) CountActiveByService(ctx context.Context, serviceID int64) (int, error) {
	return r.countActive(ctx, squirrel.Eq{"service_id": serviceID}, "CountActiveByService")
}

func (r *Repository) countActive(ctx context.Context, cond squirrel.Eq, op string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("appointments").
		Where(cond).
		Where(squirrel.NotEq{"status": []string{
			string(domain.StatusAttended),
			string(domain.StatusCancelled),
		}}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %s - scan count: %v", ErrScanRow, op, err)
	}

	return count, nil
}

// StatsRow агрегаты по записям бизнеса за период
type StatsRow struct {
	Total     int
	Attended  int
	Cancelled int
	InService int
	Upcoming  int
	Revenue   float64
}

// GetStats считает агрегаты по записям бизнеса за период
func (r *Repository) GetStats(ctx context.Context, businessID int64, from, to time.Time) (*StatsRow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*)",
		fmt.Sprintf("COUNT(*) FILTER (WHERE status = '%s')", domain.StatusAttended),
		fmt.Sprintf("COUNT(*) FILTER (WHERE status = '%s')", domain.StatusCancelled),
		fmt.Sprintf("COUNT(*) FILTER (WHERE status = '%s')", domain.StatusInService),
		fmt.Sprintf("COUNT(*) FILTER (WHERE status IN ('%s', '%s', '%s'))",
			domain.StatusCreated, domain.StatusScheduled, domain.StatusConfirmed),
		"COALESCE(SUM(amount) FILTER (WHERE status = 'attended'), 0)",
	).
		From("appointments").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.GtOrEq{"appointment_date": from}).
		Where(squirrel.LtOrEq{"appointment_date": to}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStats - build select query: %v", ErrBuildQuery, err)
	}

	var stats StatsRow
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.Total,
		&stats.Attended,
		&stats.Cancelled,
		&stats.InService,
		&stats.Upcoming,
		&stats.Revenue,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStats - scan stats: %v", ErrScanRow, err)
	}

	return &stats, nil
}

// BeginTx начинает новую транзакцию и возвращает контекст с ней
func (r *Repository) BeginTx(ctx context.Context, opts *sql.TxOptions) (context.Context, TxExecutor, error) {
	if txBeginner, ok := r.db.(TxBeginner); ok {
		tx, err := txBeginner.BeginTx(ctx, opts)
		if err != nil {
			return ctx, nil, fmt.Errorf("%w: BeginTx: %v", ErrTransaction, err)
		}
		return dbmetrics.WithTx(ctx, tx), tx, nil
	}

	// Fallback для обычного *sql.DB
	if db, ok := r.db.(*sql.DB); ok {
		tx, err := db.BeginTx(ctx, opts)
		if err != nil {
			return ctx, nil, fmt.Errorf("%w: BeginTx: %v", ErrTransaction, err)
		}
		wrappedTx := &dbmetrics.SqlTxWrapper{Tx: tx}
		return dbmetrics.WithTx(ctx, wrappedTx), wrappedTx, nil
	}

	return ctx, nil, fmt.Errorf("%w: db type not supported", ErrTransaction)
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.BusinessID,
		&appt.BarberID,
		&appt.ServiceID,
		&appt.ServiceName,
		&appt.ServicePrice,
		&appt.ServiceDurationMinutes,
		&appt.ClientName,
		&appt.ClientPhone,
		&appt.ClientEmail,
		&appt.Date,
		&appt.StartTime,
		&appt.Status,
		&appt.InServiceSince,
		&appt.AttendedAt,
		&appt.CancelledAt,
		&appt.Amount,
		&appt.PaymentMethod,
		&appt.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
