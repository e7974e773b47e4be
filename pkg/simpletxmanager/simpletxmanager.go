// Package simpletxmanager менеджер транзакций для чистого *sql.DB
// (вариант без сбора метрик).
package simpletxmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/turnord/TurnORD-SchedulingService/pkg/dbmetrics"
)

// Сбой сериализации повторяется ограниченное число раз:
// конкурирующая транзакция уже закоммитилась, повтор увидит ее результат
const maxSerializationRetries = 3

// TransactionManager выполняет функции в рамках транзакции над *sql.DB
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, nil, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE с повтором
// при сбое сериализации (40001) или дедлоке (40P01)
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}
	return withSerializationRetry(ctx, func() error {
		return m.do(ctx, opts, fn)
	})
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) do(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("simpletxmanager: begin transaction: %w", err)
	}

	txCtx := dbmetrics.WithTx(ctx, &dbmetrics.SqlTxWrapper{Tx: tx})

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("simpletxmanager: rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("simpletxmanager: commit transaction: %w", err)
	}

	return nil
}

// withSerializationRetry повторяет attempt, пока тот падает со сбоем
// сериализации, но не больше maxSerializationRetries раз
func withSerializationRetry(ctx context.Context, attempt func() error) error {
	var err error
	for i := 0; i < maxSerializationRetries; i++ {
		err = attempt()
		if err == nil || !isSerializationFailure(err) || ctx.Err() != nil {
			return err
		}
	}
	return err
}

// isSerializationFailure возвращает true для ошибок postgres,
// при которых повтор транзакции имеет смысл
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "40001" || pqErr.Code == "40P01"
}
