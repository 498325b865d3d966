package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// runTx executes fn inside a transaction. A nil db runs fn without one, which
// keeps stub-backed unit tests simple. When fn fails the rollback error, if
// any, is joined to fn's error so nothing is lost.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) (err error) {
	if db == nil {
		return fn(nil)
	}
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	return tx.Commit().Error
}
