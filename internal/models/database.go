package models

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the database used by the backend.
var DB *gorm.DB

type HauskasseContext string

const (
	DBContextURL HauskasseContext = "hauskasse-backend-url"
)

// Connect opens the database and configures the connection.
//
// When DB_HOST is set, a postgresql database is used. Otherwise, the
// backend falls back to a sqlite database at the path passed as dsn.
func Connect(dsn string) error {
	var db *gorm.DB
	var err error

	config := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: &logger{
			Logger: log.Logger,
		},
	}

	if _, ok := os.LookupEnv("DB_HOST"); ok {
		log.Debug().Msg("DB_HOST is set, using postgresql")

		pgDSN := fmt.Sprintf("host=%s user=%s password=%s dbname=%s", os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))
		db, err = gorm.Open(postgres.Open(pgDSN), config)
	} else {
		log.Debug().Msg("DB_HOST is not set, using sqlite database")

		db, err = gorm.Open(sqlite.Open(fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)), config)
	}

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// This is done to prevent SQLITE_BUSY errors.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	// Query callbacks
	err = db.Callback().Query().After("*").Register("hauskasse:after_query", queryCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Query().After("*").Register("hauskasse:after_query_general", generalCallback)
	if err != nil {
		return err
	}

	// Create callbacks
	err = db.Callback().Create().After("*").Register("hauskasse:after_create", createUpdateCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Create().After("*").Register("hauskasse:after_create_general", generalCallback)
	if err != nil {
		return err
	}

	// Update callbacks
	err = db.Callback().Update().After("*").Register("hauskasse:after_update", createUpdateCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Update().After("*").Register("hauskasse:after_update_general", generalCallback)
	if err != nil {
		return err
	}

	// Delete callbacks
	err = db.Callback().Delete().After("*").Register("hauskasse:after_delete_general", generalCallback)
	if err != nil {
		return err
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	// Set the exported variable
	DB = db

	return nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		// and replace "_" with "[space]"
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// Replace pluralized "ies" with "y"
		match := regexp.MustCompile("ies$")
		name = match.ReplaceAllString(name, "y")

		// Remove plural "s"
		name = strings.TrimRight(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	db.Error = constraintError(db.Error)
}

// constraintError translates a constraint violation into a typed error.
// Postgres reports the constraint name, sqlite embeds the affected
// columns in the error message.
func constraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.ConstraintName {
		case "account_name_group_id":
			return ErrAccountNameNotUnique
		case "category_name_group_id":
			return ErrCategoryNameNotUnique
		case "budget_period_open":
			return ErrPeriodOverlap
		case "account_to_account_different":
			return ErrTransferAccountsIdentical
		}

		return err
	}

	msg := err.Error()

	// Account names must be unique per group
	if strings.Contains(msg, "UNIQUE constraint failed: accounts.group_id, accounts.name") {
		return ErrAccountNameNotUnique
	}

	// Category names must be unique per group
	if strings.Contains(msg, "UNIQUE constraint failed: categories.group_id, categories.name") {
		return ErrCategoryNameNotUnique
	}

	// Only one open budget period per user
	if strings.Contains(msg, "UNIQUE constraint failed: index 'budget_period_open'") || strings.Contains(msg, "UNIQUE constraint failed: budget_periods.user_id") {
		return ErrPeriodOverlap
	}

	// Source and destination accounts of a transfer need to be different
	if strings.Contains(msg, "CHECK constraint failed: account_to_account_different") {
		return ErrTransferAccountsIdentical
	}

	return err
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// Postgres errors that the create and update callbacks did not
	// translate to a typed error are server side problems too
	var pgErr *pgconn.PgError

	// "sql: database is closed" is hard-coded in the sql module, see
	// https://cs.opensource.google/go/go/+/master:src/database/sql/sql.go;l=1298;drc=0d018b49e33b1383dc0ae5cc968e800dffeeaf7d
	if db.Error.Error() == "sql: database is closed" || errors.As(db.Error, &pgErr) || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) {
		// A general error where we cannot provide more useful information to the end user
		// We log the error and provide a general error message so that server admins can debug
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral

		return
	}
}

// DateTimeSort wraps a timestamp column for use in ORDER BY clauses.
// sqlite stores timestamps as text, wrapping them in datetime() makes
// mixed formats compare chronologically. Other databases order
// timestamp columns natively.
func DateTimeSort(db *gorm.DB, column string) string {
	if db.Dialector.Name() == "sqlite" {
		return fmt.Sprintf("datetime(%s)", column)
	}

	return column
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(Group{}, User{}, Account{}, Category{}, Transaction{}, Budget{}, BudgetPeriod{}, RecurringTransaction{}, Investment{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
