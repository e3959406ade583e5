package db

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"waste_tracker/internal/domain"
)

func TestUsersTable_UsernameIsCaseSensitive(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	// A binary collation makes both the unique index and username lookups compare case
	mock.ExpectExec("(?s)CREATE TABLE `users`.*" +
		regexp.QuoteMeta("`username` varchar(80) COLLATE utf8mb4_bin NOT NULL") +
		".*" + regexp.QuoteMeta("UNIQUE INDEX `idx_users_username` (`username`)")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, gdb.Migrator().CreateTable(&domain.User{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
