package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/fpams-go-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Department{},
		&models.User{},
		&models.Subject{},
		&models.Activity{},
		&models.TeachingScore{},
		&models.AuditLog{},
		&models.Feedback{},
		&models.ExamResult{},
	))
	return db
}

func seedFaculty(t *testing.T, db *gorm.DB, email string, departmentID uint, deleted bool) models.User {
	t.Helper()
	user := models.User{
		Name:         "Faculty " + email,
		Email:        email,
		Role:         models.RoleFaculty,
		DepartmentID: &departmentID,
		IsDeleted:    deleted,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}
