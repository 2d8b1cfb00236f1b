package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/fpams-go-api/internal/models"
)

// UserRepository reads the user directory. The workflow core only consults
// it; account CRUD lives in the admin surface outside this service.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (models.User, error)
	ListByIDs(ctx context.Context, ids []uint) ([]models.User, error)
	ListFaculty(ctx context.Context, departmentID *uint) ([]models.User, error)
	ListDepartments(ctx context.Context) ([]models.Department, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs the user directory repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (r *userRepository) ListByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var users []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) ListFaculty(ctx context.Context, departmentID *uint) ([]models.User, error) {
	query := r.db.WithContext(ctx).Model(&models.User{}).
		Where("role = ?", models.RoleFaculty).
		Where("is_deleted = ?", false)

	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	}

	var users []models.User
	if err := query.Order("name ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) ListDepartments(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&departments).Error; err != nil {
		return nil, err
	}

	return departments, nil
}
