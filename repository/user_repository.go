package repository

import (
	"github.com/dhnushshetty/food-cart-jsf/entity"

	"gorm.io/gorm"
)

// UserRepository talks to the users table only.
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByUsername(username string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CountByUsernameOrEmail counts accounts clashing with either key.
func (r *UserRepository) CountByUsernameOrEmail(tx *gorm.DB, username, email string) (int64, error) {
	var count int64
	err := tx.Model(&entity.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count, err
}

func (r *UserRepository) Create(tx *gorm.DB, user *entity.User) error {
	return tx.Create(user).Error
}
