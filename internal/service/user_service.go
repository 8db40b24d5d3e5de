package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/guoguo/blog-backend/internal/db"
)

// UserService 提供文章核心所需的用户身份查询。
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a UserService instance.
func NewUserService(gdb *gorm.DB) *UserService {
	return &UserService{db: gdb}
}

// GetUser 按 id 返回用户公开信息。
func (s *UserService) GetUser(id uint) (*AuthorDTO, error) {
	var user db.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	dto := toAuthorDTO(user)
	return &dto, nil
}
