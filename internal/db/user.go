package db

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User 定义了用户模型。认证本身由上游网关负责，这里只保留
// 文章作者与互动关系所需的身份信息。
type User struct {
	ID          uint   `gorm:"primaryKey"`
	Username    string `gorm:"size:50;uniqueIndex;not null"`
	Password    string `gorm:"size:100;not null"`
	Email       string `gorm:"size:100"`
	DisplayName string `gorm:"size:50"`
	AvatarURL   string `gorm:"size:500"`
	Bio         string `gorm:"size:500"`
	Roles       string `gorm:"size:200"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RoleList 拆分逗号分隔的角色编码。
func (u User) RoleList() []string {
	if strings.TrimSpace(u.Roles) == "" {
		return []string{}
	}
	parts := strings.Split(u.Roles, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			roles = append(roles, trimmed)
		}
	}
	return roles
}

// EnsureUser 存在性检查：若提供的用户名与密码均非空且不存在对应账号，
// 则创建一个 bcrypt 哈希的用户。
func EnsureUser(gdb *gorm.DB, username, password string) error {
	trimmedUser := strings.TrimSpace(username)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedUser == "" || trimmedPassword == "" {
		return nil
	}

	var existing User
	if err := gdb.Where("username = ?", trimmedUser).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		return gdb.Create(&User{Username: trimmedUser, Password: string(hashed), DisplayName: trimmedUser}).Error
	}

	return nil
}
