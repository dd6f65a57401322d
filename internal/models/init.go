package models

import (
	"errors"

	"github.com/redutron/backend/internal/constants"
	"github.com/redutron/backend/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InitDefaultAdmin 初始化默认管理员账号
func InitDefaultAdmin(username, password string) error {
	var count int64
	DB.Model(&Admin{}).Count(&count)
	if count > 0 {
		return nil
	}

	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := Admin{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "username", username, "password", password)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_admin_created", "username", username, "password_hidden", true)
	}

	return nil
}

// EnsureDefaultSettings 写入缺失的默认税率/费率设置
func EnsureDefaultSettings() error {
	defaults := map[string]string{
		constants.SettingKeyTaxPct:     constants.DefaultTaxPct,
		constants.SettingKeyExpensePct: constants.DefaultExpensePct,
	}
	for key, value := range defaults {
		var existing Setting
		err := DB.Where("key = ?", key).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := DB.Create(&Setting{Key: key, Value: value}).Error; err != nil {
			return err
		}
		logger.Infow("default_setting_seeded", "key", key, "value", value)
	}
	return nil
}
