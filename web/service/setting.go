package service

import (
	"strconv"
	"time"

	"github.com/blindhunter/blindhunter/caching"
	"github.com/blindhunter/blindhunter/config"
	"github.com/blindhunter/blindhunter/database"
	"github.com/blindhunter/blindhunter/database/model"
	"github.com/blindhunter/blindhunter/logger"
	"github.com/blindhunter/blindhunter/util/common"
	"github.com/blindhunter/blindhunter/util/random"
)

var defaultValueMap = map[string]string{
	"secret":        random.Seq(32),
	"sessionMaxAge": "0",
	"timeLocation":  "Local",
}

var settingCache = caching.NewCache()

// FlushSettingCache drops every cached setting. Call it after switching
// the underlying database.
func FlushSettingCache() {
	settingCache.Flush()
}

// SettingService reads and writes the key/value settings table.
type SettingService struct{}

func (s *SettingService) getSetting(key string) (*model.Setting, error) {
	db := database.GetDB()
	setting := &model.Setting{}
	err := db.Model(model.Setting{}).Where(&model.Setting{Key: key}).First(setting).Error
	if err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *SettingService) saveSetting(key string, value string) error {
	setting, err := s.getSetting(key)
	db := database.GetDB()
	if database.IsNotFound(err) {
		return db.Create(&model.Setting{
			Key:   key,
			Value: value,
		}).Error
	} else if err != nil {
		return err
	}
	setting.Value = value
	return db.Save(setting).Error
}

func (s *SettingService) saveCachedSetting(key string, value string) error {
	settingCache.Delete(key)
	return s.saveSetting(key, value)
}

func (s *SettingService) getString(key string) (string, error) {
	if value, ok := settingCache.GetString(key); ok {
		return value, nil
	}
	setting, err := s.getSetting(key)
	if database.IsNotFound(err) {
		value, ok := defaultValueMap[key]
		if !ok {
			return "", common.NewErrorf("key <%v> not in defaultValueMap", key)
		}
		return value, nil
	} else if err != nil {
		return "", err
	}
	settingCache.SetString(key, setting.Value)
	return setting.Value, nil
}

func (s *SettingService) getInt(key string) (int, error) {
	str, err := s.getString(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(str)
}

// GetSecret returns the session signing secret. BH_SESSION_SECRET wins;
// otherwise the stored secret is used, generating and persisting one on
// first use so sessions survive restarts.
func (s *SettingService) GetSecret() ([]byte, error) {
	if secret := config.GetSessionSecret(); secret != "" {
		return []byte(secret), nil
	}
	secret, err := s.getString("secret")
	if err != nil {
		return nil, err
	}
	if secret == defaultValueMap["secret"] {
		if err := s.saveCachedSetting("secret", secret); err != nil {
			logger.Warning("save secret failed:", err)
		}
	}
	return []byte(secret), nil
}

// GetSessionMaxAge returns the session cookie lifetime in minutes; 0 keeps
// the cookie for the browser session.
func (s *SettingService) GetSessionMaxAge() (int, error) {
	return s.getInt("sessionMaxAge")
}

func (s *SettingService) SetSessionMaxAge(minutes int) error {
	return s.saveCachedSetting("sessionMaxAge", strconv.Itoa(minutes))
}

func (s *SettingService) GetTimeLocation() (*time.Location, error) {
	l, err := s.getString("timeLocation")
	if err != nil {
		return nil, err
	}
	location, err := time.LoadLocation(l)
	if err != nil {
		defaultLocation := defaultValueMap["timeLocation"]
		logger.Errorf("location <%v> not exist, using default location: %v", l, defaultLocation)
		return time.LoadLocation(defaultLocation)
	}
	return location, nil
}
