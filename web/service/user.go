package service

import (
	"errors"

	"github.com/blindhunter/blindhunter/database"
	"github.com/blindhunter/blindhunter/database/model"
	"github.com/blindhunter/blindhunter/logger"
	"github.com/blindhunter/blindhunter/util/crypto"
)

// UserService handles registration and credential checks.
type UserService struct{}

func (s *UserService) GetUserByUsername(username string) (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	err := db.Model(model.User{}).
		Where("username = ?", username).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// Register creates a user with a bcrypt-hashed password. It returns
// ErrUsernameTaken when the username is already registered.
func (s *UserService) Register(username string, password string) (*model.User, error) {
	if _, err := s.GetUserByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Password: hashedPassword,
	}
	err = database.GetDB().Create(user).Error
	if database.IsDuplicatedKey(err) {
		// lost a race with a concurrent registration
		return nil, ErrUsernameTaken
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// CheckUser returns the user when username and password match, nil otherwise.
func (s *UserService) CheckUser(username string, password string) *model.User {
	user, err := s.GetUserByUsername(username)
	if errors.Is(err, ErrNotFound) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}
	return user
}

// UpdatePassword replaces the password of an existing user.
func (s *UserService) UpdatePassword(username string, password string) error {
	if password == "" {
		return errors.New("password can not be empty")
	}
	user, err := s.GetUserByUsername(username)
	if err != nil {
		return err
	}
	hashedPassword, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}
	return database.GetDB().Model(user).Update("password", hashedPassword).Error
}
