package services

import (
	"context"
	"fmt"
	"strings"

	"minibank/internal/models"
	"minibank/internal/utils"
)

const maxLoginLength = 20

type UserService struct {
	store Store
	uow   UnitOfWork
}

func NewUserService(store Store, uow UnitOfWork) *UserService {
	return &UserService{store: store, uow: uow}
}

func validateUser(user *models.User) error {
	switch {
	case user.Login == "":
		return ErrEmptyLogin
	case strings.Contains(user.Login, " "):
		return ErrLoginWithSpaces
	case len([]rune(user.Login)) > maxLoginLength:
		return ErrLoginTooLong
	case user.Email == "":
		return ErrEmptyEmail
	case strings.Contains(user.Email, " "):
		return ErrEmailWithSpaces
	case !strings.Contains(user.Email, "@"):
		return ErrEmailFormat
	}
	return nil
}

func (s *UserService) CreateUser(ctx context.Context, user *models.User) error {
	utils.LogInfo("UserService", "%s", fmt.Sprintf("Создание пользователя: %s", user.Login))

	if err := validateUser(user); err != nil {
		utils.LogWarning("UserService", "%s", fmt.Sprintf("Пользователь %q не прошёл валидацию: %v", user.Login, err))
		return err
	}

	err := s.uow.Do(ctx, func(st Store) error {
		return st.Users().Create(ctx, user)
	})
	if err != nil {
		utils.LogError("UserService", "Ошибка создания пользователя", err)
		return err
	}

	utils.LogSuccess("UserService", "%s", fmt.Sprintf("Пользователь %s создан (ID: %d)", user.Login, user.ID))
	return nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		utils.LogWarning("UserService", "%s", fmt.Sprintf("Пользователь %d не найден", id))
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.store.Users().GetAll(ctx)
}

func (s *UserService) UpdateUser(ctx context.Context, user *models.User) error {
	utils.LogInfo("UserService", "%s", fmt.Sprintf("Обновление пользователя %d", user.ID))

	if err := validateUser(user); err != nil {
		return err
	}

	if _, err := s.store.Users().GetByID(ctx, user.ID); err != nil {
		return err
	}

	return s.uow.Do(ctx, func(st Store) error {
		return st.Users().Update(ctx, user)
	})
}

// DeleteUser удаляет пользователя. Пользователь со счетами
// (даже закрытыми) удалению не подлежит.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	utils.LogInfo("UserService", "%s", fmt.Sprintf("Удаление пользователя %d", id))

	if _, err := s.store.Users().GetByID(ctx, id); err != nil {
		return err
	}

	hasAccounts, err := s.store.Accounts().HasAccountsForUser(ctx, id)
	if err != nil {
		return err
	}
	if hasAccounts {
		utils.LogWarning("UserService", "%s", fmt.Sprintf("Пользователь %d имеет счета, удаление отклонено", id))
		return ErrDeleteUserWithAccounts
	}

	err = s.uow.Do(ctx, func(st Store) error {
		return st.Users().Delete(ctx, id)
	})
	if err != nil {
		utils.LogError("UserService", fmt.Sprintf("Ошибка удаления пользователя %d", id), err)
		return err
	}

	utils.LogSuccess("UserService", "%s", fmt.Sprintf("Пользователь %d удалён", id))
	return nil
}
