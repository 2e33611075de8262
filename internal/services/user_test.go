package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"minibank/internal/models"
)

func newUserFixture() (*fakeStore, *UserService) {
	store := newFakeStore()
	uow := &fakeUnitOfWork{store: store}
	return store, NewUserService(store, uow)
}

func TestCreateUserValidation(t *testing.T) {
	_, service := newUserFixture()

	cases := []struct {
		name string
		user models.User
		want error
	}{
		{"пустой логин", models.User{Login: "", Email: "a@mail.ru"}, ErrEmptyLogin},
		{"логин с пробелом", models.User{Login: "iv an", Email: "a@mail.ru"}, ErrLoginWithSpaces},
		{"слишком длинный логин", models.User{Login: "abcdefghijklmnopqrstu", Email: "a@mail.ru"}, ErrLoginTooLong},
		{"пустой email", models.User{Login: "ivan", Email: ""}, ErrEmptyEmail},
		{"email с пробелом", models.User{Login: "ivan", Email: "a @mail.ru"}, ErrEmailWithSpaces},
		{"email без @", models.User{Login: "ivan", Email: "mail.ru"}, ErrEmailFormat},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user := tc.user
			if err := service.CreateUser(context.Background(), &user); !errors.Is(err, tc.want) {
				t.Errorf("получено %v, ожидается %v", err, tc.want)
			}
		})
	}
}

func TestCreateUser(t *testing.T) {
	store, service := newUserFixture()

	user := &models.User{Login: "ivan", Email: "ivan@mail.ru"}
	if err := service.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.ID == 0 {
		t.Error("пользователю должен быть присвоен id")
	}

	stored, err := store.users.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Login != "ivan" || stored.Email != "ivan@mail.ru" {
		t.Errorf("сохранён %+v", stored)
	}
}

func TestGetUserNotFound(t *testing.T) {
	_, service := newUserFixture()

	_, err := service.GetUser(context.Background(), 5)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("ожидается ErrUserNotFound, получено %v", err)
	}
}

func TestUpdateUserNotFound(t *testing.T) {
	_, service := newUserFixture()

	user := &models.User{ID: 9, Login: "ivan", Email: "ivan@mail.ru"}
	if err := service.UpdateUser(context.Background(), user); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("ожидается ErrUserNotFound, получено %v", err)
	}
}

func TestDeleteUserWithAccounts(t *testing.T) {
	store, service := newUserFixture()

	user := &models.User{Login: "ivan", Email: "ivan@mail.ru"}
	if err := service.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := store.accounts.Create(context.Background(), user.ID, "RUB", decimal.Zero); err != nil {
		t.Fatalf("Create account: %v", err)
	}

	if err := service.DeleteUser(context.Background(), user.ID); !errors.Is(err, ErrDeleteUserWithAccounts) {
		t.Fatalf("ожидается ErrDeleteUserWithAccounts, получено %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	store, service := newUserFixture()

	user := &models.User{Login: "ivan", Email: "ivan@mail.ru"}
	if err := service.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if err := service.DeleteUser(context.Background(), user.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := store.users.GetByID(context.Background(), user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Error("пользователь должен быть удалён")
	}
}
