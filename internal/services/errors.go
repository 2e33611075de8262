package services

import (
	"errors"

	"minibank/internal/currency"
)

// Ошибки валидации доменных операций. Каждая проверка получает свой
// sentinel, чтобы обработчики могли сопоставить статус через errors.Is.
var (
	ErrNegativeStartBalance = errors.New("начальный баланс должен быть больше или равен 0")

	ErrAccountNotFound = errors.New("счёт с таким id не найден")
	ErrUserNotFound    = errors.New("пользователь с таким id не найден")

	ErrUpdateUserID   = errors.New("нельзя изменить владельца существующего счёта")
	ErrUpdateCurrency = errors.New("нельзя изменить валюту существующего счёта")

	ErrCloseWithNonZeroBalance = errors.New("перед закрытием счёта баланс должен быть равен 0")
	ErrAlreadyClosed           = errors.New("этот счёт уже закрыт")

	ErrZeroOrNegativeAmount = errors.New("сумма должна быть больше 0")

	ErrCommissionForClosedAccount    = errors.New("нельзя рассчитать комиссию: один из счетов закрыт")
	ErrTransferBetweenClosedAccounts = errors.New("нельзя сделать перевод: один из счетов закрыт")
	ErrSameAccountTransfer           = errors.New("нельзя переводить деньги на тот же самый счёт")
	ErrNotEnoughBalance              = errors.New("недостаточно средств на балансе")

	ErrEmptyLogin      = errors.New("логин не должен быть пустым")
	ErrLoginWithSpaces = errors.New("логин не должен содержать пробелы")
	ErrLoginTooLong    = errors.New("длина логина не должна превышать 20 символов")
	ErrEmptyEmail      = errors.New("email не должен быть пустым")
	ErrEmailWithSpaces = errors.New("email не должен содержать пробелы")
	ErrEmailFormat     = errors.New("email имеет неверный формат")

	ErrDeleteUserWithAccounts = errors.New("нельзя удалить пользователя, у которого есть счета")
)

// IsNotFound - ошибки отсутствующих сущностей, в HTTP-слое это 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrUserNotFound)
}

// IsValidation - ошибки, которые клиент может исправить сам, в HTTP-слое это 4xx.
// Ошибки отсутствующих сущностей - их подмножество.
func IsValidation(err error) bool {
	if IsNotFound(err) {
		return true
	}
	for _, target := range []error{
		ErrNegativeStartBalance,
		ErrUpdateUserID,
		ErrUpdateCurrency,
		ErrCloseWithNonZeroBalance,
		ErrAlreadyClosed,
		ErrZeroOrNegativeAmount,
		ErrCommissionForClosedAccount,
		ErrTransferBetweenClosedAccounts,
		ErrSameAccountTransfer,
		ErrNotEnoughBalance,
		ErrEmptyLogin,
		ErrLoginWithSpaces,
		ErrLoginTooLong,
		ErrEmptyEmail,
		ErrEmailWithSpaces,
		ErrEmailFormat,
		ErrDeleteUserWithAccounts,
		currency.ErrNotPermitted,
		currency.ErrUnknownRate,
		currency.ErrNegativeAmount,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
