package models

type User struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Email string `json:"email"`
}

type CreateUserRequest struct {
	Login string `json:"login"`
	Email string `json:"email"`
}

type UpdateUserRequest struct {
	Login string `json:"login"`
	Email string `json:"email"`
}
