package user

import "errors"

var ErrNotFound = errors.New("user not found")

type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // never expose hash in JSON
	Surname      string `json:"surname"`
	Firstname    string `json:"firstname"`
	Email        string `json:"email"`
	RoleID       int64  `json:"roleId"`
}
