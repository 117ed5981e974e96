package dto

import "github.com/bobimat/workshop-tasks/internal/constants"

type UserRequest struct {
	Name  string         `json:"name" validate:"required"`
	Email string         `json:"email" validate:"required,email"`
	Role  constants.Role `json:"role" validate:"omitempty,oneof=Operario Administrador"`
}
