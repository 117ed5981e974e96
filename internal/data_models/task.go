package dto

import "github.com/bobimat/workshop-tasks/internal/constants"

type CreateTaskRequest struct {
	Reference string               `json:"reference" validate:"required"`
	Status    constants.TaskStatus `json:"status"`
}

type UpdateStatusRequest struct {
	Status constants.TaskStatus `json:"status" validate:"required"`
}

type RenameReferenceRequest struct {
	Reference string `json:"reference" validate:"required"`
}
