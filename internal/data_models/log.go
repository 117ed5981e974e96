package dto

import (
	"github.com/bobimat/workshop-tasks/internal/constants"
	model "github.com/bobimat/workshop-tasks/internal/models"
)

type LogListResponse struct {
	Range   constants.DateRange `json:"range"`
	Count   int                 `json:"count"`
	Entries []model.LogEntry    `json:"entries"`
}
