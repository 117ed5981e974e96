package constants

type TaskStatus string

const (
	StatusWorkshop     TaskStatus = "Taller"
	StatusQuote        TaskStatus = "Presupuesto"
	StatusAwaitingPart TaskStatus = "Pendiente de repuesto"
	StatusDone         TaskStatus = "Hecho"
)

// TaskStatuses lists every status in the order the workshop moves through them.
var TaskStatuses = []TaskStatus{
	StatusWorkshop,
	StatusQuote,
	StatusAwaitingPart,
	StatusDone,
}

func (s TaskStatus) Valid() bool {
	for _, known := range TaskStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s TaskStatus) Ptr() *TaskStatus {
	return &s
}
