package constants

// DateRange is the period selected on the audit log view. It names export
// artifacts only; listing does not filter by it.
type DateRange string

const (
	RangeLast7Days  DateRange = "last7days"
	RangeLast30Days DateRange = "last30days"
	RangeLastYear   DateRange = "lastYear"
)

const DefaultDateRange = RangeLast7Days

func (r DateRange) Valid() bool {
	switch r {
	case RangeLast7Days, RangeLast30Days, RangeLastYear:
		return true
	}
	return false
}
