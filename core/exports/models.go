package exports

import "time"

// Status is the export approval state. PENDING is initial; APPROVED and
// REJECTED are terminal: no transition leaves them.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

type DataType string

const (
	DataStudentRecords    DataType = "STUDENT_RECORDS"
	DataFeeRecords        DataType = "FEE_RECORDS"
	DataAttendanceRecords DataType = "ATTENDANCE_RECORDS"
	DataGradeRecords      DataType = "GRADE_RECORDS"
	DataFullReport        DataType = "FULL_REPORT"
)

type Format string

const (
	FormatPDF   Format = "PDF"
	FormatExcel Format = "EXCEL"
	FormatCSV   Format = "CSV"
)

type DateRange struct {
	From string `json:"from" validate:"required,day"`
	To   string `json:"to" validate:"required,day"`
}

// ExportRequest tracks a request to export data and its approval state. The
// export content itself is rendered elsewhere, and only once approved.
type ExportRequest struct {
	ID              string     `json:"id"`
	RequestedBy     string     `json:"requested_by"`
	DataType        DataType   `json:"data_type"`
	Format          Format     `json:"format"`
	Status          Status     `json:"status"`
	StudentID       string     `json:"student_id,omitempty"`
	ClassID         string     `json:"class_id,omitempty"`
	DateRange       *DateRange `json:"date_range,omitempty"`
	Justification   string     `json:"justification"`
	ApprovedBy      string     `json:"approved_by,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"` // UTC
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}
