package emailsvc

import (
	"bytes"
	"testing"

	"github.com/tmwangi/shuledesk/core"
)

func TestGetSGAttachment(t *testing.T) {
	svc := sendgridService{}

	got := svc.getSGAttachment(core.Attachment{
		Content:     bytes.NewBufferString("admission_no,name"),
		ContentType: "text/csv",
		Filename:    "student_records.csv",
	})
	if got.Disposition != "attachment" {
		t.Errorf(`Disposition = %q; want "attachment"`, got.Disposition)
	}
	if got.Filename != "student_records.csv" || got.Type != "text/csv" {
		t.Errorf("attachment = %+v", got)
	}
	if got.Content != "admission_no,name" {
		t.Errorf("Content = %q", got.Content)
	}
}
