package inmemdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tmwangi/shuledesk/core"
	testutil "github.com/tmwangi/shuledesk/tests"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(nil, nil)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return db
}

func TestSnapshotRoundTrip(t *testing.T) {
	conf := &core.Config{SnapshotDir: t.TempDir()}

	db, err := Open(conf, nil)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	teacher := testutil.CreateTeacher(t, NewTeacherRepository(db), "Alice Wanjiru", "EMP0001")
	class := testutil.CreateClass(t, NewClassRepository(db), "Grade 4", teacher.ID)
	student := testutil.CreateStudent(t, NewStudentRepository(db), "Bob Otieno", "ADM20260001", class.ID, 5000)
	if err = db.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if _, err = os.Stat(filepath.Join(conf.SnapshotDir, snapshotName)); err != nil {
		t.Fatalf("snapshot document missing: %v", err)
	}

	// a fresh store over the same directory rehydrates wholesale
	db2, err := Open(conf, nil)
	if err != nil {
		t.Fatalf("reopening failed: %v", err)
	}
	got, err := NewStudentRepository(db2).GetStudentByID(student.ID)
	if err != nil {
		t.Fatalf("GetStudentByID() failed: %v", err)
	}
	if got.Name != student.Name || got.FeeBalance != 5000 {
		t.Errorf("rehydrated student = %+v; want %+v", got, student)
	}
	c, err := NewClassRepository(db2).GetClassByID(class.ID)
	if err != nil {
		t.Fatalf("GetClassByID() failed: %v", err)
	}
	if c.StudentCount != 1 {
		t.Errorf("StudentCount = %d; want 1", c.StudentCount)
	}
}

func TestEphemeralStoreWritesNothing(t *testing.T) {
	db := newTestDB(t)
	testutil.CreateTeacher(t, NewTeacherRepository(db), "Alice Wanjiru", "EMP0001")
	if err := db.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
}
