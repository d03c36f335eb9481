package main

import (
	"log"
	"os"

	"github.com/tmwangi/shuledesk/core"
	"github.com/tmwangi/shuledesk/core/academics"
	"github.com/tmwangi/shuledesk/core/audit"
	"github.com/tmwangi/shuledesk/core/finance"
	"github.com/tmwangi/shuledesk/core/school"
	logsvc "github.com/tmwangi/shuledesk/services/logger"
	inmemdb "github.com/tmwangi/shuledesk/storage/database/inmem"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(false)

	// set up the store
	db, err := inmemdb.Open(conf, dbLogger)
	errAndDie(err)
	defer db.Close()

	teacherRepo := inmemdb.NewTeacherRepository(db)
	classRepo := inmemdb.NewClassRepository(db)
	studentRepo := inmemdb.NewStudentRepository(db)

	// start CLI
	cli := commandLine{
		schoolSvc:    school.NewService(teacherRepo, classRepo, studentRepo),
		academicsSvc: academics.NewService(inmemdb.NewAcademicsRepository(db), studentRepo, classRepo),
		financeSvc:   finance.NewService(inmemdb.NewPaymentRepository(db)),
		auditSvc:     audit.NewService(inmemdb.NewAuditRepository(db)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
