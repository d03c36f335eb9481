package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/tmwangi/shuledesk/core/academics"
	"github.com/tmwangi/shuledesk/core/audit"
	"github.com/tmwangi/shuledesk/core/finance"
	"github.com/tmwangi/shuledesk/core/school"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	schoolSvc    *school.Service
	academicsSvc *academics.Service
	financeSvc   *finance.Service
	auditSvc     *audit.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  seed [-students N] [-days N] - populate the store with demo data")
	fmt.Println("  stats - print table sizes")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	seedStudents := seedCmd.Int("students", 200, "Number of students to enroll.")
	seedDays := seedCmd.Int("days", 30, "Number of past days to mark attendance for.")

	switch args[1] {
	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.seed(*seedStudents, *seedDays)
	case "stats":
		return cli.stats()
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) stats() error {
	teachers, err := cli.schoolSvc.QueryAllTeachers()
	if err != nil {
		return err
	}
	classes, err := cli.schoolSvc.QueryAllClasses()
	if err != nil {
		return err
	}
	students, err := cli.schoolSvc.QueryAllStudents()
	if err != nil {
		return err
	}
	attendance, err := cli.academicsSvc.AllAttendance()
	if err != nil {
		return err
	}
	grades, err := cli.academicsSvc.AllGrades()
	if err != nil {
		return err
	}
	payments, err := cli.financeSvc.QueryAll()
	if err != nil {
		return err
	}
	logs, err := cli.auditSvc.QueryAll()
	if err != nil {
		return err
	}

	fmt.Printf("teachers:   %d\n", len(teachers))
	fmt.Printf("classes:    %d\n", len(classes))
	fmt.Printf("students:   %d\n", len(students))
	fmt.Printf("attendance: %d\n", len(attendance))
	fmt.Printf("grades:     %d\n", len(grades))
	fmt.Printf("payments:   %d\n", len(payments))
	fmt.Printf("audit logs: %d\n", len(logs))
	return nil
}
