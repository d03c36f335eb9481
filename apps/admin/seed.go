package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/tmwangi/shuledesk/core"
	"github.com/tmwangi/shuledesk/core/academics"
	"github.com/tmwangi/shuledesk/core/finance"
	"github.com/tmwangi/shuledesk/core/school"
)

var (
	firstNames = []string{
		"Brian", "Faith", "Kevin", "Mercy", "Dennis", "Esther", "Victor", "Joyce",
		"Samuel", "Cynthia", "Collins", "Naomi", "Felix", "Diana", "George", "Lilian",
	}
	lastNames = []string{
		"Mwangi", "Otieno", "Kamau", "Achieng", "Kiprotich", "Wanjiku", "Omondi",
		"Njeri", "Mutiso", "Chebet", "Ouma", "Wafula", "Nyambura", "Barasa",
	}
	parentNames = []string{
		"John Mwangi", "Mary Otieno", "Peter Kamau", "Jane Achieng", "David Kiprotich",
		"Susan Wanjiku", "Paul Omondi", "Rose Njeri", "Joseph Mutiso", "Agnes Chebet",
	}
	classNames = []string{
		"Grade 1", "Grade 2", "Grade 3", "Grade 4", "Grade 5", "Grade 6",
		"Form 1", "Form 2", "Form 3", "Form 4",
	}
	rooms = []string{"R1", "R2", "R3", "R4", "R5", "R6", "R7", "R8", "R9", "R10"}

	subjects = []string{
		"Mathematics", "English", "Kiswahili", "Science", "Social Studies", "CRE",
		"Biology", "Chemistry", "Physics", "History", "Geography", "Business Studies",
	}
)

// seed populates the store with a demo school: 15 teachers, one class per
// name in classNames, the requested number of students, and derived
// attendance, grade and payment history.
func (cli *commandLine) seed(studentCount, days int) error {
	started := time.Now()

	teachers, err := cli.seedTeachers(15)
	if err != nil {
		return err
	}
	classes, err := cli.seedClasses(teachers)
	if err != nil {
		return err
	}
	students, err := cli.seedStudents(classes, studentCount)
	if err != nil {
		return err
	}

	byID := make(map[string]school.Class, len(classes))
	for _, c := range classes {
		byID[c.ID] = c
	}

	if err := cli.seedAttendance(students, byID, days); err != nil {
		return err
	}
	if err := cli.seedGrades(students, byID); err != nil {
		return err
	}
	if err := cli.seedPayments(students); err != nil {
		return err
	}

	logger.Printf("seeded %d teachers, %d classes, %d students in %v",
		len(teachers), len(classes), len(students), time.Since(started).Round(time.Millisecond))
	return nil
}

func (cli *commandLine) seedTeachers(count int) ([]school.Teacher, error) {
	teachers := make([]school.Teacher, 0, count)
	for i := 0; i < count; i++ {
		first := pick(firstNames)
		last := pick(lastNames)
		joined := time.Date(2020+rand.Intn(5), time.Month(rand.Intn(12)+1), 1, 0, 0, 0, 0, time.UTC)

		t, err := cli.schoolSvc.CreateTeacher(uuid.NewString(), school.NewTeacher{
			Name:             first + " " + last,
			Email:            fmt.Sprintf("%s.%s%d@school.com", lower(first), lower(last), i+1),
			Phone:            phone(),
			Subjects:         picks(subjects, rand.Intn(3)+2),
			Status:           school.TeacherActive,
			DateOfJoining:    joined.Format(core.DayFormat),
			EmployeeID:       fmt.Sprintf("EMP%04d", i+1),
			Qualifications:   "Bachelor of Education",
			Address:          fmt.Sprintf("%d Nairobi Street, Nairobi", rand.Intn(999)+1),
			EmergencyContact: phone(),
		})
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}
	return teachers, nil
}

func (cli *commandLine) seedClasses(teachers []school.Teacher) ([]school.Class, error) {
	classes := make([]school.Class, 0, len(classNames))
	for i, name := range classNames {
		classType := school.ClassSecondary
		classSubjects := subjects
		if i < 6 {
			classType = school.ClassPrimary
			classSubjects = subjects[:6]
		}

		c, err := cli.schoolSvc.CreateClass(uuid.NewString(), school.NewClass{
			Name:      name,
			TeacherID: teachers[i%len(teachers)].ID,
			Type:      classType,
			Capacity:  40,
			Room:      rooms[i],
			Subjects:  classSubjects,
		})
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, nil
}

func (cli *commandLine) seedStudents(classes []school.Class, count int) ([]school.Student, error) {
	year := time.Now().Year()
	students := make([]school.Student, 0, count)
	for i := 0; i < count; i++ {
		first := pick(firstNames)
		last := pick(lastNames)
		boarding := school.StudentDay
		if rand.Float64() > 0.6 {
			boarding = school.StudentBoarding
		}
		gender := school.GenderMale
		if rand.Intn(2) == 0 {
			gender = school.GenderFemale
		}
		dob := time.Date(2008+rand.Intn(8), time.Month(rand.Intn(12)+1), rand.Intn(28)+1, 0, 0, 0, 0, time.UTC)
		var medical string
		if rand.Float64() > 0.8 {
			medical = "No known allergies"
		}

		s, err := cli.schoolSvc.CreateStudent(uuid.NewString(), school.NewStudent{
			AdmissionNo:      fmt.Sprintf("ADM%d%04d", year, i+1),
			Name:             first + " " + last,
			ClassID:          pick(classes).ID,
			BoardingStatus:   boarding,
			Status:           school.StudentActive,
			ParentName:       pick(parentNames),
			ParentContact:    phone(),
			ParentEmail:      fmt.Sprintf("parent%d@email.com", i+1),
			DateOfBirth:      dob.Format(core.DayFormat),
			Gender:           gender,
			Address:          fmt.Sprintf("%d Street, Nairobi", rand.Intn(999)+1),
			EmergencyContact: phone(),
			MedicalInfo:      medical,
			EnrollmentDate:   "2023-01-01",
			FeeBalance:       rand.Intn(50000),
		})
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, nil
}

func (cli *commandLine) seedAttendance(students []school.Student, classes map[string]school.Class, days int) error {
	today := time.Now().UTC()
	for day := 0; day < days; day++ {
		date := today.AddDate(0, 0, -day).Format(core.DayFormat)
		for _, s := range students {
			c, ok := classes[s.ClassID]
			if !ok {
				continue
			}

			status := academics.AttendancePresent
			var notes string
			switch r := rand.Float64(); {
			case r > 0.95:
				status = academics.AttendanceAbsent
				notes = "Sick"
			case r > 0.9:
				status = academics.AttendanceLate
			}

			if _, err := cli.academicsSvc.Mark(uuid.NewString(), academics.MarkAttendance{
				StudentID: s.ID,
				ClassID:   s.ClassID,
				Date:      date,
				Status:    status,
				Notes:     notes,
			}, c.TeacherID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (cli *commandLine) seedGrades(students []school.Student, classes map[string]school.Class) error {
	year := time.Now().Year()
	for _, s := range students {
		c, ok := classes[s.ClassID]
		if !ok {
			continue
		}
		for _, subject := range c.Subjects {
			score := rand.Intn(40) + 60
			comment := "Needs improvement"
			if score >= 70 {
				comment = "Good performance"
			}

			if _, err := cli.academicsSvc.AddGrade(uuid.NewString(), academics.AddGrade{
				StudentID: s.ID,
				ClassID:   s.ClassID,
				Subject:   subject,
				Score:     score,
				Term:      academics.Term1,
				Year:      year,
				Comment:   comment,
			}, c.TeacherID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (cli *commandLine) seedPayments(students []school.Student) error {
	amounts := []int{10000, 15000, 20000, 25000}
	methods := []finance.PaymentMethod{finance.MethodCash, finance.MethodMpesa, finance.MethodBankTransfer}
	now := time.Now()
	var seq int

	for _, s := range students {
		for i := 0; i < rand.Intn(3)+1; i++ {
			seq++
			if _, _, err := cli.financeSvc.Record(uuid.NewString(), finance.NewPayment{
				StudentID:   s.ID,
				Amount:      pick(amounts),
				Method:      pick(methods),
				Status:      finance.PaymentCompleted,
				ReceiptNo:   fmt.Sprintf("RCP%s%04d", now.Format("0601"), seq),
				Description: fmt.Sprintf("Term %d fees payment", i+1),
			}, "acc-bursar"); err != nil {
				return err
			}
		}
	}
	return nil
}

func pick[T any](items []T) T {
	return items[rand.Intn(len(items))]
}

func picks(items []string, count int) []string {
	shuffled := make([]string, len(items))
	copy(shuffled, items)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

func phone() string {
	return fmt.Sprintf("+2547%08d", rand.Intn(100000000))
}

func lower(s string) string {
	return core.CleanString(s, true)
}
