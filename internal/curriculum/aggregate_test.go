package curriculum

import (
	"reflect"
	"testing"

	"academic-records/console/internal/api"
)

func rec(courseID int, courseName string, semID, semNum, discID int, discName string, workload int) api.Curriculum {
	return api.Curriculum{
		CourseID:           courseID,
		CourseName:         courseName,
		SemesterID:         semID,
		SemesterNumber:     semNum,
		DisciplineID:       discID,
		DisciplineName:     discName,
		DisciplineWorkload: workload,
	}
}

func TestAggregate_GroupsByCourseThenSemester(t *testing.T) {
	records := []api.Curriculum{
		rec(1, "Computer Science", 10, 1, 100, "Algorithms I", 80),
		rec(1, "Computer Science", 10, 1, 101, "Calculus I", 60),
		rec(1, "Computer Science", 11, 2, 102, "Algorithms II", 80),
		rec(2, "Mathematics", 20, 1, 200, "Set Theory", 60),
	}

	matrices := Aggregate(records)
	if len(matrices) != 2 {
		t.Fatalf("len(matrices) = %d, want 2", len(matrices))
	}

	cs := matrices[0]
	if cs.CourseID != 1 || cs.CourseName != "Computer Science" {
		t.Errorf("first matrix = %+v", cs)
	}
	if len(cs.Semesters) != 2 {
		t.Fatalf("semesters = %d, want 2", len(cs.Semesters))
	}
	if len(cs.Semesters[0].Disciplines) != 2 {
		t.Errorf("semester 1 disciplines = %d, want 2", len(cs.Semesters[0].Disciplines))
	}
	if cs.Semesters[1].Disciplines[0].Name != "Algorithms II" {
		t.Errorf("semester 2 discipline = %+v", cs.Semesters[1].Disciplines[0])
	}
}

func TestAggregate_FirstSeenCourseOrder(t *testing.T) {
	records := []api.Curriculum{
		rec(7, "Physics", 70, 1, 700, "Mechanics", 80),
		rec(3, "Chemistry", 30, 1, 300, "Organic", 60),
		rec(7, "Physics", 71, 2, 701, "Optics", 60),
	}

	matrices := Aggregate(records)
	var ids []int
	for _, m := range matrices {
		ids = append(ids, m.CourseID)
	}
	if !reflect.DeepEqual(ids, []int{7, 3}) {
		t.Errorf("course order = %v, want [7 3]", ids)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	records := []api.Curriculum{
		rec(1, "CS", 10, 1, 100, "Algorithms", 80),
		rec(1, "CS", 10, 1, 101, "Calculus", 60),
		rec(1, "CS", 11, 2, 102, "Databases", 80),
	}

	once := Aggregate(records)
	twice := Aggregate(append(append([]api.Curriculum{}, records...), records...))
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("aggregating the concatenated sequence changed the result:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestAggregate_DuplicateDisciplineSkipped(t *testing.T) {
	records := []api.Curriculum{
		rec(1, "CS", 10, 1, 100, "Algorithms", 80),
		rec(1, "CS", 10, 1, 100, "Algorithms", 80),
	}

	matrices := Aggregate(records)
	if got := len(matrices[0].Semesters[0].Disciplines); got != 1 {
		t.Errorf("disciplines = %d, want 1", got)
	}
}

func TestAggregate_SemesterNumberNotSorted(t *testing.T) {
	records := []api.Curriculum{
		rec(1, "CS", 12, 3, 102, "Late", 40),
		rec(1, "CS", 10, 1, 100, "Early", 40),
	}

	m := Aggregate(records)[0]
	if m.Semesters[0].SemesterNumber != 3 {
		t.Errorf("first-seen order should be preserved, got %+v", m.Semesters)
	}

	SortBySemesterNumber(&m)
	if m.Semesters[0].SemesterNumber != 1 || m.Semesters[1].SemesterNumber != 3 {
		t.Errorf("after sort: %+v", m.Semesters)
	}
}

func TestAggregate_MissingFieldsDefaultToZeroValues(t *testing.T) {
	matrices := Aggregate([]api.Curriculum{{CourseID: 1, DisciplineID: 5}})
	m := matrices[0]
	if m.CourseName != "" {
		t.Errorf("CourseName = %q, want empty", m.CourseName)
	}
	d := m.Semesters[0].Disciplines[0]
	if d.Name != "" || d.Workload != 0 || d.Status != "" {
		t.Errorf("discipline defaults = %+v", d)
	}
}

func TestAggregate_Empty(t *testing.T) {
	if got := Aggregate(nil); len(got) != 0 {
		t.Errorf("Aggregate(nil) = %v, want empty", got)
	}
}

func TestTotalWorkload(t *testing.T) {
	records := []api.Curriculum{
		rec(1, "CS", 10, 1, 100, "A", 80),
		rec(1, "CS", 11, 2, 101, "B", 60),
	}
	m := Aggregate(records)[0]
	if got := TotalWorkload(&m); got != 140 {
		t.Errorf("TotalWorkload = %d, want 140", got)
	}
}
