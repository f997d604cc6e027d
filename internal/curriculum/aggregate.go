// Package curriculum reshapes flat curriculum records into the nested
// course → semester → discipline matrix the display layer consumes.
package curriculum

import (
	"sort"

	"academic-records/console/internal/api"
)

// Discipline is the per-discipline detail carried into a semester group.
type Discipline struct {
	ID       int
	Name     string
	Workload int
	Status   string
	Active   bool
}

// SemesterGroup holds the disciplines of one semester within a matrix.
// Disciplines are unique by id.
type SemesterGroup struct {
	SemesterID     int
	SemesterNumber int
	Disciplines    []Discipline
}

// Matrix is the nested regrouping of one course's records. Semesters appear
// in first-seen order; callers wanting numeric order use SortBySemesterNumber.
type Matrix struct {
	CourseID   int
	CourseName string
	Semesters  []SemesterGroup
}

// Aggregate groups records into one Matrix per distinct course id, in order
// of first appearance. Within a matrix, semester groups keep first-seen
// order and each semester id appears at most once; a discipline already
// present under the same id in a group is skipped, so re-running over
// re-fetched (or concatenated) records yields the same matrices.
func Aggregate(records []api.Curriculum) []Matrix {
	var order []int
	matrices := make(map[int]*Matrix)
	groupIdx := make(map[int]map[int]int) // course id -> semester id -> index in Semesters

	for _, r := range records {
		m, ok := matrices[r.CourseID]
		if !ok {
			m = &Matrix{CourseID: r.CourseID, CourseName: r.CourseName}
			matrices[r.CourseID] = m
			groupIdx[r.CourseID] = make(map[int]int)
			order = append(order, r.CourseID)
		}

		idx, ok := groupIdx[r.CourseID][r.SemesterID]
		if !ok {
			m.Semesters = append(m.Semesters, SemesterGroup{
				SemesterID:     r.SemesterID,
				SemesterNumber: r.SemesterNumber,
			})
			idx = len(m.Semesters) - 1
			groupIdx[r.CourseID][r.SemesterID] = idx
		}
		g := &m.Semesters[idx]

		if hasDiscipline(g.Disciplines, r.DisciplineID) {
			continue
		}
		g.Disciplines = append(g.Disciplines, Discipline{
			ID:       r.DisciplineID,
			Name:     r.DisciplineName,
			Workload: r.DisciplineWorkload,
			Status:   r.Status,
			Active:   r.Active,
		})
	}

	out := make([]Matrix, 0, len(order))
	for _, id := range order {
		out = append(out, *matrices[id])
	}
	return out
}

// SortBySemesterNumber orders a matrix's semester groups by semester number,
// ascending. Aggregate itself imposes no order beyond first-seen.
func SortBySemesterNumber(m *Matrix) {
	sort.SliceStable(m.Semesters, func(i, j int) bool {
		return m.Semesters[i].SemesterNumber < m.Semesters[j].SemesterNumber
	})
}

// TotalWorkload sums discipline workloads across all semesters of m.
func TotalWorkload(m *Matrix) int {
	total := 0
	for _, s := range m.Semesters {
		for _, d := range s.Disciplines {
			total += d.Workload
		}
	}
	return total
}

func hasDiscipline(ds []Discipline, id int) bool {
	for _, d := range ds {
		if d.ID == id {
			return true
		}
	}
	return false
}
