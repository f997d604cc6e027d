package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"academic-records/console/internal/api"
	"academic-records/console/internal/curriculum"
	"academic-records/console/internal/routing"
	"academic-records/console/internal/session"
)

func curriculumCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curriculum",
		Short: "Curriculum records and matrices",
	}

	var studentID int
	list := &cobra.Command{
		Use:   "list",
		Short: "List flat curriculum records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).navigate(curriculumRoute((*a).sessions.Current())); err != nil {
				return err
			}
			var (
				records []api.Curriculum
				err     error
			)
			if studentID > 0 {
				records, err = (*a).api.ListCurriculaByStudent(cmd.Context(), studentID)
			} else {
				records, err = (*a).api.ListCurricula(cmd.Context())
			}
			if err != nil {
				return err
			}
			for _, r := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\tsemester %d\t%s\t%s\n",
					r.ID, r.CourseName, r.SemesterNumber, r.DisciplineName, r.Status)
			}
			return nil
		},
	}
	list.Flags().IntVar(&studentID, "student", 0, "filter by student id")

	var numeric bool
	matrix := &cobra.Command{
		Use:   "matrix [courseID]",
		Short: "Show the nested course/semester/discipline matrix",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).navigate(curriculumRoute((*a).sessions.Current())); err != nil {
				return err
			}
			records, err := (*a).api.ListCurricula(cmd.Context())
			if err != nil {
				return err
			}
			matrices := curriculum.Aggregate(records)
			if len(args) == 1 {
				courseID, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid course id %q", args[0])
				}
				matrices = filterByCourse(matrices, courseID)
			}
			for i := range matrices {
				if numeric {
					curriculum.SortBySemesterNumber(&matrices[i])
				}
				printMatrix(cmd, &matrices[i])
			}
			return nil
		},
	}
	matrix.Flags().BoolVar(&numeric, "by-semester-number", false, "sort semesters numerically instead of first-seen order")

	cmd.AddCommand(list, matrix)
	return cmd
}

// curriculumRoute picks the view matching the session's role: coordinators
// use their management view, professors and students the read-only one.
func curriculumRoute(s *session.Session) routing.Route {
	if s.HasRole(session.RoleCoordinator) {
		return routeCoordinatorCurriculum
	}
	return routeCurriculum
}

func printMatrix(cmd *cobra.Command, m *curriculum.Matrix) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s (course %d, %dh total)\n", m.CourseName, m.CourseID, curriculum.TotalWorkload(m))
	for _, sg := range m.Semesters {
		fmt.Fprintf(cmd.OutOrStdout(), "  semester %d:\n", sg.SemesterNumber)
		for _, d := range sg.Disciplines {
			fmt.Fprintf(cmd.OutOrStdout(), "    %s (%dh)\n", d.Name, d.Workload)
		}
	}
}

func filterByCourse(ms []curriculum.Matrix, courseID int) []curriculum.Matrix {
	out := ms[:0]
	for _, m := range ms {
		if m.CourseID == courseID {
			out = append(out, m)
		}
	}
	return out
}
