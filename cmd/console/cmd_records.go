package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"academic-records/console/internal/api"
	"academic-records/console/internal/session"
)

func usersCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts (admin)",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).navigate(routeAdminUsers); err != nil {
				return err
			}
			users, err := (*a).api.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			for _, u := range users {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role)
			}
			return nil
		},
	}

	var name, email, password, role string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).navigate(routeAdminUsers); err != nil {
				return err
			}
			u, err := (*a).api.CreateUser(cmd.Context(), api.User{
				Name:     name,
				Email:    email,
				Password: password,
				Role:     session.Role(role),
				Active:   true,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %d\n", u.ID)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "full name")
	create.Flags().StringVar(&email, "email", "", "email address")
	create.Flags().StringVar(&password, "password", "", "initial password")
	create.Flags().StringVar(&role, "role", string(session.RoleStudent), "role (ADMIN, COORDINATOR, PROFESSOR, STUDENT)")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).navigate(routeAdminUsers); err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			if err := (*a).api.DeleteUser(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted user %d\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}

func coursesCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "Manage courses (coordinator)",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List courses",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).navigate(routeCoordinatorCourses); err != nil {
				return err
			}
			courses, err := (*a).api.ListCourses(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range courses {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%dh\t%d semesters\n", c.ID, c.Name, c.TotalHours, c.DurationSemesters)
			}
			return nil
		},
	}

	cmd.AddCommand(list)
	return cmd
}

func semestersCmd(a **app) *cobra.Command {
	var courseID int
	cmd := &cobra.Command{
		Use:   "semesters",
		Short: "Manage semesters (coordinator)",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List semesters, optionally for one course",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).navigate(routeCoordinatorSemesters); err != nil {
				return err
			}
			var (
				semesters []api.Semester
				err       error
			)
			if courseID > 0 {
				semesters, err = (*a).api.ListSemestersByCourse(cmd.Context(), courseID)
			} else {
				semesters, err = (*a).api.ListSemesters(cmd.Context())
			}
			if err != nil {
				return err
			}
			for _, s := range semesters {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\tsemester %d\t%s\n", s.ID, s.Number, s.CourseName)
			}
			return nil
		},
	}
	list.Flags().IntVar(&courseID, "course", 0, "filter by course id")

	cmd.AddCommand(list)
	return cmd
}

func disciplinesCmd(a **app) *cobra.Command {
	var semesterID int
	cmd := &cobra.Command{
		Use:   "disciplines",
		Short: "Manage disciplines (coordinator)",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List disciplines, optionally for one semester",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).navigate(routeCoordinatorDisciplines); err != nil {
				return err
			}
			var (
				disciplines []api.Discipline
				err         error
			)
			if semesterID > 0 {
				disciplines, err = (*a).api.ListDisciplinesBySemester(cmd.Context(), semesterID)
			} else {
				disciplines, err = (*a).api.ListDisciplines(cmd.Context())
			}
			if err != nil {
				return err
			}
			for _, d := range disciplines {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%dh\n", d.ID, d.Name, d.Workload)
			}
			return nil
		},
	}
	list.Flags().IntVar(&semesterID, "semester", 0, "filter by semester id")

	cmd.AddCommand(list)
	return cmd
}
