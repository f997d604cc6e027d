package api

import (
	"context"
	"fmt"
)

// Users

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	err := c.get(ctx, "/users", &out)
	return out, err
}

func (c *Client) GetUser(ctx context.Context, id int) (*User, error) {
	var out User
	if err := c.get(ctx, fmt.Sprintf("/users/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateUser(ctx context.Context, u User) (*User, error) {
	var out User
	if err := c.post(ctx, "/users", u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int, u User) (*User, error) {
	var out User
	if err := c.put(ctx, fmt.Sprintf("/users/%d", id), u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/users/%d", id))
}

// Courses

func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var out []Course
	err := c.get(ctx, "/courses", &out)
	return out, err
}

func (c *Client) GetCourse(ctx context.Context, id int) (*Course, error) {
	var out Course
	if err := c.get(ctx, fmt.Sprintf("/courses/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCourse(ctx context.Context, course Course) (*Course, error) {
	var out Course
	if err := c.post(ctx, "/courses", course, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCourse(ctx context.Context, id int, course Course) (*Course, error) {
	var out Course
	if err := c.put(ctx, fmt.Sprintf("/courses/%d", id), course, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCourse(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/courses/%d", id))
}

// Semesters

func (c *Client) ListSemesters(ctx context.Context) ([]Semester, error) {
	var out []Semester
	err := c.get(ctx, "/semesters", &out)
	return out, err
}

func (c *Client) ListSemestersByCourse(ctx context.Context, courseID int) ([]Semester, error) {
	var out []Semester
	err := c.get(ctx, fmt.Sprintf("/semesters/course/%d", courseID), &out)
	return out, err
}

func (c *Client) CreateSemester(ctx context.Context, s Semester) (*Semester, error) {
	var out Semester
	if err := c.post(ctx, "/semesters", s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSemester(ctx context.Context, id int, s Semester) (*Semester, error) {
	var out Semester
	if err := c.put(ctx, fmt.Sprintf("/semesters/%d", id), s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSemester(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/semesters/%d", id))
}

// Disciplines

func (c *Client) ListDisciplines(ctx context.Context) ([]Discipline, error) {
	var out []Discipline
	err := c.get(ctx, "/disciplines", &out)
	return out, err
}

func (c *Client) ListDisciplinesBySemester(ctx context.Context, semesterID int) ([]Discipline, error) {
	var out []Discipline
	err := c.get(ctx, fmt.Sprintf("/disciplines/semester/%d", semesterID), &out)
	return out, err
}

func (c *Client) CreateDiscipline(ctx context.Context, d Discipline) (*Discipline, error) {
	var out Discipline
	if err := c.post(ctx, "/disciplines", d, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDiscipline(ctx context.Context, id int, d Discipline) (*Discipline, error) {
	var out Discipline
	if err := c.put(ctx, fmt.Sprintf("/disciplines/%d", id), d, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteDiscipline(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/disciplines/%d", id))
}

// Curricula

func (c *Client) ListCurricula(ctx context.Context) ([]Curriculum, error) {
	var out []Curriculum
	err := c.get(ctx, "/curricula", &out)
	return out, err
}

func (c *Client) ListCurriculaByStudent(ctx context.Context, studentID int) ([]Curriculum, error) {
	var out []Curriculum
	err := c.get(ctx, fmt.Sprintf("/curricula/student/%d", studentID), &out)
	return out, err
}

func (c *Client) ListCurriculaByDiscipline(ctx context.Context, disciplineID int) ([]Curriculum, error) {
	var out []Curriculum
	err := c.get(ctx, fmt.Sprintf("/curricula/discipline/%d", disciplineID), &out)
	return out, err
}

func (c *Client) CreateCurriculum(ctx context.Context, cu Curriculum) (*Curriculum, error) {
	var out Curriculum
	if err := c.post(ctx, "/curricula", cu, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCurriculum(ctx context.Context, id int, cu Curriculum) (*Curriculum, error) {
	var out Curriculum
	if err := c.put(ctx, fmt.Sprintf("/curricula/%d", id), cu, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCurriculum(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/curricula/%d", id))
}
