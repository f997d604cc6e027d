package main

import (
	"academic-records/console/internal/routing"
	"academic-records/console/internal/session"
)

// The route table mirrors the application's navigable views. Requirements
// are fixed here at construction time; the guard consults them on every
// navigation.
var (
	routeLogin = routing.Route{Name: "login", Path: "/login", Public: true}

	routeDashboard = routing.Route{Name: "dashboard", Path: "/dashboard"}

	routeAdminUsers = routing.Route{
		Name:  "admin-users",
		Path:  "/admin/users",
		Roles: []session.Role{session.RoleAdmin},
	}

	routeCoordinatorCourses = routing.Route{
		Name:  "coordinator-courses",
		Path:  "/coordinator/courses",
		Roles: []session.Role{session.RoleCoordinator},
	}
	routeCoordinatorSemesters = routing.Route{
		Name:  "coordinator-semesters",
		Path:  "/coordinator/semesters",
		Roles: []session.Role{session.RoleCoordinator},
	}
	routeCoordinatorDisciplines = routing.Route{
		Name:  "coordinator-disciplines",
		Path:  "/coordinator/disciplines",
		Roles: []session.Role{session.RoleCoordinator},
	}
	routeCoordinatorCurriculum = routing.Route{
		Name:  "coordinator-curriculum",
		Path:  "/coordinator/curriculum",
		Roles: []session.Role{session.RoleCoordinator},
	}

	routeCurriculum = routing.Route{
		Name:  "curriculum",
		Path:  "/curriculum",
		Roles: []session.Role{session.RoleProfessor, session.RoleStudent},
	}
)
