package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"academic-records/console/internal/session"
)

func newTestBackend(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	httpClient := &http.Client{
		Transport: NewTransport(nil, &staticTokens{token: "tok"}, &hostMatcher{}, nil, nil),
	}
	return NewClient(srv.URL+"/api", httpClient)
}

func TestListUsers(t *testing.T) {
	c := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Error("request should carry the session credential")
		}
		json.NewEncoder(w).Encode([]User{
			{ID: 1, Name: "Maria Silva", Email: "maria@academico.edu", Role: session.RoleAdmin},
		})
	})

	users, err := c.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 || users[0].Name != "Maria Silva" {
		t.Errorf("users = %+v", users)
	}
}

func TestCreateUser(t *testing.T) {
	c := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q", r.Method)
		}
		var u User
		if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
			t.Fatal(err)
		}
		u.ID = 42
		json.NewEncoder(w).Encode(u)
	})

	u, err := c.CreateUser(context.Background(), User{Name: "Novo", Email: "novo@academico.edu", Role: session.RoleStudent})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID != 42 {
		t.Errorf("ID = %d, want 42", u.ID)
	}
}

func TestDeleteCourse(t *testing.T) {
	var gotMethod, gotPath string
	c := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.DeleteCourse(context.Background(), 7); err != nil {
		t.Fatalf("DeleteCourse: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/courses/7" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
}

func TestListCurriculaByStudent(t *testing.T) {
	c := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/curricula/student/3" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]Curriculum{
			{ID: 1, CourseID: 7, DisciplineID: 2, StudentID: 3, Status: "ENROLLED"},
		})
	})

	records, err := c.ListCurriculaByStudent(context.Background(), 3)
	if err != nil {
		t.Fatalf("ListCurriculaByStudent: %v", err)
	}
	if len(records) != 1 || records[0].Status != "ENROLLED" {
		t.Errorf("records = %+v", records)
	}
}

func TestBackendErrorReachesCaller(t *testing.T) {
	c := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetUser(context.Background(), 99)
	var be *BackendError
	if !errors.As(err, &be) {
		t.Fatalf("err = %v, want *BackendError", err)
	}
	if be.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", be.Status)
	}
	var ue *url.Error
	if !errors.As(err, &ue) {
		t.Errorf("translated error should pass through the http.Client wrapping, got %T", err)
	}
}
