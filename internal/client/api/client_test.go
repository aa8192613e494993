package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard-be/internal/common"
	"github.com/taskboard/taskboard-be/internal/models"
)

func TestLogin_SendsCredentialsAndDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "a@x.com", body["email"])
		require.Equal(t, "pw", body["password"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"user":  models.User{ID: "u1", Name: "Ann", Email: "a@x.com"},
			"token": "tok",
		})
	}))
	defer srv.Close()

	user, token, err := New(srv.URL).Login(context.Background(), "a@x.com", "pw")
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
	require.Equal(t, "tok", token)
}

func TestListTasks_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]models.Task{{ID: "t1", Title: "Buy milk"}})
	}))
	defer srv.Close()

	tasks, err := New(srv.URL).ListTasks(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "Buy milk", tasks[0].Title)
}

func TestErrorEnvelope_MapsToSentinels(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, common.ErrValidation},
		{http.StatusUnauthorized, common.ErrInvalidCredentials},
		{http.StatusNotFound, common.ErrNotFound},
		{http.StatusConflict, common.ErrDuplicateEmail},
		{http.StatusInternalServerError, common.ErrUnavailable},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			json.NewEncoder(w).Encode(map[string]string{"error": "nope"})
		}))

		_, err := New(srv.URL).ListTasks(context.Background(), "tok")
		require.ErrorIs(t, err, tc.want, "status %d", tc.status)
		require.Contains(t, err.Error(), "nope")
		srv.Close()
	}
}

func TestErrorWithoutEnvelope_IsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListTasks(context.Background(), "tok")
	require.ErrorIs(t, err, common.ErrUnavailable)
}

func TestTransportFault_IsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := New(srv.URL).ListTasks(context.Background(), "tok")
	require.ErrorIs(t, err, common.ErrUnavailable)
}

func TestDeleteTask_NoContentSucceeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/tasks/t1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL).DeleteTask(context.Background(), "tok", "t1"))
}

func TestUpdateTask_OmitsUnsetPatchFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Contains(t, body, "status")
		require.NotContains(t, body, "title")
		require.NotContains(t, body, "description")

		json.NewEncoder(w).Encode(models.Task{ID: "t1", Status: models.StatusCompleted})
	}))
	defer srv.Close()

	status := "completed"
	task, err := New(srv.URL).UpdateTask(context.Background(), "tok", "t1", models.TaskPatch{Status: &status})
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, task.Status)
}
