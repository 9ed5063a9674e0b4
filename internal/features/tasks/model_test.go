package tasks

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewCreateTaskRequest(t *testing.T) {
	req, err := NewCreateTaskRequest("Buy milk", "2 liters", "u1")
	require.NoError(t, err)
	require.Equal(t, "Buy milk", req.Title)
	require.Equal(t, "u1", req.UserID)
}

func TestNewCreateTaskRequest_Invalid(t *testing.T) {
	cases := []struct {
		name        string
		title       string
		description string
		userID      string
	}{
		{"empty title", "", "", "u1"},
		{"blank title", "   ", "", "u1"},
		{"title too long", strings.Repeat("a", 101), "", "u1"},
		{"description too long", "ok", strings.Repeat("d", 501), "u1"},
		{"missing user", "ok", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCreateTaskRequest(tc.title, tc.description, tc.userID)
			require.Error(t, err)
		})
	}
}

func TestNewCreateTaskRequest_BoundaryLengths(t *testing.T) {
	_, err := NewCreateTaskRequest(strings.Repeat("a", 100), strings.Repeat("d", 500), "u1")
	require.NoError(t, err)
}

func TestNewUpdateTaskRequest_RequiresID(t *testing.T) {
	_, err := NewUpdateTaskRequest("", "title", "", false, "u1")
	require.ErrorIs(t, err, ErrMissingID)

	req, err := NewUpdateTaskRequest("t1", "title", "", true, "u1")
	require.NoError(t, err)
	require.True(t, req.Completed)
}

func TestTaskValidate(t *testing.T) {
	now := time.Now()
	valid := Task{ID: "t1", UserID: "u1", Title: "ok", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, valid.Validate())

	missingUser := valid
	missingUser.UserID = ""
	require.ErrorIs(t, missingUser.Validate(), ErrMissingUserID)

	missingID := valid
	missingID.ID = ""
	require.ErrorIs(t, missingID.Validate(), ErrMissingID)

	badTitle := valid
	badTitle.Title = strings.Repeat("x", 101)
	require.Error(t, badTitle.Validate())
}
