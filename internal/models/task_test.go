package models

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard-be/internal/common"
)

func TestParseStatus_EmptyDefaultsToPending(t *testing.T) {
	status, err := ParseStatus("")
	require.NoError(t, err)
	require.Equal(t, StatusPending, status)
}

func TestParseStatus_AllowedValues(t *testing.T) {
	for _, s := range []string{"pending", "in-progress", "completed"} {
		status, err := ParseStatus(s)
		require.NoError(t, err)
		require.Equal(t, TaskStatus(s), status)
	}
}

func TestParseStatus_UnknownValue(t *testing.T) {
	_, err := ParseStatus("done")
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestTaskValidate_TrimsFields(t *testing.T) {
	task := Task{Title: "  Buy milk  ", Description: "\t2%\n"}
	require.NoError(t, task.Validate())
	require.Equal(t, "Buy milk", task.Title)
	require.Equal(t, "2%", task.Description)
}

func TestTaskValidate_EmptyAfterTrim(t *testing.T) {
	task := Task{Title: "   ", Description: "something"}
	require.ErrorIs(t, task.Validate(), common.ErrValidation)

	task = Task{Title: "something", Description: " \n "}
	require.ErrorIs(t, task.Validate(), common.ErrValidation)
}
