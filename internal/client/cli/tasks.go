package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/taskboard/taskboard-be/internal/models"
)

func (a *App) requireLogin() bool {
	if !a.isLoggedIn() {
		fmt.Println("Please login first.")
		return false
	}
	return true
}

// List prints the user's tasks, newest first.
func (a *App) List(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	tasks, err := a.api.ListTasks(ctx, a.session.Token())
	if err != nil {
		fmt.Println("Failed to list tasks:", err)
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks yet.")
		return nil
	}

	for _, task := range tasks {
		fmt.Printf("[%s] %s — %s (id: %s)\n", task.Status, task.Title, task.Description, task.ID)
	}
	return nil
}

// Add prompts for a new task and creates it.
func (a *App) Add(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	title, err := promptText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	description, err := promptText(a.reader, "Description", os.Stdout)
	if err != nil {
		return err
	}
	status, err := promptText(a.reader, "Status (pending/in-progress/completed, empty for pending)", os.Stdout)
	if err != nil {
		return err
	}

	task, err := a.api.CreateTask(ctx, a.session.Token(), title, description, status)
	if err != nil {
		fmt.Println("Failed to create task:", err)
		return err
	}
	fmt.Printf("Created %q (id: %s)\n", task.Title, task.ID)
	return nil
}

// Update prompts for a task id and new field values; empty input keeps the
// stored value.
func (a *App) Update(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	id, err := promptText(a.reader, "Task id", os.Stdout)
	if err != nil {
		return err
	}
	title, err := promptText(a.reader, "New title (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	description, err := promptText(a.reader, "New description (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	status, err := promptText(a.reader, "New status (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	var patch models.TaskPatch
	if title != "" {
		patch.Title = &title
	}
	if description != "" {
		patch.Description = &description
	}
	if status != "" {
		patch.Status = &status
	}

	task, err := a.api.UpdateTask(ctx, a.session.Token(), id, patch)
	if err != nil {
		fmt.Println("Failed to update task:", err)
		return err
	}
	fmt.Printf("Updated %q, status %s\n", task.Title, task.Status)
	return nil
}

// Done marks a task completed.
func (a *App) Done(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	id, err := promptText(a.reader, "Task id", os.Stdout)
	if err != nil {
		return err
	}

	completed := string(models.StatusCompleted)
	task, err := a.api.UpdateTask(ctx, a.session.Token(), id, models.TaskPatch{Status: &completed})
	if err != nil {
		fmt.Println("Failed to complete task:", err)
		return err
	}
	fmt.Printf("Completed %q\n", task.Title)
	return nil
}

// Delete removes a task.
func (a *App) Delete(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	id, err := promptText(a.reader, "Task id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.DeleteTask(ctx, a.session.Token(), id); err != nil {
		fmt.Println("Failed to delete task:", err)
		return err
	}
	fmt.Println("Deleted.")
	return nil
}
