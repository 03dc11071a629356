package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/todoapi/internal/api"
	"github.com/dmitrijs2005/todoapi/internal/common"
)

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return fmt.Errorf("login unsuccessful: %w", err)
	}

	a.user = user
	fmt.Fprintf(a.out, "Logged in as %s\n", user.Name)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.user = nil
	if err := a.client.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	user, err := a.client.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "#%d %s <%s>\n", user.ID, user.Name, user.Email)
	return nil
}

func (a *App) List(ctx context.Context) error {
	tasks, err := a.client.ListTasks(ctx)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks")
		return nil
	}
	for i := range tasks {
		fmt.Fprintln(a.out, formatTask(&tasks[i]))
	}
	return nil
}

// Add creates a task. The title comes from args or is prompted for; the
// description is prompted for and may be left empty.
func (a *App) Add(ctx context.Context, args []string) error {
	title := strings.Join(args, " ")
	if title == "" {
		var err error
		if title, err = GetSimpleText(a.reader, "Enter title", a.out); err != nil {
			return err
		}
	}

	text, err := GetSimpleText(a.reader, "Enter description (optional)", a.out)
	if err != nil {
		return err
	}
	var description *string
	if text != "" {
		description = &text
	}

	t, err := a.client.CreateTask(ctx, title, description)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created %s\n", formatTask(t))
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	t, err := a.client.GetTask(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, formatTask(t))
	if t.Description != "" {
		fmt.Fprintf(a.out, "  %s\n", t.Description)
	}
	fmt.Fprintf(a.out, "  created %s, updated %s\n", t.CreatedAt.Format("2006-01-02 15:04"), t.UpdatedAt.Format("2006-01-02 15:04"))
	return nil
}

func (a *App) Done(ctx context.Context, args []string) error {
	return a.setCompleted(ctx, args, true)
}

func (a *App) Undo(ctx context.Context, args []string) error {
	return a.setCompleted(ctx, args, false)
}

func (a *App) setCompleted(ctx context.Context, args []string, completed bool) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	t, err := a.client.UpdateTask(ctx, &api.UpdateTaskRequest{ID: id, Completed: &completed})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, formatTask(t))
	return nil
}

func (a *App) Rename(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	title := strings.Join(args[1:], " ")
	if title == "" {
		if title, err = GetSimpleText(a.reader, "Enter new title", a.out); err != nil {
			return err
		}
	}

	t, err := a.client.UpdateTask(ctx, &api.UpdateTaskRequest{ID: id, Title: &title})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, formatTask(t))
	return nil
}

func (a *App) Remove(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	if err := a.client.DeleteTask(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted #%d\n", id)
	return nil
}

func formatTask(t *api.Task) string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	return fmt.Sprintf("#%d [%s] %s", t.ID, mark, t.Title)
}
