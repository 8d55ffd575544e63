package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"tasktrack/internal/client/model"
	"tasktrack/internal/client/taskform"
	"tasktrack/internal/domain/entity"
	"tasktrack/internal/errors"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

func (a *app) tasks(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: taskctl tasks list|add|edit|rm")
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "list", "ls":
		return a.protected(ctx, a.listTasks)
	case "add":
		return a.protected(ctx, func(ctx context.Context) error { return a.addTask(ctx, rest) })
	case "edit":
		return a.protected(ctx, func(ctx context.Context) error { return a.editTask(ctx, rest) })
	case "rm", "delete":
		return a.protected(ctx, func(ctx context.Context) error { return a.removeTask(ctx, rest) })
	default:
		return errors.Errorf("unknown tasks command %q", sub)
	}
}

func (a *app) listTasks(ctx context.Context) error {
	tasks, err := a.client.ListTasks(ctx)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks yet.")

		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tDUE\tPRIORITY\tSTATUS")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, dueString(t), t.Priority, t.Status)
	}

	return tw.Flush()
}

type taskFlags struct {
	set *pflag.FlagSet
	v   taskform.Values
}

func newTaskFlags(name string, a *app) *taskFlags {
	tf := &taskFlags{set: newFlagSet(name, a.out)}
	tf.set.StringVar(&tf.v.Title, "title", "", "task title")
	tf.set.StringVar(&tf.v.Description, "description", "", "task description")
	tf.set.StringVar(&tf.v.DueDate, "due", "", "due date, YYYY-MM-DD")
	tf.set.StringVar((*string)(&tf.v.Priority), "priority", "", "Low, Medium or High")
	tf.set.StringVar((*string)(&tf.v.Status), "status", "", "Pending, In Progress or Completed")

	return tf
}

// overlay copies the flags the user actually passed onto base.
func (tf *taskFlags) overlay(base taskform.Values) taskform.Values {
	tf.set.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "title":
			base.Title = tf.v.Title
		case "description":
			base.Description = tf.v.Description
		case "due":
			base.DueDate = tf.v.DueDate
		case "priority":
			base.Priority = entity.Priority(tf.v.Priority)
		case "status":
			base.Status = entity.Status(tf.v.Status)
		}
	})

	return base
}

func (a *app) addTask(ctx context.Context, args []string) error {
	tf := newTaskFlags("tasks add", a)
	if err := tf.set.Parse(args); err != nil {
		return err
	}

	form := &taskform.Form{Mode: taskform.Create, OnSubmit: a.client.CreateTask}
	task, err := form.Submit(ctx, tf.overlay(form.Defaults()))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created task %s.\n", task.ID)

	return nil
}

func (a *app) editTask(ctx context.Context, args []string) error {
	tf := newTaskFlags("tasks edit", a)
	if err := tf.set.Parse(args); err != nil {
		return err
	}
	id, err := taskIDArg(tf.set.Args())
	if err != nil {
		return err
	}

	current, err := a.client.GetTask(ctx, id)
	if err != nil {
		return err
	}

	form := &taskform.Form{
		Mode:    taskform.Edit,
		Initial: current,
		OnSubmit: func(ctx context.Context, payload *model.TaskPayload) (*model.Task, error) {
			return a.client.UpdateTask(ctx, id, payload)
		},
	}
	task, err := form.Submit(ctx, tf.overlay(form.Defaults()))
	if errors.Is(err, taskform.ErrNoChanges) {
		fmt.Fprintln(a.out, "Nothing to change.")

		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated task %s.\n", task.ID)

	return nil
}

func (a *app) removeTask(ctx context.Context, args []string) error {
	id, err := taskIDArg(args)
	if err != nil {
		return err
	}
	if err := a.client.DeleteTask(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted task %s.\n", id)

	return nil
}

func taskIDArg(args []string) (uuid.UUID, error) {
	if len(args) != 1 {
		return uuid.Nil, errors.New("expected exactly one task id")
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "invalid task id %q", args[0])
	}

	return id, nil
}

func dueString(t *model.Task) string {
	if t.DueDate == nil {
		return "-"
	}

	return t.DueDate.UTC().Format(taskform.DateLayout)
}
