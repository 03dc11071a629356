package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/todoapi/internal/api"
	"github.com/dmitrijs2005/todoapi/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	token string
	tasks map[int64]*api.Task
	next  int64

	lastPassword string
	closed       bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{tasks: map[int64]*api.Task{}}
}

func (f *fakeClient) Close() error   { f.closed = true; return nil }
func (f *fakeClient) LoggedIn() bool { return f.token != "" }

func (f *fakeClient) Login(_ context.Context, email, password string) (*api.UserProfile, error) {
	f.lastPassword = password
	if password != "secret1" {
		return nil, client.ErrInvalidCredentials
	}
	f.token = "tok"
	return &api.UserProfile{ID: 1, Name: "Alice", Email: email}, nil
}

func (f *fakeClient) Logout(context.Context) error {
	f.token = ""
	return nil
}

func (f *fakeClient) Me(context.Context) (*api.UserProfile, error) {
	return &api.UserProfile{ID: 1, Name: "Alice", Email: "alice@example.com"}, nil
}

func (f *fakeClient) ListTasks(context.Context) ([]api.Task, error) {
	out := make([]api.Task, 0, len(f.tasks))
	for id := int64(1); id <= f.next; id++ {
		if t, ok := f.tasks[id]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeClient) GetTask(_ context.Context, id int64) (*api.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeClient) CreateTask(_ context.Context, title string, description *string) (*api.Task, error) {
	f.next++
	t := &api.Task{ID: f.next, UserID: 1, Title: title, CreatedAt: time.Unix(0, 0).UTC(), UpdatedAt: time.Unix(0, 0).UTC()}
	if description != nil {
		t.Description = *description
	}
	f.tasks[t.ID] = t
	cp := *t
	return &cp, nil
}

func (f *fakeClient) UpdateTask(_ context.Context, req *api.UpdateTaskRequest) (*api.Task, error) {
	t, ok := f.tasks[req.ID]
	if !ok {
		return nil, client.ErrNotFound
	}
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Completed != nil {
		t.Completed = *req.Completed
	}
	cp := *t
	return &cp, nil
}

func (f *fakeClient) DeleteTask(_ context.Context, id int64) error {
	if _, ok := f.tasks[id]; !ok {
		return client.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

func newTestApp(fc *fakeClient, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{client: fc, reader: rdr(input), out: &out}, &out
}

func TestLogin(t *testing.T) {
	stubPassword(t, "secret1", nil)
	fc := newFakeClient()
	a, out := newTestApp(fc, "alice@example.com\n")

	require.NoError(t, a.Login(context.Background()))
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "(alice@example.com) ", a.status())
	assert.Contains(t, out.String(), "Logged in as Alice")
}

func TestLogin_Failure(t *testing.T) {
	stubPassword(t, "nope", nil)
	a, _ := newTestApp(newFakeClient(), "alice@example.com\n")

	err := a.Login(context.Background())
	assert.ErrorIs(t, err, client.ErrInvalidCredentials)
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, "", a.status())
}

func TestTaskCommands(t *testing.T) {
	ctx := context.Background()
	fc := newFakeClient()
	fc.token = "tok"
	a, out := newTestApp(fc, "\nBuy bread\nwith seeds\nBread\n")

	require.NoError(t, a.List(ctx))
	assert.Contains(t, out.String(), "No tasks")

	require.NoError(t, a.Add(ctx, []string{"Buy", "milk"}))
	assert.Equal(t, "Buy milk", fc.tasks[1].Title)
	assert.Equal(t, "", fc.tasks[1].Description)

	require.NoError(t, a.Add(ctx, nil))
	assert.Equal(t, "Buy bread", fc.tasks[2].Title)
	assert.Equal(t, "with seeds", fc.tasks[2].Description)

	require.NoError(t, a.Done(ctx, []string{"1"}))
	assert.True(t, fc.tasks[1].Completed)
	require.NoError(t, a.Undo(ctx, []string{"1"}))
	assert.False(t, fc.tasks[1].Completed)

	require.NoError(t, a.Rename(ctx, []string{"2"}))
	assert.Equal(t, "Bread", fc.tasks[2].Title)
	require.NoError(t, a.Rename(ctx, []string{"1", "Oat", "milk"}))
	assert.Equal(t, "Oat milk", fc.tasks[1].Title)

	out.Reset()
	require.NoError(t, a.List(ctx))
	assert.Equal(t, "#1 [ ] Oat milk\n#2 [ ] Bread\n", out.String())

	out.Reset()
	require.NoError(t, a.Show(ctx, []string{"2"}))
	assert.Contains(t, out.String(), "with seeds")

	require.NoError(t, a.Remove(ctx, []string{"2"}))
	assert.ErrorIs(t, a.Show(ctx, []string{"2"}), client.ErrNotFound)
	assert.Error(t, a.Remove(ctx, []string{"x"}))

	require.NoError(t, a.Me(ctx))
	require.NoError(t, a.Logout(ctx))
	assert.False(t, a.isLoggedIn())
}

func TestFormatTask(t *testing.T) {
	assert.Equal(t, "#3 [x] Done", formatTask(&api.Task{ID: 3, Title: "Done", Completed: true}))
	assert.Equal(t, "#4 [ ] Open", formatTask(&api.Task{ID: 4, Title: "Open"}))
}
