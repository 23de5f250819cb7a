package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"projecthub/internal/db/dbtest"
	"projecthub/internal/model"
)

func strPtr(s string) *string { return &s }

func seedUser(t *testing.T, repo UserRepository, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name, Email: name + "@example.com", PasswordHash: "x", Role: model.RoleManager}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(fmt.Errorf("create: %w", &mysql.MySQLError{Number: 1062})))
	assert.False(t, IsUniqueViolation(&mysql.MySQLError{Number: 1452}))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: users.email")))
}

func TestUserRepository_Uniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(dbtest.Open(t))

	first := seedUser(t, repo, "alice")

	dupEmail := &model.User{Username: "other", Email: "alice@example.com", PasswordHash: "x", Role: model.RoleUser}
	err := repo.Create(ctx, dupEmail)
	assert.True(t, IsUniqueViolation(err), "got %v", err)

	dupName := &model.User{Username: "alice", Email: "new@example.com", PasswordHash: "x", Role: model.RoleUser}
	assert.True(t, IsUniqueViolation(repo.Create(ctx, dupName)))

	found, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	_, err = repo.FindByID(ctx, 999)
	assert.True(t, IsNotFound(err))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestProjectRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.Open(t)
	users := NewUserRepository(gdb)
	projects := NewProjectRepository(gdb)
	members := NewMemberRepository(gdb)
	tasks := NewTaskRepository(gdb)
	comments := NewCommentRepository(gdb)

	owner := seedUser(t, users, "owner")
	dev := seedUser(t, users, "dev")

	p := &model.Project{Name: "Apollo", OwnerID: owner.ID}
	require.NoError(t, projects.Create(ctx, p))
	keep := &model.Project{Name: "Gemini", OwnerID: owner.ID}
	require.NoError(t, projects.Create(ctx, keep))

	require.NoError(t, members.Create(ctx, &model.ProjectMember{ProjectID: p.ID, UserID: dev.ID, Role: "developer"}))

	task := &model.Task{Title: "Launch", Status: model.TaskStatusTodo, ProjectID: p.ID}
	require.NoError(t, tasks.Create(ctx, task))
	other := &model.Task{Title: "Orbit", Status: model.TaskStatusTodo, ProjectID: keep.ID}
	require.NoError(t, tasks.Create(ctx, other))
	require.NoError(t, comments.Create(ctx, &model.TaskComment{TaskID: task.ID, UserID: owner.ID, Content: "go"}))
	require.NoError(t, comments.Create(ctx, &model.TaskComment{TaskID: other.ID, UserID: owner.ID, Content: "stay"}))

	require.NoError(t, projects.Delete(ctx, p.ID))

	left, err := tasks.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	ms, err := members.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, ms)

	cs, err := comments.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, cs)

	// untouched siblings
	cs, err = comments.ListByTask(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, cs, 1)

	assert.True(t, IsNotFound(projects.Delete(ctx, p.ID)))
}

func TestProjectRepository_UpdateAndNameUniqueness(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.Open(t)
	owner := seedUser(t, NewUserRepository(gdb), "owner")
	projects := NewProjectRepository(gdb)

	a := &model.Project{Name: "A", Description: strPtr("first"), OwnerID: owner.ID}
	require.NoError(t, projects.Create(ctx, a))
	b := &model.Project{Name: "B", OwnerID: owner.ID}
	require.NoError(t, projects.Create(ctx, b))

	assert.True(t, IsUniqueViolation(projects.Create(ctx, &model.Project{Name: "A", OwnerID: owner.ID})))

	b.Name = "A"
	assert.True(t, IsUniqueViolation(projects.Update(ctx, b)))

	a.Name = "A2"
	a.Description = nil
	require.NoError(t, projects.Update(ctx, a))
	got, err := projects.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Name)
	assert.Nil(t, got.Description)

	count, err := projects.CountByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestMemberRepository_PairIsUnique(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.Open(t)
	users := NewUserRepository(gdb)
	owner := seedUser(t, users, "owner")
	dev := seedUser(t, users, "dev")
	p := &model.Project{Name: "P", OwnerID: owner.ID}
	require.NoError(t, NewProjectRepository(gdb).Create(ctx, p))
	members := NewMemberRepository(gdb)

	require.NoError(t, members.Create(ctx, &model.ProjectMember{ProjectID: p.ID, UserID: dev.ID, Role: "developer"}))
	err := members.Create(ctx, &model.ProjectMember{ProjectID: p.ID, UserID: dev.ID, Role: "tester"})
	assert.True(t, IsUniqueViolation(err), "got %v", err)

	m, err := members.Find(ctx, p.ID, dev.ID)
	require.NoError(t, err)
	assert.Equal(t, "developer", m.Role)

	require.NoError(t, members.Delete(ctx, p.ID, dev.ID))
	assert.True(t, IsNotFound(members.Delete(ctx, p.ID, dev.ID)))
}

func TestTaskRepository_OwnerQueries(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.Open(t)
	users := NewUserRepository(gdb)
	projects := NewProjectRepository(gdb)
	tasks := NewTaskRepository(gdb)

	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")
	pa := &model.Project{Name: "alice-p", OwnerID: alice.ID}
	pb := &model.Project{Name: "bob-p", OwnerID: bob.ID}
	require.NoError(t, projects.Create(ctx, pa))
	require.NoError(t, projects.Create(ctx, pb))

	for _, st := range []model.TaskStatus{model.TaskStatusTodo, model.TaskStatusTodo, model.TaskStatusDone} {
		require.NoError(t, tasks.Create(ctx, &model.Task{Title: "a", Status: st, ProjectID: pa.ID, AssigneeID: &bob.ID}))
	}
	require.NoError(t, tasks.Create(ctx, &model.Task{Title: "b", Status: model.TaskStatusInProgress, ProjectID: pb.ID}))

	owned, err := tasks.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, owned, 3)
	for _, task := range owned {
		assert.Equal(t, pa.ID, task.ProjectID)
		assert.Equal(t, "a", task.Title)
	}

	counts, err := tasks.CountByStatusForOwner(ctx, alice.ID)
	require.NoError(t, err)
	byStatus := map[model.TaskStatus]int64{}
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}
	assert.Equal(t, map[model.TaskStatus]int64{model.TaskStatusTodo: 2, model.TaskStatusDone: 1}, byStatus)

	assigned, err := tasks.CountAssignedTo(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), assigned)
}

func TestTaskRepository_UpdateAssigneeTouchesNothingElse(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.Open(t)
	users := NewUserRepository(gdb)
	owner := seedUser(t, users, "owner")
	dev := seedUser(t, users, "dev")
	p := &model.Project{Name: "P", OwnerID: owner.ID}
	require.NoError(t, NewProjectRepository(gdb).Create(ctx, p))
	tasks := NewTaskRepository(gdb)

	task := &model.Task{Title: "t", Description: strPtr("d"), Status: model.TaskStatusInProgress, ProjectID: p.ID}
	require.NoError(t, tasks.Create(ctx, task))

	require.NoError(t, tasks.UpdateAssignee(ctx, task.ID, &dev.ID))

	got, err := tasks.FindByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AssigneeID)
	assert.Equal(t, dev.ID, *got.AssigneeID)
	assert.Equal(t, "t", got.Title)
	assert.Equal(t, "d", *got.Description)
	assert.Equal(t, model.TaskStatusInProgress, got.Status)
	assert.Equal(t, p.ID, got.ProjectID)

	require.NoError(t, tasks.Delete(ctx, task.ID))
	assert.True(t, IsNotFound(tasks.Delete(ctx, task.ID)))
}
