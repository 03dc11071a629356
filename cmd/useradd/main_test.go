package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCreator struct {
	name, email, password string
	err                   error
}

func (f *fakeCreator) CreateUser(_ context.Context, name, email, password string) (*models.User, error) {
	f.name, f.email, f.password = name, email, password
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: 7, Name: name, Email: email}, nil
}

func stubPassword(t *testing.T, pw string, err error) {
	t.Helper()
	old := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(pw), err }
	t.Cleanup(func() { readPassword = old })
}

func TestRun_CreatesUser(t *testing.T) {
	stubPassword(t, "secret1", nil)
	fc := &fakeCreator{}
	var out bytes.Buffer

	err := run(context.Background(), fc, []string{"-d", "postgres://x", "-name", "Alice", "-email", "alice@example.com"}, &out)
	require.NoError(t, err)

	assert.Equal(t, "Alice", fc.name)
	assert.Equal(t, "alice@example.com", fc.email)
	assert.Equal(t, "secret1", fc.password)
	assert.Contains(t, out.String(), "Created user #7 Alice <alice@example.com>")
}

func TestRun_ValidationErrors(t *testing.T) {
	stubPassword(t, "1", nil)
	verr := common.NewValidationError()
	verr.Add("password", "The password must be at least 6 characters.")
	var out bytes.Buffer

	err := run(context.Background(), &fakeCreator{err: verr}, []string{"-name", "A", "-email", "a@example.com"}, &out)
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.Contains(t, out.String(), "password: The password must be at least 6 characters.")
}

func TestRun_DuplicateEmail(t *testing.T) {
	stubPassword(t, "secret1", nil)
	var out bytes.Buffer

	err := run(context.Background(), &fakeCreator{err: common.ErrorAlreadyExists}, []string{"-name", "A", "-email", "a@example.com"}, &out)
	assert.EqualError(t, err, "email a@example.com is already taken")
}

func TestRun_PasswordReadError(t *testing.T) {
	stubPassword(t, "", errors.New("not a terminal"))
	fc := &fakeCreator{}

	err := run(context.Background(), fc, []string{"-name", "A"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "read password")
	assert.Empty(t, fc.name)
}
