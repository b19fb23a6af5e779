// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authd/authd/internal/store"
	"github.com/authd/authd/pkg/errutil"
)

const testDatabaseURL = "postgres://authd@localhost/authd"

func TestParseForceVersion(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantVersion int
		wantErr     bool
	}{
		{name: "valid integer", input: "3", wantVersion: 3},
		{name: "zero is valid", input: "0", wantVersion: 0},
		{name: "non-numeric returns error", input: "abc", wantErr: true},
		{name: "trailing chars are ignored", input: "3abc", wantVersion: 3},
		{name: "negative is valid", input: "-1", wantVersion: -1},
		{name: "empty string returns error", input: "", wantErr: true},
		{name: "whitespace only returns error", input: "   ", wantErr: true},
		{name: "leading whitespace is handled", input: "  42", wantVersion: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, err := parseForceVersion(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				errutil.AssertErrorCode(t, err, "INVALID_VERSION")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, version)
		})
	}
}

func TestMigrateCmd_RequiresDatabaseURL(t *testing.T) {
	m := &fakeMigrator{}
	root, _ := newTestRoot(t, newMigrateCmd(&MigrateDeps{MigratorFactory: m.factory}), "migrate", "up")

	err := root.Execute()
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "CONFIG_INVALID")
	errutil.AssertErrorContext(t, err, "key", "database.url")
	assert.Empty(t, m.calls)
}

func TestMigrateCmd_Up(t *testing.T) {
	for _, args := range [][]string{{"migrate"}, {"migrate", "up"}} {
		m := &fakeMigrator{status: store.Status{Version: 2, Name: "add_contacts"}}
		root, out := newTestRoot(t, newMigrateCmd(&MigrateDeps{MigratorFactory: m.factory}),
			append(args, "--database-url", testDatabaseURL)...)

		require.NoError(t, root.Execute())
		assert.Equal(t, []string{"up", "status"}, m.calls)
		assert.True(t, m.closed)
		assert.Contains(t, out.String(), "Migrations completed successfully (version 2)")
	}
}

func TestMigrateCmd_UpFailureClosesMigrator(t *testing.T) {
	m := &fakeMigrator{upErr: errors.New("dirty database version 2")}
	root, _ := newTestRoot(t, newMigrateCmd(&MigrateDeps{MigratorFactory: m.factory}),
		"migrate", "up", "--database-url", testDatabaseURL)

	err := root.Execute()
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "MIGRATION_FAILED")
	assert.True(t, m.closed)
}

func TestMigrateCmd_FactoryError(t *testing.T) {
	factory := func(string) (Migrator, error) { return nil, errors.New("bad url") }
	root, _ := newTestRoot(t, newMigrateCmd(&MigrateDeps{MigratorFactory: factory}),
		"migrate", "status", "--database-url", testDatabaseURL)

	err := root.Execute()
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "DB_CONNECT_FAILED")
}

func TestMigrateCmd_Down(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantCalls []string
		wantSteps int
		wantErr   string
	}{
		{name: "default rolls back one", args: nil, wantCalls: []string{"steps"}, wantSteps: -1},
		{name: "explicit steps", args: []string{"--steps", "3"}, wantCalls: []string{"steps"}, wantSteps: -3},
		{name: "all", args: []string{"--all"}, wantCalls: []string{"down"}},
		{name: "zero steps rejected", args: []string{"--steps", "0"}, wantErr: "INVALID_STEPS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &fakeMigrator{}
			args := append([]string{"migrate", "down", "--database-url", testDatabaseURL}, tt.args...)
			root, _ := newTestRoot(t, newMigrateCmd(&MigrateDeps{MigratorFactory: m.factory}), args...)

			err := root.Execute()
			if tt.wantErr != "" {
				require.Error(t, err)
				errutil.AssertErrorCode(t, err, tt.wantErr)
				assert.Empty(t, m.calls)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCalls, m.calls)
			assert.Equal(t, tt.wantSteps, m.steps)
			assert.True(t, m.closed)
		})
	}
}

func TestMigrateCmd_Status(t *testing.T) {
	tests := []struct {
		name   string
		status store.Status
		want   []string
	}{
		{
			name:   "fresh database",
			status: store.Status{Pending: []uint{1, 2}},
			want:   []string{"version: none", "dirty: false", "pending: 1, 2"},
		},
		{
			name:   "up to date",
			status: store.Status{Version: 2, Name: "add_contacts"},
			want:   []string{"version: 2 (add_contacts)", "dirty: false", "pending: none"},
		},
		{
			name:   "dirty",
			status: store.Status{Version: 1, Name: "create_users", Dirty: true, Pending: []uint{2}},
			want:   []string{"version: 1 (create_users)", "dirty: true", "pending: 2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &fakeMigrator{status: tt.status}
			root, out := newTestRoot(t, newMigrateCmd(&MigrateDeps{MigratorFactory: m.factory}),
				"migrate", "status", "--database-url", testDatabaseURL)

			require.NoError(t, root.Execute())
			for _, line := range tt.want {
				assert.Contains(t, out.String(), line)
			}
		})
	}
}

func TestMigrateCmd_Force(t *testing.T) {
	m := &fakeMigrator{}
	root, out := newTestRoot(t, newMigrateCmd(&MigrateDeps{MigratorFactory: m.factory}),
		"migrate", "force", "2", "--database-url", testDatabaseURL)

	require.NoError(t, root.Execute())
	assert.Equal(t, 2, m.forced)
	assert.Contains(t, out.String(), "Forced schema version to 2")

	m = &fakeMigrator{}
	root, _ = newTestRoot(t, newMigrateCmd(&MigrateDeps{MigratorFactory: m.factory}),
		"migrate", "force", "two", "--database-url", testDatabaseURL)
	err := root.Execute()
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "INVALID_VERSION")
	assert.Empty(t, m.calls)
}
