// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authd/authd/internal/auth"
	"github.com/authd/authd/pkg/errutil"
)

func TestNewHasher(t *testing.T) {
	tests := []struct {
		name     string
		hasher   string
		cost     int
		wantType any
		wantErr  bool
	}{
		{name: "empty selects bcrypt", hasher: "", wantType: &auth.BcryptHasher{}},
		{name: "bcrypt", hasher: auth.HasherBcrypt, cost: 10, wantType: &auth.BcryptHasher{}},
		{name: "argon2id", hasher: auth.HasherArgon2id, wantType: &auth.Argon2idHasher{}},
		{name: "unknown", hasher: "md5", wantErr: true},
		{name: "bcrypt cost too high", hasher: auth.HasherBcrypt, cost: 99, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := auth.NewHasher(tt.hasher, tt.cost)
			if tt.wantErr {
				require.Error(t, err)
				errutil.AssertErrorCode(t, err, auth.KindInvalidArgument.String())
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, h)
		})
	}
}

func TestBcryptHasher(t *testing.T) {
	hasher, err := auth.NewBcryptHasher(auth.DefaultBcryptCost)
	require.NoError(t, err)

	t.Run("produces bcrypt hash", func(t *testing.T) {
		hash, err := hasher.Hash("123456789")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(hash), "$2a$08$"))
	})

	t.Run("same password produces different hashes (salt)", func(t *testing.T) {
		hash1, err := hasher.Hash("samepassword")
		require.NoError(t, err)
		hash2, err := hasher.Hash("samepassword")
		require.NoError(t, err)
		assert.NotEqual(t, hash1, hash2)
	})

	t.Run("correct password verifies", func(t *testing.T) {
		hash, err := hasher.Hash("123456789")
		require.NoError(t, err)

		ok, err := hasher.Verify("123456789", string(hash))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("incorrect password fails without error", func(t *testing.T) {
		hash, err := hasher.Hash("123456789")
		require.NoError(t, err)

		ok, err := hasher.Verify("987654321", string(hash))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("malformed hash is internal", func(t *testing.T) {
		_, err := hasher.Verify("123456789", "not-a-hash")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, auth.KindInternal.String())
	})

	t.Run("rejects empty password", func(t *testing.T) {
		_, err := hasher.Hash("")
		require.ErrorIs(t, err, auth.ErrEmptyPassword)
	})

	t.Run("password longer than 72 bytes is internal", func(t *testing.T) {
		_, err := hasher.Hash(auth.PlainPassword(strings.Repeat("x", 73)))
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, auth.KindInternal.String())
	})
}

func TestArgon2idHasher_Hash(t *testing.T) {
	hasher := auth.NewArgon2idHasher()

	t.Run("produces valid hash", func(t *testing.T) {
		hash, err := hasher.Hash("password123")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(hash), "$argon2id$"))
	})

	t.Run("same password produces different hashes (salt)", func(t *testing.T) {
		hash1, err := hasher.Hash("samepassword")
		require.NoError(t, err)
		hash2, err := hasher.Hash("samepassword")
		require.NoError(t, err)
		assert.NotEqual(t, hash1, hash2)
	})

	t.Run("rejects empty password", func(t *testing.T) {
		_, err := hasher.Hash("")
		assert.Error(t, err)
	})
}

func TestArgon2idHasher_Verify(t *testing.T) {
	hasher := auth.NewArgon2idHasher()

	t.Run("correct password verifies", func(t *testing.T) {
		hash, err := hasher.Hash("correctpassword")
		require.NoError(t, err)

		ok, err := hasher.Verify("correctpassword", string(hash))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("incorrect password fails", func(t *testing.T) {
		hash, err := hasher.Hash("correctpassword")
		require.NoError(t, err)

		ok, err := hasher.Verify("wrongpassword", string(hash))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	malformed := []struct {
		name    string
		hash    string
		wantMsg string
	}{
		{name: "invalid format", hash: "not-a-valid-hash", wantMsg: "invalid hash format"},
		{name: "wrong algorithm", hash: "$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA", wantMsg: "unsupported hash algorithm"},
		{name: "invalid version", hash: "$argon2id$vXX$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{name: "invalid parameters", hash: "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{name: "invalid salt", hash: "$argon2id$v=19$m=65536,t=1,p=4$!!!invalid!!!$aGFzaA"},
		{name: "invalid key", hash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!!invalid!!!"},
		{name: "threads overflow", hash: "$argon2id$v=19$m=65536,t=1,p=256$c2FsdA$aGFzaA", wantMsg: "threads value"},
	}

	for _, tt := range malformed {
		t.Run(tt.name+" is internal", func(t *testing.T) {
			_, err := hasher.Verify("password", tt.hash)
			require.Error(t, err)
			errutil.AssertErrorCode(t, err, auth.KindInternal.String())
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}
