// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package auth

import "github.com/google/uuid"

// IDGenerator produces opaque, collision-resistant identifiers.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random (version 4) UUIDs.
type UUIDGenerator struct{}

// NewUUIDGenerator creates a new UUIDGenerator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a fresh UUID in canonical string form.
func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}

var _ IDGenerator = (*UUIDGenerator)(nil)
