package service

import "github.com/google/uuid"

// IDGenerator produces unlikely-to-collide unique entry ids.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator is the default generator.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
