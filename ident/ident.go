package ident

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

/* Scheme tells which identifier shape the active storage backend hands out.
 * A deployment uses exactly one scheme; controllers and services validate
 * path identifiers against it before anything reaches the repository.
 */
type Scheme int

const (
	Sequential Scheme = iota + 1
	ObjectID
)

var validate = validator.New()

var ErrInvalid = errors.New("invalid identifier")

func (s Scheme) String() string {
	switch s {
	case Sequential:
		return "sequential"
	case ObjectID:
		return "objectid"
	}
	return "unknown"
}

// Validate checks that id has the shape the scheme produces
func (s Scheme) Validate(id string) error {
	switch s {
	case Sequential:
		// shape only: digits beyond int64 are well formed, they just never match a record
		if err := validate.Var(id, "required,number"); err != nil {
			return fmt.Errorf("%w: %q is not numeric", ErrInvalid, id)
		}
		return nil
	case ObjectID:
		if err := validate.Var(id, "required,mongodb"); err != nil {
			return fmt.Errorf("%w: %q is not an ObjectId", ErrInvalid, id)
		}
		return nil
	}
	return fmt.Errorf("unknown identifier scheme %d", s)
}

// Message is the client-facing text for a malformed identifier
func (s Scheme) Message() string {
	if s == ObjectID {
		return "ID must be a valid ObjectId"
	}
	return "ID must be numeric"
}

// ParseSequential converts a sequential identifier to its numeric value
func ParseSequential(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalid, id)
	}
	return n, nil
}

// FormatSequential is the inverse of ParseSequential
func FormatSequential(n int64) string {
	return strconv.FormatInt(n, 10)
}

// NewObjectID returns 12 random bytes hex encoded (24 characters)
func NewObjectID() (string, error) {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}
