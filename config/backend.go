package config

import "strings"

// Backend selects the storage implementation behind both resources
type Backend int

const (
	File Backend = iota + 1
	Mongo
	Redis
)

func NewBackend(s string) Backend {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "file":
		return File
	case "mongo", "mongodb":
		return Mongo
	case "redis":
		return Redis
	}
	return 0
}

func (b Backend) String() string {
	switch b {
	case File:
		return "file"
	case Mongo:
		return "mongo"
	case Redis:
		return "redis"
	}
	return "unknown"
}
