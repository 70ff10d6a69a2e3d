package types

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownEngine is returned when a vendor key does not name a supported engine.
var ErrUnknownEngine = errors.New("unknown database engine")

// Engine represents the database engine (vendor) a migration targets
type Engine int32

const (
	Engine_ENGINE_UNSPECIFIED Engine = 0
	Engine_POSTGRES           Engine = 1
	Engine_MYSQL              Engine = 2
	Engine_SQLITE             Engine = 3
)

// Engines lists every supported engine in a stable order.
var Engines = []Engine{Engine_POSTGRES, Engine_MYSQL, Engine_SQLITE}

func (e Engine) String() string {
	switch e {
	case Engine_ENGINE_UNSPECIFIED:
		return "ENGINE_UNSPECIFIED"
	case Engine_POSTGRES:
		return "POSTGRES"
	case Engine_MYSQL:
		return "MYSQL"
	case Engine_SQLITE:
		return "SQLITE"
	default:
		return "UNKNOWN"
	}
}

// Key returns the lower-case vendor key used in configuration files and flags.
func (e Engine) Key() string {
	switch e {
	case Engine_POSTGRES:
		return "postgresql"
	case Engine_MYSQL:
		return "mysql"
	case Engine_SQLITE:
		return "sqlite"
	default:
		return ""
	}
}

// TransactionalDDL reports whether DDL statements of the engine run inside a transaction.
func (e Engine) TransactionalDDL() bool {
	switch e {
	case Engine_POSTGRES, Engine_SQLITE:
		return true
	default:
		return false
	}
}

// ParseEngine resolves a vendor key. Unknown keys never default to an engine.
func ParseEngine(s string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "postgresql", "postgres", "pg":
		return Engine_POSTGRES, nil
	case "mysql":
		return Engine_MYSQL, nil
	case "sqlite", "sqlite3":
		return Engine_SQLITE, nil
	default:
		return Engine_ENGINE_UNSPECIFIED, errors.Wrapf(ErrUnknownEngine, "unsupported database engine %q", s)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler for Engine
func (e *Engine) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	engine, err := ParseEngine(s)
	if err != nil {
		return err
	}
	*e = engine
	return nil
}

// UnmarshalJSON implements json.Unmarshaler for Engine
func (e *Engine) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	engine, err := ParseEngine(s)
	if err != nil {
		return err
	}
	*e = engine
	return nil
}

// MarshalJSON writes the engine as its vendor key.
func (e Engine) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Key())
}

// MarshalYAML writes the engine as its vendor key.
func (e Engine) MarshalYAML() (interface{}, error) {
	return e.Key(), nil
}
