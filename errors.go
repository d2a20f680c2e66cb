package depot

import (
	"fmt"
	"reflect"

	"github.com/rotisserie/eris"
)

// ErrEntityOverflow is raised when every entity identity is live
var ErrEntityOverflow = eris.New("entity identity space exhausted")

type LockedRegistryError struct{}

func (e LockedRegistryError) Error() string {
	return "registry is currently locked"
}

type EntityNotAliveError struct {
	Entity Entity
}

func (e EntityNotAliveError) Error() string {
	return fmt.Sprintf("entity %d is not alive", e.Entity)
}

type ComponentNotFoundError struct {
	Entity Entity
	Type   reflect.Type
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component does not exist on entity %d: %v", e.Entity, e.Type)
}

type ComponentRegisteredError struct {
	Component Component
}

func (e ComponentRegisteredError) Error() string {
	return fmt.Sprintf("component already registered: %T", e.Component)
}

type UnknownEventError struct {
	Type reflect.Type
}

func (e UnknownEventError) Error() string {
	return fmt.Sprintf("event type is not registered with the dispatcher: %v", e.Type)
}

type CacheCapacityError struct {
	Capacity int
}

func (e CacheCapacityError) Error() string {
	return fmt.Sprintf("cache at maximum capacity (%d)", e.Capacity)
}
