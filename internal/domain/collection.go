package domain

import (
	"fmt"

	"github.com/ougirez/cpi/internal/pkg/constants"
)

type Identified interface {
	ID() string
}

// NotFoundError возвращается ObjectList.Get, когда объекта с таким id нет.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("object with id %s could not be found", e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return constants.ErrNotFound
}

// ObjectList сохраняет порядок вставки и умеет искать по ID.
type ObjectList[T Identified] []T

// Get возвращает первый элемент с ID() == key. Линейный проход.
func (l ObjectList[T]) Get(key string) (T, error) {
	for _, obj := range l {
		if obj.ID() == key {
			return obj, nil
		}
	}

	var zero T
	return zero, &NotFoundError{Key: key}
}

// ByID строит индекс id -> объект. При дублях остаётся первый, как и в Get.
func (l ObjectList[T]) ByID() map[string]T {
	res := make(map[string]T, len(l))
	for _, obj := range l {
		if _, ok := res[obj.ID()]; !ok {
			res[obj.ID()] = obj
		}
	}
	return res
}
