package storage

import (
	"context"
	"maps"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/d-kuro/todo-mcp/internal/collections"
	"github.com/d-kuro/todo-mcp/internal/errors"
)

// MemoryTable is a process-local Table. Items are kept in their DynamoDB
// attribute-value form so marshalling and merge behave as they do against
// the real store.
type MemoryTable[T any] struct {
	tableName string
	keyAttr   string
	items     *collections.SyncMap[string, map[string]types.AttributeValue]
}

var _ Table[struct{}] = (*MemoryTable[struct{}])(nil)

// NewMemoryTable creates an empty in-memory table.
func NewMemoryTable[T any](tableName, keyAttr string) *MemoryTable[T] {
	return &MemoryTable[T]{
		tableName: tableName,
		keyAttr:   keyAttr,
		items:     collections.NewSyncMap[string, map[string]types.AttributeValue](),
	}
}

func (t *MemoryTable[T]) Put(ctx context.Context, item T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return errors.InternalWithCause("marshal item", err)
	}

	s, ok := av[t.keyAttr].(*types.AttributeValueMemberS)
	if !ok || s.Value == "" {
		return errors.Validationf("item is missing string key attribute %q", t.keyAttr)
	}

	t.items.Set(s.Value, av)
	return nil
}

func (t *MemoryTable[T]) Get(ctx context.Context, key string) (T, error) {
	var item T
	if err := ctx.Err(); err != nil {
		return item, err
	}

	av, ok := t.items.Get(key)
	if !ok {
		return item, errors.NotFound(t.tableName, key)
	}
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return item, errors.InternalWithCause("unmarshal item", err)
	}
	return item, nil
}

func (t *MemoryTable[T]) Scan(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := make([]T, 0, t.items.Len())
	if err := attributevalue.UnmarshalListOfMaps(t.items.Values(), &items); err != nil {
		return nil, errors.InternalWithCause("unmarshal items", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (t *MemoryTable[T]) Update(ctx context.Context, key string, fields map[string]any) (T, error) {
	var item T
	if err := ctx.Err(); err != nil {
		return item, err
	}
	if _, ok := fields[t.keyAttr]; ok {
		return item, errors.Validationf("%s cannot be updated", t.keyAttr)
	}

	updated, err := t.items.Compute(key, func(current map[string]types.AttributeValue, exists bool) (map[string]types.AttributeValue, error) {
		if !exists {
			return nil, errors.NotFound(t.tableName, key)
		}
		next := maps.Clone(current)
		for name, value := range fields {
			av, err := attributevalue.Marshal(value)
			if err != nil {
				return nil, errors.InternalWithCause("marshal "+name, err)
			}
			next[name] = av
		}
		return next, nil
	})
	if err != nil {
		return item, err
	}

	if err := attributevalue.UnmarshalMap(updated, &item); err != nil {
		return item, errors.InternalWithCause("unmarshal item", err)
	}
	return item, nil
}

func (t *MemoryTable[T]) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !t.items.Delete(key) {
		return errors.NotFound(t.tableName, key)
	}
	return nil
}
