package service

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BatchSize сколько запросов уходит одновременно в одной пачке
const BatchSize = 50

// BatchFailure элемент пачки, операция над которым не удалась
type BatchFailure[T any] struct {
	Item T
	Err  error
}

// RunBatches выполняет fn для всех элементов пачками по size штук. Внутри пачки
// запросы идут параллельно; следующая пачка стартует только после завершения
// всех элементов предыдущей. Ошибки не прерывают обработку, а возвращаются списком.
// После отмены ctx оставшиеся элементы помечаются ошибкой ctx.
func RunBatches[T any](ctx context.Context, items []T, size int, fn func(ctx context.Context, item T) error) []BatchFailure[T] {
	if size < 1 {
		size = 1
	}

	var failures []BatchFailure[T]
	for start := 0; start < len(items); start += size {
		if err := ctx.Err(); err != nil {
			for _, item := range items[start:] {
				failures = append(failures, BatchFailure[T]{Item: item, Err: err})
			}
			break
		}

		end := min(start+size, len(items))
		batch := items[start:end]
		errs := make([]error, len(batch))

		var g errgroup.Group
		for i := range batch {
			g.Go(func() error {
				errs[i] = fn(ctx, batch[i])
				return nil
			})
		}
		_ = g.Wait()

		for i, err := range errs {
			if err != nil {
				failures = append(failures, BatchFailure[T]{Item: batch[i], Err: err})
			}
		}
	}

	return failures
}
