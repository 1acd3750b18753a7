package services

import "github.com/fsdevblog/shortlinks/internal/models"

// BatchResponseItem содержит результат выполнения одной операции в пакете.
type BatchResponseItem[T any] struct {
	Item T
	Err  error
}

// BatchExecResponse представляет результаты выполнения пакета операций.
// Результаты хранятся строго в порядке входных элементов; частичный успех
// пакета — штатная ситуация, ошибки не абортируют оставшиеся элементы.
type BatchExecResponse[T any] struct {
	results []BatchResponseItem[T]
}

// NewBatchExecResponse создает новый экземпляр BatchExecResponse с предварительно
// выделенной памятью.
func NewBatchExecResponse[T any](allocSize int) *BatchExecResponse[T] {
	return &BatchExecResponse[T]{
		results: make([]BatchResponseItem[T], allocSize),
	}
}

// Set устанавливает результат операции по указанному индексу.
// Примечание: метод не является потокобезопасным.
func (b *BatchExecResponse[T]) Set(r BatchResponseItem[T], index int) {
	b.results[index] = r
}

// Len возвращает количество операций в пакете.
func (b *BatchExecResponse[T]) Len() int {
	return len(b.results)
}

// ReadResponse обрабатывает результаты всех операций в пакете в порядке входа.
func (b *BatchExecResponse[T]) ReadResponse(fn func(int, T, error)) {
	if fn == nil {
		return
	}
	for i, result := range b.results {
		fn(i, result.Item, result.Err)
	}
}

// BatchCreateResult специализированный тип BatchExecResponse для операций с URL.
// При ошибке элемента Item содержит как минимум исходный LongURL, чтобы
// вызывающий код мог сопоставить результат с входом.
type BatchCreateResult struct {
	*BatchExecResponse[models.URL]
}

// NewBatchCreateResult создает новый экземпляр BatchCreateResult.
func NewBatchCreateResult(inner *BatchExecResponse[models.URL]) *BatchCreateResult {
	return &BatchCreateResult{inner}
}
