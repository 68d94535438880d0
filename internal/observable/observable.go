// Package observable содержит контейнер состояния с подпиской на изменения.
package observable

import "sync"

// Value хранит значение и уведомляет подписчиков после каждого изменения.
// Подписчики вызываются синхронно, вне блокировки, в порядке подписки.
type Value[T any] struct {
	mu     sync.Mutex
	value  T
	subs   map[int]func(T)
	order  []int
	nextID int
	copyFn func(T) T
}

// New создаёт контейнер с начальным значением.
// copyFn, если задан, применяется к значению при чтении и перед передачей подписчикам.
func New[T any](initial T, copyFn func(T) T) *Value[T] {
	return &Value[T]{
		value:  initial,
		subs:   make(map[int]func(T)),
		copyFn: copyFn,
	}
}

// Get возвращает текущее значение
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.copy(v.value)
}

// Set заменяет значение и уведомляет подписчиков
func (v *Value[T]) Set(value T) {
	v.Update(func(T) T { return value })
}

// Update применяет fn к текущему значению под блокировкой и уведомляет подписчиков
func (v *Value[T]) Update(fn func(T) T) {
	v.mu.Lock()
	v.value = fn(v.value)
	snapshot := v.copy(v.value)
	subs := v.subscribers()
	v.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// Subscribe регистрирует обработчик изменений и возвращает функцию отписки
func (v *Value[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.nextID
	v.nextID++
	v.subs[id] = fn
	v.order = append(v.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			delete(v.subs, id)
			for i, sid := range v.order {
				if sid == id {
					v.order = append(v.order[:i], v.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (v *Value[T]) subscribers() []func(T) {
	out := make([]func(T), 0, len(v.order))
	for _, id := range v.order {
		out = append(out, v.subs[id])
	}
	return out
}

func (v *Value[T]) copy(value T) T {
	if v.copyFn == nil {
		return value
	}
	return v.copyFn(value)
}
