package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/fsdevblog/shortlinks/internal/models"
)

// DefaultCapacity емкость кеша по умолчанию.
const DefaultCapacity = 1024

// Clock источник времени. Инъекция нужна для детерминированных
// тестов истечения срока жизни записей.
type Clock interface {
	Now() time.Time
}

type entry struct {
	code   string
	record models.URL
}

// Cache резолюционный кеш горячего пути редиректа: short code -> запись URL.
//
// Правила:
//   - Get никогда не возвращает истекшую запись: такая запись вытесняется
//     и возвращается промах, даже если хранилище еще не узнало об истечении.
//   - Put монотонен по ClickCount: более свежая запись (подтвержденная
//     хранилищем) не может быть затерта более старой при переупорядоченном
//     завершении конкурентных кликов.
//   - Емкость ограничена, вытеснение LRU.
type Cache struct {
	mu       sync.Mutex
	capacity int
	clock    Clock
	items    map[string]*list.Element
	order    *list.List // front — недавно использованные
}

// New создает кеш с заданной емкостью. capacity <= 0 трактуется как DefaultCapacity.
func New(capacity int, clock Clock) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		clock:    clock,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// Get возвращает копию записи по коду либо промах.
func (c *Cache) Get(code string) (*models.URL, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[code]
	if !ok {
		return nil, false
	}
	ent := el.Value.(*entry) //nolint:errcheck
	if ent.record.IsExpired(c.clock.Now()) {
		c.removeLocked(el)
		return nil, false
	}
	c.order.MoveToFront(el)
	record := ent.record
	return &record, true
}

// Put сохраняет запись. Запись с меньшим ClickCount чем уже закешированная
// для того же кода игнорируется.
func (c *Cache) Put(code string, record models.URL) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[code]; ok {
		ent := el.Value.(*entry) //nolint:errcheck
		if record.ClickCount < ent.record.ClickCount {
			return
		}
		ent.record = record
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&entry{code: code, record: record})
	c.items[code] = el

	if c.order.Len() > c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.removeLocked(oldest)
		}
	}
}

// Invalidate вытесняет запись по коду.
func (c *Cache) Invalidate(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[code]; ok {
		c.removeLocked(el)
	}
}

// Len текущее количество записей.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.Len()
}

func (c *Cache) removeLocked(el *list.Element) {
	ent := el.Value.(*entry) //nolint:errcheck
	c.order.Remove(el)
	delete(c.items, ent.code)
}
