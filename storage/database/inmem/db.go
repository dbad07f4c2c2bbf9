package inmemdb

import (
	"sort"
	"sync"

	"github.com/bouncebacklearning/backend/core/admin"
	"github.com/bouncebacklearning/backend/core/feedback"
	"github.com/bouncebacklearning/backend/core/paper"
	"github.com/bouncebacklearning/backend/core/user"
	"github.com/bouncebacklearning/backend/core/video"
)

// table is a map of rows keyed by primary key. Primary keys come from a
// per-table counter and are never reused, even after deletes.
type table[T any] struct {
	sync.RWMutex
	rows    map[int]T
	pkCount int
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int]T)}
}

// nextPK must be called with the write lock held.
func (t *table[T]) nextPK() int {
	t.pkCount++
	return t.pkCount
}

// query returns a fresh slice of every row, in insertion order.
// It must be called with a lock held.
func (t *table[T]) query() []T {
	ids := make([]int, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	rows := make([]T, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, t.rows[id])
	}
	return rows
}

func (t *table[T]) get(id int) (T, bool) {
	t.RLock()
	defer t.RUnlock()
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) delete(id int) bool {
	t.Lock()
	defer t.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// DB holds one table per collection. Each table is locked independently.
type DB struct {
	users    *table[user.User]
	papers   *table[paper.Paper]
	videos   *table[video.Video]
	feedback *table[feedback.Feedback]
	sessions *table[admin.Session]
}

// Open returns an empty database.
func Open() *DB {
	return &DB{
		users:    newTable[user.User](),
		papers:   newTable[paper.Paper](),
		videos:   newTable[video.Video](),
		feedback: newTable[feedback.Feedback](),
		sessions: newTable[admin.Session](),
	}
}
