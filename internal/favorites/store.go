// Package favorites persists the local wishlist in a single SQLite table.
package favorites

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Favorite is one liked product summary.
type Favorite struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	ImageURL  string    `json:"image_url"`
	Price     string    `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName pins the table name.
func (Favorite) TableName() string {
	return "favorites"
}

// MemoryPath opens a private in-memory database; used by tests.
const MemoryPath = ":memory:"

// Store is the favorites table plus its snapshot subscribers.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger

	mu     sync.Mutex
	subs   map[int]chan []Favorite
	nextID int
}

// Open opens (creating if needed) the database at path and migrates the table.
func Open(path string, log zerolog.Logger) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("favorites path is empty")
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create favorites dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open favorites db: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("favorites db handle: %w", err)
	}
	// One connection keeps :memory: databases shared and serialises writers.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Favorite{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate favorites: %w", err)
	}

	return &Store{
		db:   db,
		log:  log.With().Str("component", "favorites").Logger(),
		subs: make(map[int]chan []Favorite),
	}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save inserts f or replaces the row with the same id.
func (s *Store) Save(ctx context.Context, f Favorite) error {
	f.ID = strings.TrimSpace(f.ID)
	if f.ID == "" {
		return fmt.Errorf("favorite id is required")
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "image_url", "price"}),
		}).
		Create(&f).Error
	if err != nil {
		s.log.Error().Err(err).Str("id", f.ID).Msg("save favorite failed")
		return fmt.Errorf("save favorite: %w", err)
	}
	s.log.Debug().Str("id", f.ID).Msg("favorite saved")
	s.publish(ctx)
	return nil
}

// Delete removes the row with id. Deleting an absent id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Favorite{}).Error
	if err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("delete favorite failed")
		return fmt.Errorf("delete favorite: %w", err)
	}
	s.log.Debug().Str("id", id).Msg("favorite deleted")
	s.publish(ctx)
	return nil
}

// All returns the whole table, oldest first.
func (s *Store) All(ctx context.Context) ([]Favorite, error) {
	var items []Favorite
	if err := s.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return items, nil
}

// Contains reports whether id is in the table.
func (s *Store) Contains(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Favorite{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count favorites: %w", err)
	}
	return count > 0, nil
}

// Subscribe emits the whole table now and again after every mutation, until
// ctx is done, at which point the channel is closed. A slow reader only ever
// sees the latest snapshot.
func (s *Store) Subscribe(ctx context.Context) <-chan []Favorite {
	ch := make(chan []Favorite, 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	if items, err := s.All(ctx); err == nil {
		offer(ch, items)
	} else {
		s.log.Warn().Err(err).Msg("initial favorites snapshot failed")
	}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()
	return ch
}

func (s *Store) publish(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.subs) == 0 {
		return
	}
	// Mutation callers may cancel right after returning; the snapshot must
	// still reach subscribers.
	items, err := s.All(context.WithoutCancel(ctx))
	if err != nil {
		s.log.Warn().Err(err).Msg("favorites snapshot failed")
		return
	}
	for _, ch := range s.subs {
		offer(ch, items)
	}
}

// offer replaces any undelivered snapshot with items. Callers hold s.mu, so
// no other sender races the drain.
func offer(ch chan []Favorite, items []Favorite) {
	dup := make([]Favorite, len(items))
	copy(dup, items)
	select {
	case ch <- dup:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- dup:
	default:
	}
}
