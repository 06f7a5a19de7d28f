package boltdb

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/socialmesh/internal/models"
)

var (
	// peersBucket stores peer registry snapshot
	peersBucket = []byte("peers")
)

// Store персистентный снапшот реестра пиров в BoltDB.
// Реестр живет в памяти; снапшот нужен, чтобы после рестарта узел
// помнил сеть и не зависел от bootstrap-списка.
type Store struct {
	db *bbolt.DB
}

// New creates a new BoltDB peer store instance
// dbPath is the path to the BoltDB database file
func New(dbPath string) (*Store, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	store := &Store{db: db}

	// Инициализируем bucket
	if err := store.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(peersBucket); err != nil {
			return fmt.Errorf("failed to create peers bucket: %w", err)
		}
		return nil
	})
}

// Save записывает снапшот пиров, по одной записи на URL.
// Пиры, выпавшие из снапшота, не удаляются: членство монотонно.
func (s *Store) Save(peers []models.Peer) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(peersBucket)

		for _, peer := range peers {
			data, err := json.Marshal(&peer)
			if err != nil {
				return fmt.Errorf("failed to marshal peer: %w", err)
			}

			if err := bucket.Put([]byte(peer.URL), data); err != nil {
				return fmt.Errorf("failed to save peer: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("save transaction failed: %w", err)
	}

	return nil
}

// Load возвращает все сохраненные пиры.
func (s *Store) Load() ([]models.Peer, error) {
	var peers []models.Peer

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(peersBucket)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var peer models.Peer
			if err := json.Unmarshal(v, &peer); err != nil {
				return fmt.Errorf("failed to unmarshal peer: %w", err)
			}
			peers = append(peers, peer)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to load peers: %w", err)
	}

	return peers, nil
}
