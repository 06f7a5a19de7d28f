package crdt

import (
	"sync"

	"github.com/google/uuid"
)

// LamportClock представляет логические часы Лампорта для упорядочивания
// версий реплицируемых сущностей между узлами без синхронизации
// физического времени. Каждый узел присваивает своим записям timestamp
// из собственных часов и подтягивает счетчик при приеме чужих версий.
type LamportClock struct {
	counter int64      // монотонно возрастающий счетчик
	nodeID  string     // уникальный идентификатор узла
	mu      sync.Mutex // мьютекс для потокобезопасности
}

// NewLamportClock создает новые часы с уникальным идентификатором узла (UUID).
func NewLamportClock() *LamportClock {
	return &LamportClock{
		counter: 0,
		nodeID:  uuid.New().String(),
	}
}

// NewLamportClockWithNodeID создает часы с заданным идентификатором узла.
// Используется для тестирования и восстановления состояния после рестарта.
func NewLamportClockWithNodeID(nodeID string) *LamportClock {
	return &LamportClock{
		counter: 0,
		nodeID:  nodeID,
	}
}

// Tick увеличивает счетчик и возвращает новое значение timestamp.
// Вызывается при создании нового локального действия (пост, лайк, коммент).
func (lc *LamportClock) Tick() int64 {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	lc.counter++
	return lc.counter
}

// Update обновляет счетчик на основе timestamp, полученного от другого узла
// (через broadcast или reconciliation).
// Согласно алгоритму Лампорта: counter = max(local_counter, remote_timestamp) + 1
func (lc *LamportClock) Update(remoteTimestamp int64) int64 {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if remoteTimestamp > lc.counter {
		lc.counter = remoteTimestamp
	}
	lc.counter++

	return lc.counter
}

// GetTimestamp возвращает текущее значение счетчика без его изменения.
func (lc *LamportClock) GetTimestamp() int64 {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	return lc.counter
}

// GetNodeID возвращает уникальный идентификатор узла.
func (lc *LamportClock) GetNodeID() string {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	return lc.nodeID
}

// SetTimestamp устанавливает счетчик в заданное значение.
// Используется при старте узла: счетчик восстанавливается из максимального
// timestamp, сохраненного в LocalStore, чтобы новые записи не проигрывали
// LWW уже существующим.
func (lc *LamportClock) SetTimestamp(timestamp int64) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	lc.counter = timestamp
}
