package services

import (
	"fmt"
	"sync"
)

// TournamentGuard: флаг занятости для изменяющих операций. На турнир одна
// операция за раз, параллельная вторая отклоняется, а не ставится в очередь.
// Сервисы с общим guard исключают друг друга.
type TournamentGuard struct {
	mu   sync.Mutex
	busy map[int]string
}

func NewTournamentGuard() *TournamentGuard {
	return &TournamentGuard{busy: make(map[int]string)}
}

// Acquire помечает турнир занятым операцией op. Возвращенная функция освобождает его.
func (g *TournamentGuard) Acquire(tournamentID int, op string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if running, ok := g.busy[tournamentID]; ok {
		return nil, fmt.Errorf("%w: %s", ErrOperationInProgress, running)
	}
	g.busy[tournamentID] = op
	return func() {
		g.mu.Lock()
		delete(g.busy, tournamentID)
		g.mu.Unlock()
	}, nil
}

// Busy возвращает операцию, которая сейчас выполняется для турнира.
func (g *TournamentGuard) Busy(tournamentID int) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	op, ok := g.busy[tournamentID]
	return op, ok
}

func guardOrNew(g *TournamentGuard) *TournamentGuard {
	if g == nil {
		return NewTournamentGuard()
	}
	return g
}
