package optimistic

import (
	"context"
	"sync"
)

// Outcome итог удаленной части мутации
type Outcome int

const (
	// OutcomePending удаленный вызов еще выполняется
	OutcomePending Outcome = iota
	// OutcomeConfirmed сервер подтвердил изменение
	OutcomeConfirmed
	// OutcomeRejected сервер отклонил изменение, локальное состояние откатено
	OutcomeRejected
	// OutcomeQueued клиент offline: изменение применено локально и записано в буфер
	OutcomeQueued
	// OutcomeNoOp изменение ничего не меняет (удаление отсутствующей записи, обновление тем же значением)
	OutcomeNoOp
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeConfirmed:
		return "confirmed"
	case OutcomeRejected:
		return "rejected"
	case OutcomeQueued:
		return "queued"
	case OutcomeNoOp:
		return "noop"
	default:
		return "unknown"
	}
}

// Result результат Apply: локальная часть известна сразу,
// удаленная завершается асинхронно (Done/Wait).
type Result struct {
	done           chan struct{}
	err            error
	entityID       string
	serverID       string
	outcome        Outcome
	once           sync.Once
	mu             sync.Mutex
	appliedLocally bool
}

func newResult(entityID string, appliedLocally bool) *Result {
	return &Result{
		done:           make(chan struct{}),
		entityID:       entityID,
		appliedLocally: appliedLocally,
		outcome:        OutcomePending,
	}
}

func resolvedResult(entityID string, outcome Outcome) *Result {
	r := newResult(entityID, false)
	r.resolve(outcome, "", nil)
	return r
}

// resolve фиксирует итог; повторные вызовы игнорируются
func (r *Result) resolve(outcome Outcome, serverID string, err error) {
	r.once.Do(func() {
		r.mu.Lock()
		r.outcome = outcome
		r.serverID = serverID
		r.err = err
		r.mu.Unlock()
		close(r.done)
	})
}

// AppliedLocally сообщает, изменилось ли локальное состояние синхронно
func (r *Result) AppliedLocally() bool {
	return r.appliedLocally
}

// EntityID идентификатор записи на момент применения (для create - временный)
func (r *Result) EntityID() string {
	return r.entityID
}

// ServerID серверный идентификатор созданной записи после подтверждения
func (r *Result) ServerID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.serverID
}

// Outcome текущий итог (OutcomePending, пока удаленный вызов не завершен)
func (r *Result) Outcome() Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcome
}

// Err ошибка удаленного вызова (только для OutcomeRejected)
func (r *Result) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Done закрывается после завершения удаленной части
func (r *Result) Done() <-chan struct{} {
	return r.done
}

// Wait ждет завершения удаленной части или отмены ctx
func (r *Result) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-r.done:
		return r.Outcome(), r.Err()
	case <-ctx.Done():
		return OutcomePending, ctx.Err()
	}
}
