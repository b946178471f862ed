package optimistic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/iudanet/storekeeper/internal/client/api"
	"github.com/iudanet/storekeeper/internal/client/storage"
	"github.com/iudanet/storekeeper/internal/client/view"
	"github.com/iudanet/storekeeper/internal/clock"
	"github.com/iudanet/storekeeper/internal/models"
)

// Config параметры движка одной коллекции
type Config[T models.Entity[T]] struct {
	Remote       Remote[T]
	Connectivity Connectivity
	Pending      PendingRecorder // может быть nil
	Notifier     Notifier        // может быть nil
	Clock        *clock.Clock
	Logger       *slog.Logger
	Collection   string
	PageSize     int
}

// Engine применяет мутации локально до подтверждения сервером и согласует
// локальное состояние с итогом удаленного вызова.
//
// Весь доступ к состоянию экрана сериализован мьютексом движка: удаленные вызовы
// выполняются в отдельных горутинах и возвращаются под тот же мьютекс.
type Engine[T models.Entity[T]] struct {
	remote      Remote[T]
	conn        Connectivity
	pending     PendingRecorder
	notifier    Notifier
	clock       *clock.Clock
	logger      *slog.Logger
	tracer      trace.Tracer
	state       *view.State[T]
	unsubscribe func()
	creating    map[string]*Result // create в полете, по временному id
	collection  string
	observers   []func([]T)
	inflight    sync.WaitGroup
	mu          sync.Mutex
	closed      bool
}

// New создает движок с пустым состоянием
func New[T models.Entity[T]](cfg Config[T]) *Engine[T] {
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Engine[T]{
		remote:     cfg.Remote,
		conn:       cfg.Connectivity,
		pending:    cfg.Pending,
		notifier:   cfg.Notifier,
		clock:      cfg.Clock,
		logger:     cfg.Logger.With("collection", cfg.Collection),
		tracer:     otel.Tracer("storekeeper/optimistic"),
		state:      view.NewState[T](cfg.PageSize),
		creating:   make(map[string]*Result),
		collection: cfg.Collection,
	}
}

// Apply применяет мутацию к локальному состоянию синхронно и, если клиент online,
// отправляет ее на сервер. Ошибка возвращается только когда мутацию нельзя
// применить локально; итог удаленной части доступен через Result.
func (e *Engine[T]) Apply(ctx context.Context, m models.Mutation[T]) (*Result, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: kind=%q id=%q", ErrInvalidMutation, m.Kind, m.ID)
	}
	if m.Timestamp == 0 {
		m.Timestamp = e.clock.Tick()
	}

	switch m.Kind {
	case models.MutationCreate:
		return e.applyCreate(ctx, m)
	case models.MutationUpdate:
		return e.applyUpdate(ctx, m)
	default:
		return e.applyDelete(ctx, m)
	}
}

func (e *Engine[T]) applyCreate(ctx context.Context, m models.Mutation[T]) (*Result, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, ErrClosed
	}
	tempID := models.NewTempID(e.clock.Tick())
	entity := m.Entity.WithID(tempID)
	e.state.Insert(entity)
	offline := e.conn.Offline()
	res := newResult(tempID, true)
	if !offline {
		e.creating[tempID] = res
	}
	e.changedLocked()
	e.mu.Unlock()

	if offline {
		e.queue(ctx, m.Kind, tempID, entity, m.Timestamp, res)
		return res, nil
	}

	var serverID string
	e.goRemote(ctx, m.Kind, tempID, func(ctx context.Context) error {
		var err error
		serverID, err = e.remote.Create(ctx, m.Entity.WithID(""))
		return err
	}, func(err error) {
		if err == nil {
			e.confirmCreate(tempID, serverID, res)
		} else {
			e.fail(ctx, m, tempID, entity, err, res, func() {
				e.state.Remove(tempID)
			})
		}

		e.mu.Lock()
		delete(e.creating, tempID)
		e.mu.Unlock()
	})

	return res, nil
}

func (e *Engine[T]) confirmCreate(tempID, serverID string, res *Result) {
	e.mu.Lock()
	closed := e.closed
	if !closed {
		// подписка могла уже принести запись с серверным id
		if _, exists := e.state.Get(serverID); exists {
			e.state.Remove(tempID)
		} else {
			e.state.ReplaceID(tempID, serverID)
		}
		e.changedLocked()
	}
	e.mu.Unlock()

	if !closed {
		e.notify(Notice{Level: NoticeSuccess, Message: "created"})
	}
	e.logger.Debug("Create confirmed", "temp_id", tempID, "id", serverID)
	res.resolve(OutcomeConfirmed, serverID, nil)
}

func (e *Engine[T]) applyUpdate(ctx context.Context, m models.Mutation[T]) (*Result, error) {
	next := m.Entity.WithID(m.ID)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, ErrClosed
	}
	prev, ok := e.state.Get(m.ID)
	if !ok {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrEntityNotFound, m.ID)
	}
	if prev == next {
		e.mu.Unlock()
		return resolvedResult(m.ID, OutcomeNoOp), nil
	}
	e.state.Update(next)
	offline := e.conn.Offline()
	create := e.creating[m.ID]
	e.changedLocked()
	e.mu.Unlock()

	res := newResult(m.ID, true)
	switch {
	case !offline && create != nil:
		e.afterCreate(ctx, m, create, next, res, func(serverID string) {
			e.sendUpdate(ctx, m, serverID, prev.WithID(serverID), next.WithID(serverID), res)
		})
	case offline || models.IsTempID(m.ID):
		// запись создана offline и ждет в буфере: обновлять на сервере нечего
		e.queue(ctx, m.Kind, m.ID, next, m.Timestamp, res)
	default:
		e.sendUpdate(ctx, m, m.ID, prev, next, res)
	}

	return res, nil
}

func (e *Engine[T]) sendUpdate(ctx context.Context, m models.Mutation[T], id string, prev, next T, res *Result) {
	e.goRemote(ctx, m.Kind, id, func(ctx context.Context) error {
		return e.remote.Update(ctx, id, next)
	}, func(err error) {
		if err == nil {
			e.confirm(m.Kind, id, res)
			return
		}
		e.fail(ctx, m, id, next, err, res, func() {
			// откатываем, только если запись не изменилась после нашего обновления
			if cur, ok := e.state.Get(id); ok && cur == next {
				e.state.Update(prev)
			}
		})
	})
}

func (e *Engine[T]) applyDelete(ctx context.Context, m models.Mutation[T]) (*Result, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, ErrClosed
	}
	snapshot, idx, ok := e.state.Remove(m.ID)
	if !ok {
		e.mu.Unlock()
		return resolvedResult(m.ID, OutcomeNoOp), nil
	}
	offline := e.conn.Offline()
	create := e.creating[m.ID]
	e.changedLocked()
	e.mu.Unlock()

	res := newResult(m.ID, true)
	switch {
	case !offline && create != nil:
		e.afterCreate(ctx, m, create, snapshot, res, func(serverID string) {
			e.sendDelete(ctx, m, serverID, snapshot.WithID(serverID), idx, res)
		})
	case offline || models.IsTempID(m.ID):
		e.queue(ctx, m.Kind, m.ID, snapshot, m.Timestamp, res)
	default:
		e.sendDelete(ctx, m, m.ID, snapshot, idx, res)
	}

	return res, nil
}

func (e *Engine[T]) sendDelete(ctx context.Context, m models.Mutation[T], id string, snapshot T, idx int, res *Result) {
	e.goRemote(ctx, m.Kind, id, func(ctx context.Context) error {
		return e.remote.Delete(ctx, id)
	}, func(err error) {
		// записи на сервере уже нет: для пользователя удаление состоялось
		if err == nil || errors.Is(err, api.ErrNotFound) {
			e.mu.Lock()
			if !e.closed {
				// снимок подписки мог вернуть запись до ответа сервера
				if _, _, removed := e.state.Remove(id); removed {
					e.changedLocked()
				}
			}
			e.mu.Unlock()
			e.confirm(m.Kind, id, res)
			return
		}
		e.fail(ctx, m, id, snapshot, err, res, func() {
			if _, exists := e.state.Get(id); !exists {
				e.state.InsertAt(idx, snapshot)
			}
		})
	})
}

// afterCreate откладывает удаленный вызов для записи с временным id до
// завершения ее создания и выполняет его уже по серверному id.
func (e *Engine[T]) afterCreate(ctx context.Context, m models.Mutation[T], create *Result, entity T, res *Result, send func(serverID string)) {
	e.inflight.Add(1)
	go func() {
		defer e.inflight.Done()

		<-create.Done()
		switch create.Outcome() {
		case OutcomeConfirmed:
			e.logger.Debug("Retargeting mutation to server id", "kind", m.Kind, "temp_id", m.ID, "id", create.ServerID())
			send(create.ServerID())
		case OutcomeQueued:
			// связь пропала во время create: мутация идет в буфер следом за ним
			e.queue(ctx, m.Kind, m.ID, entity, m.Timestamp, res)
		default:
			// create отклонен, запись уже убрана его откатом
			res.resolve(OutcomeRejected, "", &MutationError{Kind: m.Kind, ID: m.ID, Err: create.Err()})
		}
	}()
}

func (e *Engine[T]) confirm(kind models.MutationKind, id string, res *Result) {
	e.mu.Lock()
	closed := e.closed
	e.mu.Unlock()

	if !closed {
		e.notify(Notice{Level: NoticeSuccess, Message: string(kind) + "d"})
	}
	res.resolve(OutcomeConfirmed, id, nil)
}

// fail обрабатывает отказ сервера. Откат выполняется только если клиент
// по-прежнему online: при потере связи во время запроса локальное изменение
// остается и записывается в буфер.
func (e *Engine[T]) fail(ctx context.Context, m models.Mutation[T], id string, entity T, err error, res *Result, rollback func()) {
	mErr := &MutationError{Kind: m.Kind, ID: id, Err: err}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		res.resolve(OutcomeRejected, "", mErr)
		return
	}
	if e.conn.Offline() {
		e.mu.Unlock()
		e.logger.Warn("Remote call failed after going offline, keeping local change", "kind", m.Kind, "id", id, "error", err)
		e.queue(ctx, m.Kind, id, entity, m.Timestamp, res)
		return
	}
	rollback()
	e.changedLocked()
	e.mu.Unlock()

	e.logger.Warn("Remote call rejected, local change rolled back", "kind", m.Kind, "id", id, "error", err)
	e.notify(Notice{Level: NoticeError, Message: mErr.Error(), Err: mErr})
	res.resolve(OutcomeRejected, "", mErr)
}

// queue записывает offline мутацию в буфер. Ошибка записи не откатывает локальное изменение.
func (e *Engine[T]) queue(ctx context.Context, kind models.MutationKind, id string, entity T, ts int64, res *Result) {
	if e.pending != nil {
		pm := &storage.PendingMutation{
			Collection: e.collection,
			Kind:       string(kind),
			EntityID:   id,
			Timestamp:  ts,
		}
		if kind != models.MutationDelete {
			payload, err := json.Marshal(entity)
			if err == nil {
				pm.Payload = payload
			}
		}
		if err := e.pending.AddPending(context.WithoutCancel(ctx), pm); err != nil {
			e.logger.Error("Failed to record pending mutation", "kind", kind, "id", id, "error", err)
		}
	}

	e.logger.Info("Mutation applied offline", "kind", kind, "id", id)
	e.notify(Notice{Level: NoticeInfo, Message: "saved locally, not sent to server"})
	res.resolve(OutcomeQueued, "", nil)
}

// goRemote выполняет удаленный вызов в отдельной горутине.
// Отмена ctx вызывающего не прерывает вызов: результат нужен для согласования.
func (e *Engine[T]) goRemote(ctx context.Context, kind models.MutationKind, id string, call func(context.Context) error, done func(error)) {
	ctx = context.WithoutCancel(ctx)

	e.inflight.Add(1)
	go func() {
		defer e.inflight.Done()

		spanCtx, span := e.tracer.Start(ctx, "optimistic."+string(kind), trace.WithAttributes(
			attribute.String("collection", e.collection),
			attribute.String("entity.id", id),
		))
		err := call(spanCtx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		done(err)
	}()
}

// ApplyDirect сначала выполняет удаленный вызов и только после успеха меняет
// локальное состояние. Отката не требуется; ошибка возвращается вызывающему.
// Возвращает id записи (для create - серверный).
func (e *Engine[T]) ApplyDirect(ctx context.Context, m models.Mutation[T]) (string, error) {
	if !m.IsValid() {
		return "", fmt.Errorf("%w: kind=%q id=%q", ErrInvalidMutation, m.Kind, m.ID)
	}

	e.mu.Lock()
	closed := e.closed
	e.mu.Unlock()
	if closed {
		return "", ErrClosed
	}

	ctx, span := e.tracer.Start(ctx, "optimistic.direct."+string(m.Kind), trace.WithAttributes(
		attribute.String("collection", e.collection),
		attribute.String("entity.id", m.ID),
	))
	defer span.End()

	id := m.ID
	var err error
	switch m.Kind {
	case models.MutationCreate:
		id, err = e.remote.Create(ctx, m.Entity.WithID(""))
	case models.MutationUpdate:
		err = e.remote.Update(ctx, m.ID, m.Entity.WithID(m.ID))
	default:
		err = e.remote.Delete(ctx, m.ID)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", &MutationError{Kind: m.Kind, ID: m.ID, Err: err}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return id, nil
	}

	switch m.Kind {
	case models.MutationCreate:
		if _, exists := e.state.Get(id); !exists {
			e.state.Insert(m.Entity.WithID(id))
		}
	case models.MutationUpdate:
		e.state.Update(m.Entity.WithID(id))
	default:
		e.state.Remove(id)
	}
	e.changedLocked()

	return id, nil
}

// Reset подменяет коллекцию снимком сервера (начальная загрузка или событие подписки).
// Записи с временными id сохраняются до подтверждения.
func (e *Engine[T]) Reset(items []T) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.state.Replace(items)
	e.changedLocked()
}

// Watch подключает живую подписку: каждый снимок подменяет коллекцию
func (e *Engine[T]) Watch(ctx context.Context, sub Subscriber[T]) error {
	unsubscribe, err := sub.Subscribe(ctx, e.Reset)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", e.collection, err)
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		unsubscribe()
		return ErrClosed
	}
	prev := e.unsubscribe
	e.unsubscribe = unsubscribe
	e.mu.Unlock()

	if prev != nil {
		prev()
	}
	return nil
}

// Observe регистрирует наблюдателя, получающего копию коллекции после каждого изменения.
// Наблюдатель вызывается под мьютексом движка и не должен обращаться к движку.
func (e *Engine[T]) Observe(fn func([]T)) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.observers = append(e.observers, fn)
}

func (e *Engine[T]) changedLocked() {
	if len(e.observers) == 0 {
		return
	}
	all := e.state.All()
	for _, fn := range e.observers {
		fn(all)
	}
}

func (e *Engine[T]) notify(n Notice) {
	if e.notifier == nil {
		return
	}
	n.Collection = e.collection
	e.notifier.Notify(n)
}

// Close отписывается от коллекции и подавляет согласование для незавершенных
// вызовов. Сами удаленные вызовы не прерываются.
func (e *Engine[T]) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	unsubscribe := e.unsubscribe
	e.unsubscribe = nil
	e.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// Wait ждет завершения всех удаленных вызовов (используется перед выходом из процесса)
func (e *Engine[T]) Wait() {
	e.inflight.Wait()
}

// All копия полной коллекции
func (e *Engine[T]) All() []T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.All()
}

// Filtered копия отфильтрованной коллекции
func (e *Engine[T]) Filtered() []T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Filtered()
}

// Visible текущая страница
func (e *Engine[T]) Visible() []T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Visible()
}

// Get запись по id
func (e *Engine[T]) Get(id string) (T, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Get(id)
}

// SetQuery меняет строку поиска
func (e *Engine[T]) SetQuery(query string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.SetQuery(query)
}

// SetCategory меняет фильтр категории
func (e *Engine[T]) SetCategory(category string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.SetCategory(category)
}

// SetPage выбирает страницу
func (e *Engine[T]) SetPage(page int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.SetPage(page)
}

// Page номер текущей страницы и общее количество страниц
func (e *Engine[T]) Page() (int, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Page(), e.state.PageCount()
}
