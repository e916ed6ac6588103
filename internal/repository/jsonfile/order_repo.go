package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/DRSN-tech/grocery-merchant/internal/domain"
	"github.com/DRSN-tech/grocery-merchant/internal/repository/jsonfile/converter"
	"github.com/DRSN-tech/grocery-merchant/pkg/e"
	"github.com/DRSN-tech/grocery-merchant/pkg/logger"
	"github.com/gofrs/flock"
	"github.com/jimlawless/whereami"
)

const lockRetryDelay = 25 * time.Millisecond

// OrderRepo хранит все заказы одним JSON-массивом в файле в порядке создания.
// Запись выполняется целиком через временный файл и rename, поэтому читатель
// никогда не видит частично записанный файл. Цикл чтение-добавление-запись
// сериализуется мьютексом внутри процесса и файловой блокировкой между процессами.
type OrderRepo struct {
	path        string
	mu          sync.Mutex
	fileLock    *flock.Flock
	lockTimeout time.Duration
	logger      logger.Logger
}

func NewOrderRepo(path string, lockTimeout time.Duration, logger logger.Logger) (*OrderRepo, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return &OrderRepo{
		path:        path,
		fileLock:    flock.New(path + ".lock"),
		lockTimeout: lockTimeout,
		logger:      logger,
	}, nil
}

// Path возвращает путь к файлу хранилища.
func (r *OrderRepo) Path() string {
	return r.path
}

// Append добавляет заказ в конец хранилища.
// Любая ошибка записи возвращается как e.ErrStoreWrite: заказ не сохранен.
func (r *OrderRepo) Append(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	unlock, err := r.lock(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", e.ErrStoreWrite, err)
	}
	defer unlock()

	models, err := r.load()
	if err != nil {
		if !errors.Is(err, e.ErrStoreCorrupt) {
			return fmt.Errorf("%w: %s: %w", e.ErrStoreWrite, whereami.WhereAmI(), err)
		}
		r.backupCorrupted()
		models = nil
	}

	for i := range models {
		if models[i].ID == order.ID {
			return e.Wrap(order.ID, e.ErrDuplicateOrder)
		}
	}

	models = append(models, *converter.ToModel(order))
	if err := r.write(models); err != nil {
		return fmt.Errorf("%w: %s: %w", e.ErrStoreWrite, whereami.WhereAmI(), err)
	}

	return nil
}

// Last возвращает последний заказ массива или nil, если заказов нет.
func (r *OrderRepo) Last(ctx context.Context) (*domain.Order, error) {
	orders, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return nil, nil
	}

	last := orders[len(orders)-1]
	return &last, nil
}

// GetByID возвращает заказ по идентификатору или e.ErrOrderNotFound.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	orders, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}

	return nil, e.Wrap(id, e.ErrOrderNotFound)
}

// List возвращает все заказы в порядке создания.
// Поврежденный файл считается пустым хранилищем.
func (r *OrderRepo) List(_ context.Context) ([]domain.Order, error) {
	models, err := r.load()
	if err != nil {
		if errors.Is(err, e.ErrStoreCorrupt) {
			return []domain.Order{}, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	orders, err := converter.ToArrEntity(models)
	if err != nil {
		r.logger.Warnf("Order store %s has invalid records, treating as empty: %v", r.path, err)
		return []domain.Order{}, nil
	}

	return orders, nil
}

// load читает массив заказов. Отсутствующий или пустой файл — пустое хранилище.
// Некорректный JSON или записи возвращают e.ErrStoreCorrupt.
func (r *OrderRepo) load() ([]converter.OrderModel, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var models []converter.OrderModel
	if err := json.Unmarshal(data, &models); err != nil {
		r.logger.Warnf("Order store %s is not valid JSON, treating as empty: %v", r.path, err)
		return nil, e.Wrap(r.path, e.ErrStoreCorrupt)
	}

	if _, err := converter.ToArrEntity(models); err != nil {
		r.logger.Warnf("Order store %s has invalid records, treating as empty: %v", r.path, err)
		return nil, e.Wrap(r.path, e.ErrStoreCorrupt)
	}

	return models, nil
}

// write атомарно заменяет файл хранилища.
func (r *OrderRepo) write(models []converter.OrderModel) error {
	if models == nil {
		models = []converter.OrderModel{}
	}

	data, err := json.MarshalIndent(models, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	ok := false
	defer func() {
		if !ok {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return err
	}

	ok = true
	return nil
}

// backupCorrupted откладывает поврежденный файл рядом, чтобы следующая запись его не затерла.
func (r *OrderRepo) backupCorrupted() {
	backup := fmt.Sprintf("%s.corrupt-%d", r.path, time.Now().UnixNano())
	if err := os.Rename(r.path, backup); err != nil {
		r.logger.Warnf("Failed to back up corrupted order store %s: %v", r.path, err)
		return
	}
	r.logger.Warnf("Corrupted order store moved to %s", backup)
}

// lock берет межпроцессную блокировку файла хранилища с ограничением по времени.
func (r *OrderRepo) lock(ctx context.Context) (func(), error) {
	lockCtx := ctx
	if r.lockTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, r.lockTimeout)
		defer cancel()
	}

	locked, err := r.fileLock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), errors.Join(e.ErrStoreLocked, err))
	}
	if !locked {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrStoreLocked)
	}

	return func() {
		if err := r.fileLock.Unlock(); err != nil {
			r.logger.Warnf("Failed to release order store lock: %v", err)
		}
	}, nil
}
