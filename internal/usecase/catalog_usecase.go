package usecase

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/grocery-merchant/internal/domain"
	"github.com/DRSN-tech/grocery-merchant/internal/search"
	"github.com/DRSN-tech/grocery-merchant/pkg/e"
	"github.com/DRSN-tech/grocery-merchant/pkg/logger"
	"github.com/cespare/xxhash/v2"
)

// CatalogUseCase реализует поиск по каталогу с персонализацией и структурную фильтрацию.
type CatalogUseCase struct {
	catalogRepo CatalogRepository
	sessionRepo SessionRepository
	cacheRepo   SearchCacheRepository // nil, если кэш не настроен
	logger      logger.Logger
	cacheWrite  time.Duration

	versionOnce sync.Once
	version     string // отпечаток каталога в ключах кэша
}

func NewCatalogUC(
	catalogRepo CatalogRepository,
	sessionRepo SessionRepository,
	cacheRepo SearchCacheRepository,
	logger logger.Logger,
) *CatalogUseCase {
	const defaultCacheWriteTimeout = 500 * time.Millisecond

	return &CatalogUseCase{
		catalogRepo: catalogRepo,
		sessionRepo: sessionRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
		cacheWrite:  defaultCacheWriteTimeout,
	}
}

// Search возвращает товары, релевантные запросу, с учетом предпочтений сессии.
// Пустой запрос возвращает весь каталог в исходном порядке.
func (c *CatalogUseCase) Search(ctx context.Context, sessionID, query string) ([]domain.Product, error) {
	const op = "CatalogUseCase.Search"

	products, err := c.catalogRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	normalized := search.NormalizeQuery(query)
	if normalized == "" {
		return products, nil
	}

	userCtx, err := c.sessionRepo.Get(ctx, sessionOrDefault(sessionID))
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	prefs := search.Preferences{Diet: userCtx.Diet()}
	cacheKey := searchCacheKey(c.catalogVersion(products), normalized, prefs.Diet)

	// Поиск выдачи в кэше
	if cached, ok := c.cachedSearch(ctx, cacheKey, products); ok {
		return cached, nil
	}

	result := search.Products(search.Rank(products, normalized, prefs))

	// Фоновое сохранение выдачи в кэш
	if c.cacheRepo != nil {
		ids := productIDs(result)
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), c.cacheWrite)
			defer cancel()

			if err := c.cacheRepo.SetSearch(bgCtx, cacheKey, ids); err != nil {
				c.logger.Warnf("Failed to cache search results in background: %v", e.Wrap(op, err))
			}
		}()
	}

	return result, nil
}

// ListProducts фильтрует каталог по заданным полям ProductFilter.
func (c *CatalogUseCase) ListProducts(ctx context.Context, filter *ProductFilter) ([]domain.Product, error) {
	const op = "CatalogUseCase.ListProducts"

	products, err := c.catalogRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if filter == nil {
		return products, nil
	}

	result := make([]domain.Product, 0, len(products))
	for i := range products {
		if filter.Matches(&products[i]) {
			result = append(result, products[i])
		}
	}

	return result, nil
}

// GetProduct возвращает товар по идентификатору.
func (c *CatalogUseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	const op = "CatalogUseCase.GetProduct"

	product, err := c.catalogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return product, nil
}

// Matches проверяет товар по всем заданным полям фильтра.
func (f *ProductFilter) Matches(p *domain.Product) bool {
	if f.Category != nil && *f.Category != "" && !p.InCategory(*f.Category) {
		return false
	}

	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}

	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}

	if f.Color != nil && *f.Color != "" {
		color := strings.ToLower(p.Attribute("color"))
		if !strings.Contains(color, strings.ToLower(*f.Color)) {
			return false
		}
	}

	if f.Search != nil && *f.Search != "" {
		q := strings.ToLower(*f.Search)
		name := strings.ToLower(p.Name)
		desc := strings.ToLower(p.Attribute("description"))
		if !strings.Contains(name, q) && !strings.Contains(desc, q) {
			return false
		}
	}

	return true
}

// cachedSearch достает выдачу из кэша. Любая ошибка кэша считается промахом.
func (c *CatalogUseCase) cachedSearch(ctx context.Context, key string, catalog []domain.Product) ([]domain.Product, bool) {
	if c.cacheRepo == nil {
		return nil, false
	}

	ids, err := c.cacheRepo.GetSearch(ctx, key)
	if err != nil {
		if !errors.Is(err, e.ErrCacheMiss) {
			c.logger.Warnf("Search cache read failed: %v", err)
		}
		return nil, false
	}

	byID := make(map[string]domain.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	result := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			c.logger.Warnf("Cached search references unknown product %q, recomputing", id)
			return nil, false
		}
		result = append(result, p)
	}

	return result, true
}

// ClearSearchCache удаляет все закэшированные выдачи поиска.
// Возвращает false, если кэш не настроен.
func (c *CatalogUseCase) ClearSearchCache(ctx context.Context) (bool, error) {
	const op = "CatalogUseCase.ClearSearchCache"

	if c.cacheRepo == nil {
		return false, nil
	}

	if err := c.cacheRepo.InvalidateSearch(ctx); err != nil {
		return true, e.Wrap(op, err)
	}

	return true, nil
}

// catalogVersion вычисляет отпечаток каталога один раз: каталог не меняется после загрузки.
func (c *CatalogUseCase) catalogVersion(products []domain.Product) string {
	c.versionOnce.Do(func() {
		c.version = catalogFingerprint(products)
	})
	return c.version
}

// catalogFingerprint — xxhash от полей товаров, которые влияют на выдачу.
// Разные каталоги с одинаковыми ID получают разные ключи кэша.
func catalogFingerprint(products []domain.Product) string {
	h := xxhash.New()
	for _, p := range products {
		for _, field := range []string{p.ID, p.Name, p.Category, p.Price.String(), p.Currency} {
			_, _ = h.WriteString(field)
			_, _ = h.Write([]byte{0})
		}
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// searchCacheKey строит ключ выдачи: версия каталога, нормализованный запрос и отсортированный diet.
func searchCacheKey(catalogVersion, normalizedQuery string, diet []string) string {
	sorted := slices.Clone(diet)
	slices.Sort(sorted)
	return "catalog=" + catalogVersion + "|q=" + normalizedQuery + "|diet=" + strings.Join(sorted, ",")
}

func productIDs(products []domain.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}
