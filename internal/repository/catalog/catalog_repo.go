package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DRSN-tech/grocery-merchant/internal/domain"
	"github.com/DRSN-tech/grocery-merchant/internal/repository/catalog/converter"
	"github.com/DRSN-tech/grocery-merchant/pkg/e"
	"github.com/jimlawless/whereami"
	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.json
var defaultCatalog []byte

// CatalogRepo хранит каталог в памяти. Загружается один раз при старте и не изменяется.
type CatalogRepo struct {
	products []domain.Product
	index    map[string]int
}

// NewCatalogRepo строит репозиторий из списка товаров, проверяя уникальность ID и неотрицательность цен.
func NewCatalogRepo(products []domain.Product) (*CatalogRepo, error) {
	index := make(map[string]int, len(products))
	for i, p := range products {
		if strings.TrimSpace(p.ID) == "" {
			return nil, e.Wrap(fmt.Sprintf("product #%d: empty id", i), e.ErrInvalidCatalog)
		}
		if strings.TrimSpace(p.Name) == "" {
			return nil, e.Wrap(fmt.Sprintf("product %s: empty name", p.ID), e.ErrInvalidCatalog)
		}
		if p.Price.IsNegative() {
			return nil, e.Wrap(fmt.Sprintf("product %s: negative price", p.ID), e.ErrInvalidCatalog)
		}
		if _, dup := index[p.ID]; dup {
			return nil, e.Wrap(fmt.Sprintf("product %s: duplicate id", p.ID), e.ErrInvalidCatalog)
		}
		index[p.ID] = i
	}

	return &CatalogRepo{
		products: products,
		index:    index,
	}, nil
}

// Load загружает каталог из path или встроенный каталог, если path пустой.
func Load(path string) (*CatalogRepo, error) {
	var (
		products []domain.Product
		err      error
	)

	if path == "" {
		products, err = decodeJSON(defaultCatalog)
	} else {
		products, err = readFile(path)
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return NewCatalogRepo(products)
}

// List возвращает копию каталога в исходном порядке.
func (c *CatalogRepo) List(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out, nil
}

// GetByID возвращает товар или e.ErrProductNotFound.
func (c *CatalogRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	i, ok := c.index[id]
	if !ok {
		return nil, e.Wrap(id, e.ErrProductNotFound)
	}

	p := c.products[i]
	return &p, nil
}

func readFile(path string) ([]domain.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return decodeJSON(data)
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return nil, e.Wrap(path, e.ErrUnsupportedCatalog)
	}
}

func decodeJSON(data []byte) ([]domain.Product, error) {
	var models []converter.ProductModel
	if err := json.Unmarshal(data, &models); err != nil {
		return nil, e.Wrap("decode json catalog", err)
	}
	return converter.ToArrEntity(models), nil
}

func decodeYAML(data []byte) ([]domain.Product, error) {
	var models []converter.ProductModel
	if err := yaml.Unmarshal(data, &models); err != nil {
		return nil, e.Wrap("decode yaml catalog", err)
	}
	return converter.ToArrEntity(models), nil
}
