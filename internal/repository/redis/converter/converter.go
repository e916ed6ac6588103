package converter

// SearchRedisModel — закэшированная выдача поиска.
// Хранится только порядок идентификаторов, сами товары берутся из каталога.
type SearchRedisModel struct {
	Key        string   `json:"key"`
	ProductIDs []string `json:"product_ids"`
}

func ToRedisModel(key string, productIDs []string) *SearchRedisModel {
	ids := productIDs
	if ids == nil {
		ids = []string{}
	}
	return &SearchRedisModel{Key: key, ProductIDs: ids}
}

func ToProductIDs(model *SearchRedisModel) []string {
	if model.ProductIDs == nil {
		return []string{}
	}
	return model.ProductIDs
}
