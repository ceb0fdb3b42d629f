package memory

import (
	"sort"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

func matches(f entity.MovementFilter, productID int64, at time.Time) bool {
	if f.ProductID > 0 && productID != f.ProductID {
		return false
	}
	if f.From != nil && at.Before(*f.From) {
		return false
	}
	if f.To != nil && at.After(*f.To) {
		return false
	}
	return true
}

// sortNewestFirst ordena por fecha descendente y, en empate, por ID descendente.
func sortNewestFirst[T any](list []T, key func(T) (int64, int64)) {
	sort.Slice(list, func(i, j int) bool {
		ai, aid := key(list[i])
		bi, bid := key(list[j])
		if ai != bi {
			return ai > bi
		}
		return aid > bid
	})
}
