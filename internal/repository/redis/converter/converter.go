//go:generate goverter gen github.com/DRSN-tech/storefront-backend/internal/repository/redis/converter

package converter

import (
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/usecase"
)

// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerString
type ProductConverter interface {
	ToRedisModel(entity *usecase.ProductRes) *ProductRedisModel
	ToUseCase(model *ProductRedisModel) *usecase.ProductRes
	ToArrRedisModel(entities []usecase.ProductRes) []ProductRedisModel
	ToArrUseCase(models []ProductRedisModel) []usecase.ProductRes
}

func ConvertTime(t time.Time) time.Time {
	return t
}

func ConvertPointerString(s *string) *string {
	return s
}
