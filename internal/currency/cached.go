package currency

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"minibank/internal/cache"
	"minibank/internal/utils"
)

// CachedRateSource кеширует курсы в Redis поверх любого источника.
// Промах или недоступность кеша не ломают конвертацию - идём в источник.
type CachedRateSource struct {
	source RateSource
	cache  *cache.RedisCache
}

func NewCachedRateSource(source RateSource, c *cache.RedisCache) *CachedRateSource {
	return &CachedRateSource{source: source, cache: c}
}

func (s *CachedRateSource) GetRate(ctx context.Context, code string) (decimal.Decimal, error) {
	key := cache.CurrencyRateKey(code)

	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		rate, parseErr := decimal.NewFromString(cached)
		if parseErr == nil {
			utils.LogDebug("RateCache", "HIT: курс %s из кеша: %s", code, cached)
			return rate, nil
		}
		utils.LogWarning("RateCache", "%s", fmt.Sprintf("Повреждённое значение курса %s в кеше: %q", code, cached))
	} else if err != redis.Nil {
		utils.LogWarning("RateCache", "%s", fmt.Sprintf("Ошибка чтения кеша курсов: %v", err))
	}

	rate, err := s.source.GetRate(ctx, code)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if saveErr := s.cache.Set(ctx, key, rate.String(), cache.CurrencyRateTTL); saveErr != nil {
		utils.LogWarning("RateCache", "%s", fmt.Sprintf("Не удалось сохранить курс %s в кеш: %v", code, saveErr))
	}

	return rate, nil
}
