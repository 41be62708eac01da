package live

import (
	"github.com/fitsphere/coaching/pkg/internal/live/memory"
	"github.com/fitsphere/coaching/pkg/internal/live/redis"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// C is the active coordination store, chosen at startup. Every server
// instance owns an independent view unless the redis backend is enabled, so
// a horizontally-scaled deployment must set live.use_redis.
var C Repository

func NewStore() error {
	if viper.GetBool("live.use_redis") {
		store, err := redis.NewRepository(redis.Config{
			URI:       viper.GetString("live.redis.uri"),
			KeyPrefix: viper.GetString("live.redis.key_prefix"),
			TTL:       viper.GetDuration("live.redis.ttl"),
		})
		if err != nil {
			return err
		}
		C = store
		log.Info().Str("backend", "redis").Msg("Live coordination store is ready.")
		return nil
	}

	C = memory.NewRepository()
	log.Info().Str("backend", "memory").Msg("Live coordination store is ready.")
	return nil
}
