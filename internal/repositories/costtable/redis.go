package costtable

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/forgelight/forge-api/internal/entities"
	"github.com/forgelight/forge-api/internal/errors"
	redisclient "github.com/forgelight/forge-api/internal/redis"
)

const (
	configRowsKey = "costtable:config"
	costRowsKey   = "costtable:costs"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis cost table repository.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed cost table repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Get(ctx context.Context, _ GetInput) (*GetOutput, error) {
	values, err := r.client.MGet(ctx, configRowsKey, costRowsKey).Result()
	if err != nil && err != redis.Nil {
		return nil, errors.Wrapf(err, "failed to load pricing tables")
	}

	out := &GetOutput{}
	if len(values) > 0 && values[0] != nil {
		raw, ok := values[0].(string)
		if !ok {
			return nil, errors.Internal("unexpected value type for config rows")
		}
		if err := json.Unmarshal([]byte(raw), &out.ConfigRows); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal config rows")
		}
	}
	if len(values) > 1 && values[1] != nil {
		raw, ok := values[1].(string)
		if !ok {
			return nil, errors.Internal("unexpected value type for cost rows")
		}
		if err := json.Unmarshal([]byte(raw), &out.CostRows); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal cost rows")
		}
	}

	return out, nil
}

func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	configData, err := json.Marshal(orEmptyConfig(input.ConfigRows))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal config rows")
	}
	costData, err := json.Marshal(orEmptyCost(input.CostRows))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal cost rows")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, configRowsKey, configData, 0)
	pipe.Set(ctx, costRowsKey, costData, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to store pricing tables")
	}

	return &PutOutput{}, nil
}

func orEmptyConfig(rows []entities.ConfigRow) []entities.ConfigRow {
	if rows == nil {
		return []entities.ConfigRow{}
	}
	return rows
}

func orEmptyCost(rows []entities.CostRow) []entities.CostRow {
	if rows == nil {
		return []entities.CostRow{}
	}
	return rows
}
