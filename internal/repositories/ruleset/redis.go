package ruleset

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/forgelight/forge-api/internal/entities"
	"github.com/forgelight/forge-api/internal/errors"
	redisclient "github.com/forgelight/forge-api/internal/redis"
)

const rulesetKeyPrefix = "ruleset:"

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis ruleset repository.
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

// NewRedis creates a new Redis-backed ruleset repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client}, nil
}

func collectionKey(c Collection) string {
	return rulesetKeyPrefix + string(c)
}

func (r *redisRepository) Get(ctx context.Context, _ GetInput) (*GetOutput, error) {
	keys := make([]string, len(AllCollections))
	for i, c := range AllCollections {
		keys[i] = collectionKey(c)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil && err != redis.Nil {
		return nil, errors.Wrapf(err, "failed to load ruleset collections")
	}

	rules := &entities.Ruleset{}
	for i, c := range AllCollections {
		if i >= len(values) || values[i] == nil {
			continue
		}
		raw, ok := values[i].(string)
		if !ok {
			return nil, errors.Internalf("unexpected value type for collection %s", c)
		}
		if err := unmarshalCollection(rules, c, []byte(raw)); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal collection %s", c)
		}
	}

	return &GetOutput{Ruleset: rules}, nil
}

func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if len(input.Collections) == 0 {
		return nil, errors.InvalidArgument("at least one collection is required")
	}

	pipe := r.client.TxPipeline()
	for _, c := range input.Collections {
		data, err := marshalCollection(&input.Ruleset, c)
		if err != nil {
			return nil, err
		}
		pipe.Set(ctx, collectionKey(c), data, 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to store ruleset collections")
	}
	return &PutOutput{}, nil
}

func marshalCollection(rules *entities.Ruleset, c Collection) ([]byte, error) {
	var v interface{}
	switch c {
	case CollectionDamageTypes:
		v = rules.DamageTypes
	case CollectionAttackEffects:
		v = rules.AttackEffects
	case CollectionDefenceEffects:
		v = rules.DefenceEffects
	case CollectionAttributes:
		v = rules.Attributes
	case CollectionWardingOptions:
		v = rules.WardingOptions
	case CollectionSanctifiedOptions:
		v = rules.SanctifiedOptions
	case CollectionTraits:
		v = rules.Traits
	case CollectionLimitBreaks:
		v = rules.LimitBreaks
	default:
		return nil, errors.InvalidArgumentf("unknown collection: %s", c)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal collection %s", c)
	}
	return data, nil
}

func unmarshalCollection(rules *entities.Ruleset, c Collection, data []byte) error {
	switch c {
	case CollectionDamageTypes:
		return json.Unmarshal(data, &rules.DamageTypes)
	case CollectionAttackEffects:
		return json.Unmarshal(data, &rules.AttackEffects)
	case CollectionDefenceEffects:
		return json.Unmarshal(data, &rules.DefenceEffects)
	case CollectionAttributes:
		return json.Unmarshal(data, &rules.Attributes)
	case CollectionWardingOptions:
		return json.Unmarshal(data, &rules.WardingOptions)
	case CollectionSanctifiedOptions:
		return json.Unmarshal(data, &rules.SanctifiedOptions)
	case CollectionTraits:
		return json.Unmarshal(data, &rules.Traits)
	case CollectionLimitBreaks:
		return json.Unmarshal(data, &rules.LimitBreaks)
	default:
		return errors.InvalidArgumentf("unknown collection: %s", c)
	}
}
