package monster

import (
	"context"
	"encoding/json"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/forgelight/forge-api/internal/entities"
	"github.com/forgelight/forge-api/internal/errors"
	redisclient "github.com/forgelight/forge-api/internal/redis"
)

const (
	monsterKeyPrefix    = "monster:"
	directorIndexPrefix = "monster:director:"

	errMonsterNil      = "monster cannot be nil"
	errMonsterIDEmpty  = "monster ID cannot be empty"
	errDirectorEmpty   = "director ID cannot be empty"
	errMonsterNameNone = "monster name cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis monster repository.
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

// NewRedis creates a new Redis-backed monster repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client}, nil
}

func monsterKey(id string) string {
	return monsterKeyPrefix + id
}

func directorKey(directorID string) string {
	return directorIndexPrefix + directorID
}

func validateMonster(m *entities.Monster) error {
	if m == nil {
		return errors.InvalidArgument(errMonsterNil)
	}
	if m.ID == "" {
		return errors.InvalidArgument(errMonsterIDEmpty)
	}
	if m.DirectorID == "" {
		return errors.InvalidArgument(errDirectorEmpty)
	}
	if m.Name == "" {
		return errors.InvalidArgument(errMonsterNameNone)
	}
	return nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateMonster(input.Monster); err != nil {
		return nil, err
	}

	key := monsterKey(input.Monster.ID)
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("monster with ID %s already exists", input.Monster.ID)
	}

	data, err := json.Marshal(input.Monster)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal monster")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, directorKey(input.Monster.DirectorID), input.Monster.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create monster")
	}

	return &CreateOutput{Monster: input.Monster}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errMonsterIDEmpty)
	}

	result, err := r.client.Get(ctx, monsterKey(input.ID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("monster with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get monster")
	}

	var m entities.Monster
	if err := json.Unmarshal([]byte(result), &m); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal monster")
	}

	return &GetOutput{Monster: &m}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateMonster(input.Monster); err != nil {
		return nil, err
	}

	existing, err := r.Get(ctx, GetInput{ID: input.Monster.ID})
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Monster)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal monster")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, monsterKey(input.Monster.ID), data, 0)
	if existing.Monster.DirectorID != input.Monster.DirectorID {
		pipe.SRem(ctx, directorKey(existing.Monster.DirectorID), input.Monster.ID)
		pipe.SAdd(ctx, directorKey(input.Monster.DirectorID), input.Monster.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to update monster")
	}

	return &UpdateOutput{Monster: input.Monster}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errMonsterIDEmpty)
	}

	existing, err := r.Get(ctx, GetInput{ID: input.ID})
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, monsterKey(input.ID))
	pipe.SRem(ctx, directorKey(existing.Monster.DirectorID), input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete monster")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListByDirector(ctx context.Context, input ListByDirectorInput) (*ListByDirectorOutput, error) {
	if input.DirectorID == "" {
		return nil, errors.InvalidArgument(errDirectorEmpty)
	}

	ids, err := r.client.SMembers(ctx, directorKey(input.DirectorID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list director monsters")
	}
	if len(ids) == 0 {
		return &ListByDirectorOutput{Monsters: []*entities.Monster{}}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = monsterKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load director monsters")
	}

	monsters := make([]*entities.Monster, 0, len(values))
	for i, v := range values {
		if v == nil {
			// stale index entry, drop it
			r.client.SRem(ctx, directorKey(input.DirectorID), ids[i])
			continue
		}
		raw, ok := v.(string)
		if !ok {
			return nil, errors.Internalf("unexpected value type for monster %s", ids[i])
		}
		var m entities.Monster
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal monster %s", ids[i])
		}
		monsters = append(monsters, &m)
	}

	sort.Slice(monsters, func(i, j int) bool {
		if monsters[i].Name != monsters[j].Name {
			return monsters[i].Name < monsters[j].Name
		}
		return monsters[i].ID < monsters[j].ID
	})

	return &ListByDirectorOutput{Monsters: monsters}, nil
}
