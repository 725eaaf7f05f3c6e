package item

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
	itemKeyPrefix       = "item:"
	directorIndexPrefix = "item:director:"

	errItemNil       = "item cannot be nil"
	errItemIDEmpty   = "item ID cannot be empty"
	errDirectorEmpty = "director ID cannot be empty"
	errItemNameEmpty = "item name cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis item repository.
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

// NewRedis creates a new Redis-backed item repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client}, nil
}

func itemKey(id string) string {
	return itemKeyPrefix + id
}

func directorKey(directorID string) string {
	return directorIndexPrefix + directorID
}

func validateItem(item *entities.Item) error {
	if item == nil {
		return errors.InvalidArgument(errItemNil)
	}
	if item.ID == "" {
		return errors.InvalidArgument(errItemIDEmpty)
	}
	if item.DirectorID == "" {
		return errors.InvalidArgument(errDirectorEmpty)
	}
	if item.Name == "" {
		return errors.InvalidArgument(errItemNameEmpty)
	}
	return nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateItem(input.Item); err != nil {
		return nil, err
	}

	key := itemKey(input.Item.ID)
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("item with ID %s already exists", input.Item.ID)
	}

	data, err := json.Marshal(input.Item)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal item")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, directorKey(input.Item.DirectorID), input.Item.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create item")
	}

	return &CreateOutput{Item: input.Item}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errItemIDEmpty)
	}

	result, err := r.client.Get(ctx, itemKey(input.ID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("item with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get item")
	}

	var item entities.Item
	if err := json.Unmarshal([]byte(result), &item); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal item")
	}

	return &GetOutput{Item: &item}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateItem(input.Item); err != nil {
		return nil, err
	}

	existing, err := r.Get(ctx, GetInput{ID: input.Item.ID})
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Item)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal item")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, itemKey(input.Item.ID), data, 0)
	if existing.Item.DirectorID != input.Item.DirectorID {
		pipe.SRem(ctx, directorKey(existing.Item.DirectorID), input.Item.ID)
		pipe.SAdd(ctx, directorKey(input.Item.DirectorID), input.Item.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to update item")
	}

	return &UpdateOutput{Item: input.Item}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errItemIDEmpty)
	}

	existing, err := r.Get(ctx, GetInput{ID: input.ID})
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, itemKey(input.ID))
	pipe.SRem(ctx, directorKey(existing.Item.DirectorID), input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete item")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListByDirector(ctx context.Context, input ListByDirectorInput) (*ListByDirectorOutput, error) {
	if input.DirectorID == "" {
		return nil, errors.InvalidArgument(errDirectorEmpty)
	}

	ids, err := r.client.SMembers(ctx, directorKey(input.DirectorID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list director items")
	}
	if len(ids) == 0 {
		return &ListByDirectorOutput{Items: []*entities.Item{}}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = itemKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load director items")
	}

	items := make([]*entities.Item, 0, len(values))
	for i, v := range values {
		if v == nil {
			// stale index entry, drop it
			r.client.SRem(ctx, directorKey(input.DirectorID), ids[i])
			continue
		}
		raw, ok := v.(string)
		if !ok {
			return nil, errors.Internalf("unexpected value type for item %s", ids[i])
		}
		var item entities.Item
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal item %s", ids[i])
		}
		items = append(items, &item)
	}

	// SMembers order is arbitrary
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})

	return &ListByDirectorOutput{Items: items}, nil
}
