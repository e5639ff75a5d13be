package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jcallaghan/betpool/internal/model"
	"github.com/jcallaghan/betpool/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Member operations

func (s *Storage) SaveMember(ctx context.Context, member *model.Member) error {
	data, err := json.Marshal(member)
	if err != nil {
		return err
	}

	key := memberKey(member.ID)

	// Use pipeline for atomic save + index update. Members never expire.
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, membersIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMember(ctx context.Context, id model.MemberID) (*model.Member, error) {
	data, err := s.client.Get(ctx, memberKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMemberNotFound
		}
		return nil, err
	}

	var member model.Member
	if err := json.Unmarshal(data, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *Storage) ListMembers(ctx context.Context) ([]*model.Member, error) {
	keys, err := s.client.SMembers(ctx, membersIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	members := make([]*model.Member, 0, len(keys))
	for _, key := range keys {
		data, err := s.client.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, err
		}

		var member model.Member
		if err := json.Unmarshal(data, &member); err != nil {
			return nil, err
		}
		members = append(members, &member)
	}
	return members, nil
}

// Line operations

func (s *Storage) SaveLine(ctx context.Context, line *model.Line) error {
	data, err := json.Marshal(line)
	if err != nil {
		return err
	}

	key := lineKey(line.ID)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, s.cfg.LineTTL)
	pipe.SAdd(ctx, linesIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetLine(ctx context.Context, id model.LineID) (*model.Line, error) {
	data, err := s.client.Get(ctx, lineKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrLineNotFound
		}
		return nil, err
	}

	var line model.Line
	if err := json.Unmarshal(data, &line); err != nil {
		return nil, err
	}
	return &line, nil
}

func (s *Storage) ListLines(ctx context.Context) ([]*model.Line, error) {
	keys, err := s.client.SMembers(ctx, linesIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	lines := make([]*model.Line, 0, len(keys))
	for _, key := range keys {
		data, err := s.client.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Expired line still referenced by the index
				continue
			}
			return nil, err
		}

		var line model.Line
		if err := json.Unmarshal(data, &line); err != nil {
			return nil, err
		}
		lines = append(lines, &line)
	}
	return lines, nil
}

// Stake operations

func (s *Storage) SaveStake(ctx context.Context, stake *model.Stake) error {
	data, err := json.Marshal(stake)
	if err != nil {
		return err
	}

	sKey := stakeKey(stake.LineID, stake.MemberID)
	indexKey := stakesForLineIndexKey(stake.LineID)

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, sKey, data, s.cfg.LineTTL)
	pipe.SAdd(ctx, indexKey, sKey)
	if s.cfg.LineTTL > 0 {
		pipe.Expire(ctx, indexKey, s.cfg.LineTTL) // Keep index TTL in sync
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetStake(ctx context.Context, lineID model.LineID, memberID model.MemberID) (*model.Stake, error) {
	data, err := s.client.Get(ctx, stakeKey(lineID, memberID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrStakeNotFound
		}
		return nil, err
	}

	var stake model.Stake
	if err := json.Unmarshal(data, &stake); err != nil {
		return nil, err
	}
	return &stake, nil
}

func (s *Storage) DeleteStake(ctx context.Context, lineID model.LineID, memberID model.MemberID) error {
	sKey := stakeKey(lineID, memberID)

	pipe := s.client.Pipeline()
	pipe.Del(ctx, sKey)
	pipe.SRem(ctx, stakesForLineIndexKey(lineID), sKey)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) GetStakesForLine(ctx context.Context, lineID model.LineID) ([]*model.Stake, error) {
	keys, err := s.client.SMembers(ctx, stakesForLineIndexKey(lineID)).Result()
	if err != nil {
		return nil, err
	}

	stakes := make([]*model.Stake, 0, len(keys))
	for _, key := range keys {
		data, err := s.client.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, err
		}

		var stake model.Stake
		if err := json.Unmarshal(data, &stake); err != nil {
			return nil, err
		}
		stakes = append(stakes, &stake)
	}
	return stakes, nil
}
