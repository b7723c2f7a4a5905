package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// 客户端未初始化时各辅助函数直接按未命中处理，离线任务与单元测试无需真实连接

// SetValue 设置键值对
func SetValue(ctx context.Context, key string, value interface{}) error {
	if Rdb == nil {
		return nil
	}
	return Rdb.Set(ctx, key, value, 0).Err()
}

// SetWithExpiration 设置键值对并设置过期时间
func SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if Rdb == nil {
		return nil
	}
	return Rdb.Set(ctx, key, value, expiration).Err()
}

// GetValue 获取字符串类型的值
func GetValue(ctx context.Context, key string) (string, error) {
	if Rdb == nil {
		return "", nil
	}
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// GetFloat64 获取浮点类型的值，键不存在时返回错误
func GetFloat64(ctx context.Context, key string) (float64, error) {
	if Rdb == nil {
		return 0, redis.Nil
	}
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(value, 64)
}

// TryLock 尝试获取分布式锁
func TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error) {
	if Rdb == nil {
		return true, nil
	}
	for i := 0; i <= retryTimes || retryTimes == -1; i++ {
		success, err := Rdb.SetNX(ctx, key, value, expiration).Result()
		if err != nil {
			return false, err
		}
		if success {
			return true, nil
		}
		if i < retryTimes || retryTimes == -1 {
			time.Sleep(time.Millisecond * 200)
		}
	}
	return false, nil
}

// UnLock 释放锁
func UnLock(ctx context.Context, key string, value interface{}) {
	if Rdb == nil {
		return
	}
	Rdb.Eval(ctx, "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end", []string{key}, value)
}

// DeleteKey 删除一个键
func DeleteKey(ctx context.Context, key string) error {
	if Rdb == nil {
		return nil
	}
	return Rdb.Del(ctx, key).Err()
}

// GetRdbClient 获取redis客户端
func GetRdbClient() *redis.Client {
	return Rdb
}
