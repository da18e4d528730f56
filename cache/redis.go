// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

package cache

import (
	"net/url"
	"regexp"
	"time"

	"github.com/garyburd/redigo/redis"
)

// RedisCache is a pattern cache shared across a fleet of Router processes.
// Because a compiled *regexp.Regexp can't cross a network boundary, a hit
// only tells this process the pattern is already known-good elsewhere;
// Get still recompiles it locally. The value is a shared registry of
// validated patterns, not raw compile-avoidance within one process -- for
// that, use MemCache.
type RedisCache struct {
	prefix string
	pool   *redis.Pool
}

// NewRedisCache returns a RedisCache using uri in the
// {network}://:{auth@}{host:port}/{index} form.
// keyPrefix namespaces cache keys when multiple Routers share one Redis.
func NewRedisCache(uri, keyPrefix string) (*RedisCache, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, err
	}
	if host, port, _ := splitHostPort(u.Host); port == "" {
		u.Host = host + ":6379"
	}

	var auth, idx string
	if u.User != nil {
		if value, ok := u.User.Password(); ok {
			auth = value
		}
	}
	if u.Path != "" {
		idx = u.Path[1:]
	}

	pool := &redis.Pool{
		MaxIdle:     10,
		MaxActive:   100,
		IdleTimeout: 300 * time.Second,
		Dial: func() (redis.Conn, error) {
			c, err := redis.Dial(u.Scheme, u.Host)
			if err != nil {
				return nil, err
			}
			if auth != "" {
				if err := c.Send("AUTH", auth); err != nil {
					c.Close()
					return nil, err
				}
			}
			if idx != "" {
				if err := c.Send("SELECT", idx); err != nil {
					c.Close()
					return nil, err
				}
			}
			return c, nil
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			_, err := c.Do("PING")
			return err
		},
	}

	return &RedisCache{prefix: keyPrefix, pool: pool}, nil
}

// Get reports whether source is already registered as known-good, and if
// so recompiles it locally (a compiled regex can't be shared over Redis).
func (r *RedisCache) Get(source string) (*regexp.Regexp, bool) {
	c := r.pool.Get()
	defer c.Close()

	ok, err := redis.Bool(c.Do("EXISTS", r.prefix+source))
	if err != nil || !ok {
		return nil, false
	}

	re, err := regexp.Compile(source)
	if err != nil {
		return nil, false
	}
	return re, true
}

// Put registers source as known-good for every Router sharing this Redis.
func (r *RedisCache) Put(source string, re *regexp.Regexp) {
	c := r.pool.Get()
	defer c.Close()
	c.Do("SET", r.prefix+source, 1)
}

func splitHostPort(hostport string) (host, port string, ok bool) {
	for i := len(hostport) - 1; i >= 0; i-- {
		if hostport[i] == ':' {
			return hostport[:i], hostport[i+1:], true
		}
		if hostport[i] == ']' {
			break
		}
	}
	return hostport, "", false
}
