// Package redis wraps the go-redis client used by the durable
// session-record store. The wrapper exists so the rest of the code
// depends on one constructor that has already verified connectivity.
package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// pingTimeout bounds the startup connectivity check; a backend that
// cannot answer a ping this fast should fail boot, not first login.
const pingTimeout = 2 * time.Second

type Client struct {
	*goredis.Client
}

func New(addr, password string) (*Client, error) {

	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Client{Client: client}, nil
}
