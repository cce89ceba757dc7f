package service

import (
	"context"
	"time"
)

func contextWithInvalidateTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Second)
}
