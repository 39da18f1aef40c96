package service

import (
	"context"
	"fmt"
	"time"

	"ContestSync/internal/model"

	"github.com/sirupsen/logrus"
)

// RetryExecutor 抓取重试执行器：线性退避（attempt * baseDelay），
// 退避只和尝试次数有关，不带抖动，便于测试推演
type RetryExecutor struct {
	maxAttempts int
	baseDelay   time.Duration
	logger      *logrus.Logger
}

func NewRetryExecutor(maxAttempts int, baseDelay time.Duration, logger *logrus.Logger) *RetryExecutor {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if baseDelay <= 0 {
		baseDelay = time.Second
	}
	return &RetryExecutor{
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		logger:      logger,
	}
}

// Run 执行op直到成功或尝试耗尽；耗尽后把最后一次错误抛给调用方，
// 由同步编排层按来源隔离，单来源失败不拖垮整轮同步
func (r *RetryExecutor) Run(ctx context.Context, label string, op func(ctx context.Context) ([]model.NormalizedContest, error)) ([]model.NormalizedContest, error) {
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err
		r.logger.WithError(err).Warnf("%s 第%d/%d次抓取失败", label, attempt, r.maxAttempts)

		if attempt == r.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%s 重试被取消: %w", label, ctx.Err())
		case <-time.After(time.Duration(attempt) * r.baseDelay):
		}
	}
	return nil, fmt.Errorf("%s 重试%d次后仍失败: %w", label, r.maxAttempts, lastErr)
}
