package interfaces

import (
	"context"

	"ContestSync/internal/config"
	"ContestSync/internal/model"

	"github.com/sirupsen/logrus"
)

// ContestAdapter 所有上游赛事来源必须实现的核心接口
// FetchContests 内部完成平台专属过滤与规范化（UTC时间、秒级时长）；
// 网络/解析错误向上抛，由重试执行器决定是否重抓
type ContestAdapter interface {
	GetName() string // 平台展示名（如 CodeForces）
	FetchContests(ctx context.Context) ([]model.NormalizedContest, error)
}

// Factory 平台适配器工厂函数签名
// 入参：平台配置、日志实例
// 出参：实现ContestAdapter接口的适配器实例
type Factory func(cfg *config.PlatformConfig, logger *logrus.Logger) ContestAdapter
