package notify

import (
	"context"

	"ContestSync/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// NoopNotifier 空实现：Twilio未配置时顶上，只记日志不出站
// 开发环境和单测环境默认走这条路
type NoopNotifier struct {
	logger *logrus.Logger
}

func NewNoopNotifier(logger *logrus.Logger) *NoopNotifier {
	return &NoopNotifier{logger: logger}
}

func (n *NoopNotifier) Send(ctx context.Context, channel, recipient, contestName, platform, timeUntil string) error {
	n.logger.WithFields(logrus.Fields{
		"channel":   channel,
		"recipient": recipient,
		"contest":   contestName,
		"platform":  platform,
	}).Info("通知出站未配置，跳过实际发送")
	return nil
}

var _ interfaces.Notifier = (*NoopNotifier)(nil)
