package interfaces

import "context"

// Notifier 出站通知能力，一个实现负责一类消息渠道的投递
// timeUntil 为已格式化的“距开赛还有多久”文案
type Notifier interface {
	Send(ctx context.Context, channel, recipient, contestName, platform, timeUntil string) error
}
