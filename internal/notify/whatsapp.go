package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ContestSync/internal/config"
	"ContestSync/internal/interfaces"

	"github.com/sirupsen/logrus"
)

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// TwilioWhatsAppNotifier 走Twilio Messages API发WhatsApp提醒
type TwilioWhatsAppNotifier struct {
	accountSID string
	authToken  string
	fromNumber string
	client     *http.Client
	logger     *logrus.Logger
}

// NewTwilioWhatsAppNotifier 凭证齐全时返回真实发送器，否则返回nil
// （调用方应降级到Noop）
func NewTwilioWhatsAppNotifier(cfg *config.NotifyConfig, logger *logrus.Logger) *TwilioWhatsAppNotifier {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" || cfg.TwilioWhatsAppNumber == "" {
		return nil
	}
	return &TwilioWhatsAppNotifier{
		accountSID: cfg.TwilioAccountSID,
		authToken:  cfg.TwilioAuthToken,
		fromNumber: cfg.TwilioWhatsAppNumber,
		client:     &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
		logger:     logger,
	}
}

// Send 发送单条WhatsApp提醒消息
func (n *TwilioWhatsAppNotifier) Send(ctx context.Context, channel, recipient, contestName, platform, timeUntil string) error {
	if channel != "whatsapp" {
		return fmt.Errorf("不支持的渠道: %s", channel)
	}

	body := fmt.Sprintf("🔔 *AlgoBell Contest Reminder*\n\n📊 *%s*\n🏷️ Platform: %s\n⏰ %s\n\nGood luck! 🚀",
		contestName, platform, timeUntil)

	form := url.Values{}
	form.Set("To", withWhatsAppPrefix(recipient))
	form.Set("From", withWhatsAppPrefix(n.fromNumber))
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", twilioAPIBase, n.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("构造Twilio请求失败: %w", err)
	}
	req.SetBasicAuth(n.accountSID, n.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("Twilio请求失败: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		// Twilio错误体带message字段，取出来做错误信息
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("Twilio返回错误: %s", apiErr.Message)
		}
		return fmt.Errorf("Twilio返回状态码%d", resp.StatusCode)
	}

	var result struct {
		SID string `json:"sid"`
	}
	_ = json.Unmarshal(raw, &result)
	n.logger.WithField("sid", result.SID).Info("WhatsApp消息发送成功")
	return nil
}

// withWhatsAppPrefix Twilio要求号码带 whatsapp: 前缀
func withWhatsAppPrefix(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}

var _ interfaces.Notifier = (*TwilioWhatsAppNotifier)(nil)
