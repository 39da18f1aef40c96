package atcoder

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ContestSync/internal/config"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestFetchContestsOnlyFuture(t *testing.T) {
	now := time.Now().Unix()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/contests.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `[
			{"id":"abc400","title":"ABC 400","start_epoch_second":%d,"duration_second":6000},
			{"id":"abc399","title":"ABC 399","start_epoch_second":%d,"duration_second":6000}
		]`, now+86400, now-86400)
	}))
	defer srv.Close()

	a := New(&config.PlatformConfig{BaseURL: srv.URL, Timeout: 5, Limit: 10}, testLogger())
	contests, err := a.FetchContests(context.Background())
	if err != nil {
		t.Fatalf("抓取失败: %v", err)
	}
	if len(contests) != 1 {
		t.Fatalf("只应保留未来场次, 实际%d场", len(contests))
	}
	c := contests[0]
	if c.ExternalID != "ac-abc400" {
		t.Errorf("外部ID应带ac-前缀, 实际%s", c.ExternalID)
	}
	if c.URL != "https://atcoder.jp/contests/abc400" {
		t.Errorf("比赛链接错误: %s", c.URL)
	}
	if c.Platform != "AtCoder" {
		t.Errorf("平台名错误: %s", c.Platform)
	}
}

func TestFetchContestsBadJSONPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not-json`))
	}))
	defer srv.Close()

	a := New(&config.PlatformConfig{BaseURL: srv.URL, Timeout: 5}, testLogger())
	if _, err := a.FetchContests(context.Background()); err == nil {
		t.Fatal("响应非法应返回错误（交由上层重试）")
	}
}
