package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"ContestSync/internal/adapter"
	"ContestSync/internal/interfaces"
	"ContestSync/internal/model"
	"ContestSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// 留存窗口：开赛超过24小时的比赛清出库
const retentionWindow = 24 * time.Hour

// SyncResult 一次同步的对外结果
type SyncResult struct {
	Synced int      `json:"synced"`
	Errors []string `json:"errors"`
}

// SyncEngine 同步编排：并发抓取→合并→幂等upsert→自动订阅→留存清理，
// 全程写sync_logs审计行
type SyncEngine struct {
	registry    *adapter.PlatformRegistry
	retry       *RetryExecutor
	contestRepo repository.ContestRepository
	syncLogRepo repository.SyncLogRepository
	autoSub     *AutoSubscriber
	logger      *logrus.Logger
}

func NewSyncEngine(
	registry *adapter.PlatformRegistry,
	retry *RetryExecutor,
	contestRepo repository.ContestRepository,
	syncLogRepo repository.SyncLogRepository,
	autoSub *AutoSubscriber,
	logger *logrus.Logger,
) *SyncEngine {
	return &SyncEngine{
		registry:    registry,
		retry:       retry,
		contestRepo: contestRepo,
		syncLogRepo: syncLogRepo,
		autoSub:     autoSub,
		logger:      logger,
	}
}

// RunSync 执行一轮完整同步
// 单来源重试耗尽只记入errors（状态partial）；合并之后任何一步失败
// 整轮记failed并向调用方返回错误。已提交的写入不回滚：upsert幂等，
// 下一轮重跑会自我修正（至少一次语义）
func (e *SyncEngine) RunSync(ctx context.Context) (*SyncResult, error) {
	syncLog := &model.SyncLog{SyncType: "full", Status: model.SyncStatusRunning}
	if err := e.syncLogRepo.Create(ctx, syncLog); err != nil {
		// 审计行写不进去不阻塞同步本身
		e.logger.WithError(err).Warn("sync_logs开场行写入失败")
		syncLog.ID = ""
	}

	e.logger.Info("开始赛事同步")
	merged, syncErrs := e.fetchAll(ctx)

	if err := e.upsertAndFanOut(ctx, merged); err != nil {
		e.closeLog(ctx, syncLog.ID, model.SyncStatusFailed, 0, err.Error())
		return nil, err
	}

	// 留存清理：开赛早于 now-24h 的行删除
	if _, err := e.contestRepo.DeleteStartedBefore(ctx, time.Now().UTC().Add(-retentionWindow)); err != nil {
		e.closeLog(ctx, syncLog.ID, model.SyncStatusFailed, len(merged), err.Error())
		return nil, fmt.Errorf("留存清理失败: %w", err)
	}

	status := model.SyncStatusSuccess
	if len(syncErrs) > 0 {
		status = model.SyncStatusPartial
	}
	e.closeLog(ctx, syncLog.ID, status, len(merged), strings.Join(syncErrs, "; "))

	e.logger.Infof("同步完成: %d场比赛, %d个来源失败", len(merged), len(syncErrs))
	if syncErrs == nil {
		syncErrs = []string{}
	}
	return &SyncResult{Synced: len(merged), Errors: syncErrs}, nil
}

// fetchAll 并发抓取所有来源并合并
// results按注册顺序落位：合并时的来源优先级由配置顺序决定，与
// goroutine完成先后无关
func (e *SyncEngine) fetchAll(ctx context.Context) ([]model.NormalizedContest, []string) {
	adapters := e.registry.Adapters()
	results := make([][]model.NormalizedContest, len(adapters))

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		syncErrs []string
	)
	for i, ad := range adapters {
		wg.Add(1)
		go func(idx int, a interfaces.ContestAdapter) {
			defer wg.Done()
			list, err := e.retry.Run(ctx, a.GetName(), a.FetchContests)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// 单来源耗尽：零条入账，错误进errors，不影响其他来源
				syncErrs = append(syncErrs, fmt.Sprintf("%s: %v", a.GetName(), err))
				return
			}
			results[idx] = list
			e.logger.Infof("%s: 抓到%d场比赛", a.GetName(), len(list))
		}(i, ad)
	}
	wg.Wait()

	return MergeContests(results...), syncErrs
}

// upsertAndFanOut 幂等入库并触发自动订阅
func (e *SyncEngine) upsertAndFanOut(ctx context.Context, merged []model.NormalizedContest) error {
	if len(merged) == 0 {
		return nil
	}

	rows := make([]*model.Contest, 0, len(merged))
	externalIDs := make([]string, 0, len(merged))
	for i := range merged {
		rows = append(rows, merged[i].ToContest())
		externalIDs = append(externalIDs, merged[i].ExternalID)
	}

	if err := e.contestRepo.UpsertContests(ctx, rows); err != nil {
		return fmt.Errorf("赛事upsert失败: %w", err)
	}

	// 回查权威行（带库分配id），自动订阅的提醒要挂在真实id上
	stored, err := e.contestRepo.ListByExternalIDs(ctx, externalIDs)
	if err != nil {
		return fmt.Errorf("upsert后回查失败: %w", err)
	}

	if err := e.autoSub.AutoSubscribe(ctx, stored); err != nil {
		return fmt.Errorf("自动订阅扇出失败: %w", err)
	}
	return nil
}

func (e *SyncEngine) closeLog(ctx context.Context, id, status string, synced int, errMsg string) {
	if id == "" {
		return
	}
	var msg *string
	if errMsg != "" {
		msg = &errMsg
	}
	if err := e.syncLogRepo.Close(ctx, id, status, synced, msg); err != nil {
		e.logger.WithError(err).Warn("sync_logs收尾失败")
	}
}
