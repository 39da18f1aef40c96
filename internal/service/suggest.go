package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"ContestSync/internal/model"
	"ContestSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// 推荐打分权重
const (
	scorePreferredPlatform = 30 // 用户偏好平台
	scoreFeatured          = 20 // 管理端精选
	scoreWithin24h         = 25 // 24小时内开赛
	scoreWithin72h         = 15 // 3天内开赛
	scoreWithin7d          = 5  // 一周内开赛
	suggestionLimit        = 5
)

// Suggestion 带打分的推荐项
type Suggestion struct {
	Contest *model.Contest `json:"contest"`
	Score   int            `json:"score"`
}

// SuggestionService 赛事推荐：对未来场次按偏好平台、精选标记和
// 开赛临近度打分，取前五
type SuggestionService struct {
	contestRepo repository.ContestRepository
	profileRepo repository.ProfileRepository
	logger      *logrus.Logger
	now         func() time.Time
}

func NewSuggestionService(
	contestRepo repository.ContestRepository,
	profileRepo repository.ProfileRepository,
	logger *logrus.Logger,
) *SuggestionService {
	return &SuggestionService{
		contestRepo: contestRepo,
		profileRepo: profileRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// SuggestFor 给用户算推荐列表；没存过偏好时按默认偏好打分
func (s *SuggestionService) SuggestFor(ctx context.Context, userID string) ([]*Suggestion, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		profile = &model.Profile{UserID: userID}
	}

	now := s.now()
	// 候选集只要未来场次，一页足够打分
	contests, _, err := s.contestRepo.ListContests(ctx, repository.ContestFilter{From: &now}, 1, 100)
	if err != nil {
		return nil, err
	}

	preferred := make(map[string]bool)
	for _, key := range profile.Preferred() {
		preferred[key] = true
	}

	suggestions := make([]*Suggestion, 0, len(contests))
	for _, c := range contests {
		suggestions = append(suggestions, &Suggestion{
			Contest: c,
			Score:   scoreContest(c, preferred, now),
		})
	}

	// 同分按开赛时间先后（候选集本身已按start_time升序，稳定排序保序）
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if len(suggestions) > suggestionLimit {
		suggestions = suggestions[:suggestionLimit]
	}
	return suggestions, nil
}

func scoreContest(c *model.Contest, preferred map[string]bool, now time.Time) int {
	score := 0
	if key, ok := model.PlatformKey(c.Platform); ok && preferred[key] {
		score += scorePreferredPlatform
	}
	if c.IsFeatured {
		score += scoreFeatured
	}
	switch until := c.StartTime.Sub(now); {
	case until < 24*time.Hour:
		score += scoreWithin24h
	case until < 72*time.Hour:
		score += scoreWithin72h
	case until < 7*24*time.Hour:
		score += scoreWithin7d
	}
	return score
}
