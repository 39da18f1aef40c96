package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ContestSync/internal/model"
	"ContestSync/internal/repository"
)

// ========== 测试用内存仓储 ==========

type fakeContestRepo struct {
	contests    map[string]*model.Contest // key: platform|external_id
	upsertErr   error
	deletedRows int64
	deleteErr   error
	nextID      int
}

func newFakeContestRepo() *fakeContestRepo {
	return &fakeContestRepo{contests: make(map[string]*model.Contest)}
}

func (f *fakeContestRepo) UpsertContests(ctx context.Context, contests []*model.Contest) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	for _, c := range contests {
		key := c.Platform + "|" + c.ExternalID
		if existing, ok := f.contests[key]; ok {
			existing.Name = c.Name
			existing.URL = c.URL
			existing.StartTime = c.StartTime
			existing.Duration = c.Duration
			continue
		}
		f.nextID++
		c.ID = fmt.Sprintf("contest-%d", f.nextID)
		f.contests[key] = c
	}
	return nil
}

func (f *fakeContestRepo) ListByExternalIDs(ctx context.Context, externalIDs []string) ([]*model.Contest, error) {
	wanted := make(map[string]bool, len(externalIDs))
	for _, id := range externalIDs {
		wanted[id] = true
	}
	var result []*model.Contest
	for _, c := range f.contests {
		if wanted[c.ExternalID] {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeContestRepo) DeleteStartedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	for key, c := range f.contests {
		if c.StartTime.Before(cutoff) {
			delete(f.contests, key)
			f.deletedRows++
		}
	}
	return f.deletedRows, nil
}

func (f *fakeContestRepo) ListContests(ctx context.Context, filter repository.ContestFilter, page, pageSize int) ([]*model.Contest, int64, error) {
	var result []*model.Contest
	for _, c := range f.contests {
		if filter.Platform != "" && c.Platform != filter.Platform {
			continue
		}
		if filter.FeaturedOnly && !c.IsFeatured {
			continue
		}
		if filter.From != nil && c.StartTime.Before(*filter.From) {
			continue
		}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.Before(result[j].StartTime) })
	return result, int64(len(result)), nil
}

func (f *fakeContestRepo) GetByID(ctx context.Context, id string) (*model.Contest, error) {
	for _, c := range f.contests {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeContestRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*model.Contest, error) {
	result := make(map[string]*model.Contest)
	for _, id := range ids {
		if c, err := f.GetByID(ctx, id); err == nil {
			result[id] = c
		}
	}
	return result, nil
}

func (f *fakeContestRepo) SetFeatured(ctx context.Context, id string, featured bool) error {
	c, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.IsFeatured = featured
	return nil
}

func (f *fakeContestRepo) Delete(ctx context.Context, id string) error {
	for key, c := range f.contests {
		if c.ID == id {
			delete(f.contests, key)
		}
	}
	return nil
}

func (f *fakeContestRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.contests)), nil
}

func (f *fakeContestRepo) add(c *model.Contest) {
	f.contests[c.Platform+"|"+c.ExternalID] = c
}

type fakeProfileRepo struct {
	profiles map[string]*model.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*model.Profile)}
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) GetByUserIDs(ctx context.Context, userIDs []string) (map[string]*model.Profile, error) {
	result := make(map[string]*model.Profile)
	for _, id := range userIDs {
		if p, ok := f.profiles[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

func (f *fakeProfileRepo) UpsertProfile(ctx context.Context, p *model.Profile) error {
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeProfileRepo) ListWithAutoReminders(ctx context.Context) ([]*model.Profile, error) {
	var result []*model.Profile
	for _, p := range f.profiles {
		if len(p.AutoPlatforms()) > 0 {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

type fakeReminderRepo struct {
	rows   []*model.Reminder
	keys   map[string]bool
	nextID int
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{keys: make(map[string]bool)}
}

func reminderKey(r *model.Reminder) string {
	return fmt.Sprintf("%s|%s|%s|%s", r.UserID, r.ContestID, r.ReminderTime.UTC().Format(time.RFC3339), r.Channel)
}

func (f *fakeReminderRepo) InsertIgnoreDuplicates(ctx context.Context, reminders []*model.Reminder) error {
	for _, r := range reminders {
		key := reminderKey(r)
		if f.keys[key] {
			continue
		}
		f.keys[key] = true
		f.nextID++
		r.ID = fmt.Sprintf("reminder-%d", f.nextID)
		f.rows = append(f.rows, r)
	}
	return nil
}

func (f *fakeReminderRepo) ListDue(ctx context.Context, before time.Time) ([]*model.Reminder, error) {
	var due []*model.Reminder
	for _, r := range f.rows {
		if r.Status == model.ReminderPending && !r.ReminderTime.After(before) {
			due = append(due, r)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ReminderTime.Before(due[j].ReminderTime) })
	return due, nil
}

func (f *fakeReminderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	for _, r := range f.rows {
		if r.ID == id {
			r.Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeReminderRepo) DeletePending(ctx context.Context, userID, contestID string) error {
	var kept []*model.Reminder
	for _, r := range f.rows {
		if r.UserID == userID && r.ContestID == contestID && r.Status == model.ReminderPending {
			delete(f.keys, reminderKey(r))
			continue
		}
		kept = append(kept, r)
	}
	f.rows = kept
	return nil
}

func (f *fakeReminderRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	result := make(map[string]int64)
	for _, r := range f.rows {
		result[r.Status]++
	}
	return result, nil
}

func (f *fakeReminderRepo) CountSentInRange(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	var total int64
	for _, r := range f.rows {
		if r.UserID == userID && r.Status == model.ReminderSent &&
			!r.ReminderTime.Before(from) && !r.ReminderTime.After(to) {
			total++
		}
	}
	return total, nil
}

type fakeSubscriptionRepo struct {
	subs map[string]*model.Subscription // key: user_id|contest_id
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[string]*model.Subscription)}
}

func (f *fakeSubscriptionRepo) InsertIgnore(ctx context.Context, sub *model.Subscription) error {
	key := sub.UserID + "|" + sub.ContestID
	if _, ok := f.subs[key]; ok {
		return nil
	}
	f.subs[key] = sub
	return nil
}

func (f *fakeSubscriptionRepo) Delete(ctx context.Context, userID, contestID string) error {
	delete(f.subs, userID+"|"+contestID)
	return nil
}

func (f *fakeSubscriptionRepo) ListByUser(ctx context.Context, userID string) ([]*model.Subscription, error) {
	var result []*model.Subscription
	for _, s := range f.subs {
		if s.UserID == userID {
			result = append(result, s)
		}
	}
	return result, nil
}

type fakeSubmissionRepo struct {
	count int64
}

func (f *fakeSubmissionRepo) CountInRange(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	return f.count, nil
}

type fakeSyncLogRepo struct {
	logs   []*model.SyncLog
	nextID int
}

func (f *fakeSyncLogRepo) Create(ctx context.Context, log *model.SyncLog) error {
	f.nextID++
	log.ID = fmt.Sprintf("synclog-%d", f.nextID)
	f.logs = append(f.logs, log)
	return nil
}

func (f *fakeSyncLogRepo) Close(ctx context.Context, id, status string, contestsSynced int, errorMessage *string) error {
	for _, l := range f.logs {
		if l.ID == id {
			now := time.Now().UTC()
			l.Status = status
			l.ContestsSynced = contestsSynced
			l.ErrorMessage = errorMessage
			l.CompletedAt = &now
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeSyncLogRepo) ListRecent(ctx context.Context, limit int) ([]*model.SyncLog, error) {
	return f.logs, nil
}

// ========== 测试用通知器与适配器 ==========

type sentMessage struct {
	channel   string
	recipient string
	contest   string
}

type fakeNotifier struct {
	sent []sentMessage
	err  error
}

func (f *fakeNotifier) Send(ctx context.Context, channel, recipient, contestName, platform, timeUntil string) error {
	f.sent = append(f.sent, sentMessage{channel: channel, recipient: recipient, contest: contestName})
	return f.err
}

type fakeAdapter struct {
	name     string
	contests []model.NormalizedContest
	err      error
	calls    int
}

func (f *fakeAdapter) GetName() string { return f.name }

func (f *fakeAdapter) FetchContests(ctx context.Context) ([]model.NormalizedContest, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.contests, nil
}
