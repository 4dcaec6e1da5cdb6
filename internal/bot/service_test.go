package bot

import (
	"errors"
	"sort"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/gratefultolord/daily_report_bot/internal/db"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func (f *fakeSender) messagesTo(chatID int64) []string {
	var out []string
	for _, c := range f.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok && m.ChatID == chatID {
			out = append(out, m.Text)
		}
	}
	return out
}

func (f *fakeSender) lastMessageTo(chatID int64) string {
	msgs := f.messagesTo(chatID)
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1]
}

type fakeUsers struct {
	users     map[int64]*db.User
	createErr error
	created   int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[int64]*db.User)}
}

func (f *fakeUsers) Create(user *db.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.users[user.TelegramUserID]; ok {
		return nil
	}
	u := *user
	f.users[user.TelegramUserID] = &u
	f.created++
	return nil
}

func (f *fakeUsers) GetByTelegramUserID(id int64) (*db.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUsers) GetAll() ([]db.User, error) {
	var out []db.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

type fakeReports struct {
	reports   map[int64]*db.Report
	nextID    int64
	createErr error
}

func newFakeReports() *fakeReports {
	return &fakeReports{reports: make(map[int64]*db.Report)}
}

func (f *fakeReports) Create(report *db.Report) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	report.ID = f.nextID
	r := *report
	f.reports[r.ID] = &r
	return nil
}

func (f *fakeReports) GetByID(id int64) (*db.Report, error) {
	r, ok := f.reports[id]
	if !ok {
		return nil, nil
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReports) inRange(from, to time.Time) []db.Report {
	var out []db.Report
	for _, r := range f.reports {
		if !r.ReportDate.Before(from) && !r.ReportDate.After(to) {
			out = append(out, *r)
		}
	}
	return out
}

func (f *fakeReports) GetPendingInRange(from, to time.Time) ([]db.Report, error) {
	var out []db.Report
	for _, r := range f.inRange(from, to) {
		if r.Status == db.ReportStatusPending {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ReportDate.Equal(out[j].ReportDate) {
			return out[i].ReportDate.Before(out[j].ReportDate)
		}
		return out[i].FullName < out[j].FullName
	})
	return out, nil
}

func (f *fakeReports) GetAllInRange(from, to time.Time) ([]db.Report, error) {
	out := f.inRange(from, to)
	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		if !out[i].ReportDate.Equal(out[j].ReportDate) {
			return out[i].ReportDate.Before(out[j].ReportDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeReports) GetByUserInRange(userID int64, from, to time.Time) ([]db.Report, error) {
	var out []db.Report
	for _, r := range f.inRange(from, to) {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeReports) SetDecision(id int64, status db.ReportStatus, reason *string) (bool, error) {
	r, ok := f.reports[id]
	if !ok || r.Status != db.ReportStatusPending {
		return false, nil
	}
	r.Status = status
	r.RevisionReason = reason
	return true, nil
}

func (f *fakeReports) CountApprovedInRange(from, to time.Time) ([]db.ApprovedCount, error) {
	byName := make(map[string]int)
	for _, r := range f.inRange(from, to) {
		if r.Status == db.ReportStatusApproved {
			byName[r.FullName]++
		}
	}
	var out []db.ApprovedCount
	for name, n := range byName {
		out = append(out, db.ApprovedCount{FullName: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].FullName < out[j].FullName
	})
	return out, nil
}

type fakeTasks struct {
	tasks     []db.Task
	nextID    int64
	createErr error
}

func (f *fakeTasks) Create(task *db.Task) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	task.ID = f.nextID
	f.tasks = append(f.tasks, *task)
	return nil
}

func (f *fakeTasks) GetOpenByUser(userID int64) ([]db.Task, error) {
	var out []db.Task
	for _, t := range f.tasks {
		if t.UserID == userID && t.Status == db.TaskStatusNew {
			out = append(out, t)
		}
	}
	return out, nil
}

type testEnv struct {
	svc     *Service
	out     *fakeSender
	users   *fakeUsers
	reports *fakeReports
	tasks   *fakeTasks
}

func newTestEnv(adminIDs ...int64) *testEnv {
	out := &fakeSender{}
	users := newFakeUsers()
	reports := newFakeReports()
	tasks := &fakeTasks{}

	svc := New(
		out,
		users,
		reports,
		tasks,
		NewSessionManager(time.Hour),
		adminIDs,
		[]string{"secret2024"},
		nil,
		nil,
		zerolog.Nop(),
	)

	return &testEnv{svc: svc, out: out, users: users, reports: reports, tasks: tasks}
}

func (e *testEnv) registerUser(id int64, name string) {
	e.users.users[id] = &db.User{TelegramUserID: id, FullName: name}
}

func (e *testEnv) state(chatID int64) State {
	return e.svc.sessions.Get(chatID).State
}

func textUpdate(chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: text,
			Chat: &tgbotapi.Chat{ID: chatID},
			From: &tgbotapi.User{ID: chatID, FirstName: "Иван", LastName: "Петров"},
		},
	}
}

func photoUpdate(chatID int64, fileID string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Photo: []tgbotapi.PhotoSize{{FileID: "thumb"}, {FileID: fileID}},
			Chat:  &tgbotapi.Chat{ID: chatID},
			From:  &tgbotapi.User{ID: chatID, FirstName: "Иван", LastName: "Петров"},
		},
	}
}

var errStoreDown = errors.New("store down")
