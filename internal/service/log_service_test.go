package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"studymanager/internal/model"
	"studymanager/pkg/analysis"
	"studymanager/pkg/notion"
	"studymanager/pkg/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	created  []notion.Entry
	pages    []notion.Page
	createFn func(notion.Entry) error
	queryErr error
}

func (f *fakeStore) CreateEntry(ctx context.Context, entry notion.Entry) error {
	if f.createFn != nil {
		if err := f.createFn(entry); err != nil {
			return err
		}
	}
	f.created = append(f.created, entry)
	return nil
}

func (f *fakeStore) QueryEntries(ctx context.Context) ([]notion.Page, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.pages, nil
}

func mistakePage(text string) notion.Page {
	prop := notion.Property{}
	if text != "" {
		prop.RichText = []notion.RichText{{Text: notion.Text{Content: text}}}
	}
	return notion.Page{Properties: map[string]notion.Property{notion.PropertyMistakes: prop}}
}

func TestAddLog_FillsDefaultsAndDate(t *testing.T) {
	store := &fakeStore{}
	svc := NewLogService(store)
	fixed := time.Date(2024, 2, 3, 4, 5, 6, 0, time.FixedZone("JST", 9*3600))
	svc.now = func() time.Time { return fixed }

	entry, err := svc.AddLog(context.Background(), &model.AddLogRequest{TaskName: "Physics", Status: "Done"})
	require.NoError(t, err)

	assert.Equal(t, "None", entry.Mistakes)
	assert.Equal(t, "None", entry.Rewards)
	assert.Equal(t, time.UTC, entry.Date.Location())
	assert.True(t, entry.Date.Equal(fixed))

	require.Len(t, store.created, 1)
	assert.Equal(t, notion.Entry{
		TaskName: "Physics",
		Status:   "Done",
		Mistakes: "None",
		Rewards:  "None",
		Date:     fixed.UTC(),
	}, store.created[0])
}

func TestAddLog_KeepsProvidedValues(t *testing.T) {
	store := &fakeStore{}
	svc := NewLogService(store)

	_, err := svc.AddLog(context.Background(), &model.AddLogRequest{
		TaskName: "Essay",
		Status:   "Failed",
		Mistakes: "ran out of time",
		Rewards:  "coffee",
	})
	require.NoError(t, err)
	assert.Equal(t, "ran out of time", store.created[0].Mistakes)
	assert.Equal(t, "coffee", store.created[0].Rewards)
}

func TestAddLog_PropagatesUpstreamError(t *testing.T) {
	store := &fakeStore{createFn: func(notion.Entry) error {
		return &upstream.Error{Service: "notion", StatusCode: http.StatusBadRequest, Body: json.RawMessage(`{"code":"validation_error"}`)}
	}}
	svc := NewLogService(store)

	entry, err := svc.AddLog(context.Background(), &model.AddLogRequest{TaskName: "a", Status: "b"})
	assert.Nil(t, entry)
	upErr, ok := upstream.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, upErr.StatusCode)
}

func TestAnalyzeMistakes(t *testing.T) {
	store := &fakeStore{pages: []notion.Page{mistakePage("x"), mistakePage("x"), mistakePage(""), mistakePage("y")}}
	svc := NewLogService(store)

	tally, err := svc.AnalyzeMistakes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, analysis.Tally{"x": 2, "y": 1}, tally)
}

func TestAnalyzeMistakes_Error(t *testing.T) {
	store := &fakeStore{queryErr: errors.New("boom")}
	svc := NewLogService(store)

	tally, err := svc.AnalyzeMistakes(context.Background())
	assert.Nil(t, tally)
	assert.ErrorContains(t, err, "failed to fetch data")
}
