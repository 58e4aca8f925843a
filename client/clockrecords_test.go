package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchlog/go-punchlog/client"
)

func TestClockRecordsMine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clock-records/my-records", r.URL.Path)
		assert.Equal(t, "2026-08-01", r.URL.Query().Get("startDate"))
		assert.Equal(t, "2026-08-31", r.URL.Query().Get("endDate"))
		w.Write([]byte(`[{"id":"r1","type":"clock_in","date":"2026-08-29","time":"09:00:00","status":"pending"}]`))
	}))
	defer srv.Close()

	records := client.NewClockRecords(srv.URL)
	list, err := records.Mine(context.Background(), client.RecordFilter{
		StartDate: "2026-08-01",
		EndDate:   "2026-08-31",
	})

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, client.ClockIn, list[0].Type)
	assert.Equal(t, client.StatusPending, list[0].Status)
}

func TestClockRecordsAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clock-records", r.URL.Path)
		assert.Equal(t, "u2", r.URL.Query().Get("userId"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	records := client.NewClockRecords(srv.URL)
	list, err := records.All(context.Background(), client.RecordFilter{UserID: "u2"})

	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestClockRecordsCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/clock-records", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "clock_out", body["type"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"r2","type":"clock_out","date":"2026-08-29","time":"17:30:00","status":"pending"}`))
	}))
	defer srv.Close()

	records := client.NewClockRecords(srv.URL)
	record, err := records.Create(context.Background(), client.NewClockRecord{Type: client.ClockOut})

	require.NoError(t, err)
	assert.Equal(t, "r2", record.ID)
	assert.Equal(t, client.ClockOut, record.Type)
}

func TestClockRecordsUpdateAndDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			assert.Equal(t, "/clock-records/r9", r.URL.Path)
			w.Write([]byte(`{"id":"r9","type":"clock_in","date":"2026-08-29","time":"08:45:00","status":"approved"}`))
		case http.MethodDelete:
			assert.Equal(t, "/clock-records/r9", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	records := client.NewClockRecords(srv.URL)

	record, err := records.Update(context.Background(), "r9", client.NewClockRecord{Time: "08:45:00"})
	require.NoError(t, err)
	assert.Equal(t, client.StatusApproved, record.Status)

	assert.NoError(t, records.Delete(context.Background(), "r9"))
}

func TestClockRecordsSummarize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clock-records/summary", r.URL.Path)
		assert.Equal(t, client.PeriodWeek, r.URL.Query().Get("period"))
		assert.Equal(t, "u7", r.URL.Query().Get("userId"))
		w.Write([]byte(`{"period":"semana","startDate":"2026-08-24","endDate":"2026-08-30","totalHours":38.5,"records":10}`))
	}))
	defer srv.Close()

	records := client.NewClockRecords(srv.URL)
	summary, err := records.Summarize(context.Background(), client.PeriodWeek, "", "", "u7")

	require.NoError(t, err)
	assert.Equal(t, 38.5, summary.TotalHours)
	assert.Equal(t, 10, summary.Records)
	assert.Equal(t, "2026-08-24", summary.StartDate)
}
