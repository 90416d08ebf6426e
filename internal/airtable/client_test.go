package airtable

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New("", "app1")
	assert.ErrorIs(t, err, ErrMissingCredentials)
	_, err = New("key", " ")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestListRecordsFollowsOffset(t *testing.T) {
	var offsets []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		assert.Equal(t, "/v0/app1/Registration_Options", r.URL.Path)

		offset := r.URL.Query().Get("offset")
		offsets = append(offsets, offset)

		w.Header().Set("Content-Type", "application/json")
		switch offset {
		case "":
			_, _ = w.Write([]byte(`{"records":[{"id":"rec1","fields":{"option_name":"A"}}],"offset":"p2"}`))
		case "p2":
			_, _ = w.Write([]byte(`{"records":[{"id":"rec2"}],"offset":"p3"}`))
		default:
			_, _ = w.Write([]byte(`{"records":[{"id":"rec3","fields":{"price":"10"}}]}`))
		}
	}))
	defer srv.Close()

	c, err := New("key", "app1", WithAPIURL(srv.URL+"/v0"))
	require.NoError(t, err)

	records, err := c.ListRecords(context.Background(), "Registration_Options")
	require.NoError(t, err)

	assert.Equal(t, []string{"", "p2", "p3"}, offsets)
	require.Len(t, records, 3)
	assert.Equal(t, "rec2", records[1].ID)
	assert.NotNil(t, records[1].Fields, "missing fields decode to an empty map")
	assert.Equal(t, "A", records[0].Fields["option_name"])
}

func TestListRecordsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"AUTHENTICATION_REQUIRED"}`))
	}))
	defer srv.Close()

	c, err := New("bad", "app1", WithAPIURL(srv.URL))
	require.NoError(t, err)

	_, err = c.ListRecords(context.Background(), "Camps")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Contains(t, apiErr.Body, "AUTHENTICATION_REQUIRED")
}

func TestCreateRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var body createRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) || !assert.Len(t, body.Records, 1) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.True(t, body.Typecast)
		assert.Equal(t, "hello", body.Records[0].Fields["Message"])

		_, _ = w.Write([]byte(`{"records":[{"id":"recNew","createdTime":"2026-01-01T00:00:00.000Z","fields":{"Message":"hello"}}]}`))
	}))
	defer srv.Close()

	c, err := New("key", "app1", WithAPIURL(srv.URL))
	require.NoError(t, err)

	rec, err := c.CreateRecord(context.Background(), "Feedback", map[string]any{"Message": "hello"}, true)
	require.NoError(t, err)
	assert.Equal(t, "recNew", rec.ID)
	assert.Equal(t, "2026-01-01T00:00:00.000Z", rec.CreatedTime)
}
