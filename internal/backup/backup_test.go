package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthview/hearth/internal/api"
	"github.com/hearthview/hearth/internal/errors"
)

func sampleDoc() api.ConfigDocument {
	return api.ConfigDocument{
		Version: 1,
		Fields: []api.ConfigField{
			{Key: "mqtt.host", Value: "10.0.0.5"},
			{Key: "mqtt.password", Value: "hunter2", Sensitive: true},
			{Key: "zigbee.channel", Value: "15"},
		},
	}
}

func TestExport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/config", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(sampleDoc())
		assert.NoError(t, err)
	}))
	defer srv.Close()

	client := api.New(api.Config{ConfigURL: srv.URL})

	var buf bytes.Buffer
	require.NoError(t, Export(context.Background(), client, &buf))

	var doc api.ConfigDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 1, doc.Version)
	require.Len(t, doc.Fields, 3)
	assert.False(t, doc.ExportedAt.IsZero(), "export stamps its time")
	assert.Equal(t, "hunter2", doc.Fields[1].Value,
		"exports carry real values so a restore round-trips")
}

func TestDecodeValid(t *testing.T) {
	data, err := json.Marshal(sampleDoc())
	require.NoError(t, err)

	doc, decodeErr := Decode(bytes.NewReader(data))
	require.NoError(t, decodeErr)
	assert.Equal(t, "mqtt.host", doc.Fields[0].Key)
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "not json at all"},
		{name: "truncated", input: `{"version": 1, "fields": [`},
		{name: "missing version", input: `{"fields": [{"key": "a", "value": "b"}]}`},
		{name: "no fields", input: `{"version": 1, "fields": []}`},
		{name: "field without key", input: `{"version": 1, "fields": [{"value": "b"}]}`},
		{name: "duplicate key", input: `{"version": 1, "fields": [{"key": "a", "value": "1"}, {"key": "a", "value": "2"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrBackup))
		})
	}
}

func TestRestorePushesToHub(t *testing.T) {
	var pushed api.ConfigDocument
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/config", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&pushed))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := api.New(api.Config{ConfigURL: srv.URL})

	doc := sampleDoc()
	require.NoError(t, Restore(context.Background(), client, &doc))
	assert.Equal(t, "mqtt.password", pushed.Fields[1].Key)
}

func TestRestoreRejectsInvalidDocBeforePushing(t *testing.T) {
	var hit bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
	}))
	defer srv.Close()

	client := api.New(api.Config{ConfigURL: srv.URL})

	err := Restore(context.Background(), client, &api.ConfigDocument{Version: 1})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrBackup))
	assert.False(t, hit, "nothing should reach the hub when the document is bad")
}

func TestMask(t *testing.T) {
	fields := sampleDoc().Fields

	masked := Mask(fields, false)
	assert.Equal(t, "10.0.0.5", masked[0].Value, "plain fields pass through")
	assert.Equal(t, MaskedValue, masked[1].Value)
	assert.Equal(t, "hunter2", fields[1].Value, "the input slice keeps its values")

	revealed := Mask(fields, true)
	assert.Equal(t, "hunter2", revealed[1].Value)
}

func TestSensitiveCount(t *testing.T) {
	assert.Equal(t, 1, SensitiveCount(sampleDoc().Fields))
	assert.Equal(t, 0, SensitiveCount(nil))
}
