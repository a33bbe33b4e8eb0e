package wsframe

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/dmitrijs2005/bookhub/internal/logging"
	"github.com/dmitrijs2005/bookhub/internal/server/metrics"
	"github.com/dmitrijs2005/bookhub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookhub/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher() *Dispatcher {
	bs := services.NewBookService(repomanager.NewMemoryStore())
	return NewDispatcher(logging.Nop{}, bs, metrics.NewRecorder())
}

// roundTrip dispatches frame and returns the reply as generic JSON.
func roundTrip(t *testing.T, d *Dispatcher, frame string) map[string]any {
	t.Helper()
	raw, err := json.Marshal(d.Dispatch(context.Background(), []byte(frame)))
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestDispatch_DuneScenario(t *testing.T) {
	d := newTestDispatcher()

	got := roundTrip(t, d, `{"action":"create","title":"Dune","price":19.99,"author":"Herbert","publicationDate":"1965-06-01"}`)
	assert.Equal(t, map[string]any{
		"action":          "CREATE",
		"id":              1.0,
		"title":           "Dune",
		"price":           19.99,
		"author":          "Herbert",
		"publicationDate": "1965-06-01",
		"success":         true,
		"message":         "Book created successfully",
	}, got)

	got = roundTrip(t, d, `{"action":"GET","id":1}`)
	assert.Equal(t, true, got["success"])
	assert.Equal(t, "1965-06-01", got["publicationDate"])

	got = roundTrip(t, d, `{"action":"Delete","id":"1"}`)
	assert.Equal(t, true, got["success"])
	assert.Equal(t, "Book deleted successfully", got["message"])

	got = roundTrip(t, d, `{"action":"GET","id":1}`)
	assert.Equal(t, map[string]any{
		"action":  "GET",
		"success": false,
		"message": "Book not found with id: 1",
	}, got)
}

func TestDispatch_UnknownAction(t *testing.T) {
	d := newTestDispatcher()

	got := roundTrip(t, d, `{"action":"FOO"}`)

	assert.Equal(t, map[string]any{"action": "ERROR", "success": false, "message": "Unknown action: FOO"}, got)
}

func TestDispatch_BadFrames(t *testing.T) {
	d := newTestDispatcher()

	for _, frame := range []string{`not json`, `{}`, `{"action":""}`, `{"action":"CREATE","price":"cheap"}`} {
		got := roundTrip(t, d, frame)
		assert.Equal(t, "ERROR", got["action"], frame)
		assert.Equal(t, false, got["success"], frame)
		assert.Contains(t, got["message"], "Error processing request: ", frame)
	}
}

func TestDispatch_InvalidIDs(t *testing.T) {
	d := newTestDispatcher()

	for _, frame := range []string{
		`{"action":"GET","id":"abc"}`,
		`{"action":"GET","id":1.5}`,
		`{"action":"UPDATE"}`,
		`{"action":"DELETE","id":null}`,
		`{"action":"DELETE","id":{}}`,
	} {
		got := roundTrip(t, d, frame)
		assert.Equal(t, false, got["success"], frame)
		assert.Equal(t, "Invalid book id", got["message"], frame)
		assert.NotEqual(t, "ERROR", got["action"], frame)
	}
}

func TestDispatch_UpdateClearsAbsentFields(t *testing.T) {
	d := newTestDispatcher()
	roundTrip(t, d, `{"action":"CREATE","title":"Dune","author":"Herbert","publicationDate":"1965-06-01"}`)

	got := roundTrip(t, d, `{"action":"UPDATE","id":1,"title":"Dune Messiah"}`)

	assert.Equal(t, map[string]any{
		"action":  "UPDATE",
		"id":      1.0,
		"title":   "Dune Messiah",
		"success": true,
		"message": "Book updated successfully",
	}, got)

	got = roundTrip(t, d, `{"action":"UPDATE","id":7,"title":"x"}`)
	assert.Equal(t, "Book not found with id: 7", got["message"])
}

func TestDispatch_InvalidDate(t *testing.T) {
	d := newTestDispatcher()

	got := roundTrip(t, d, `{"action":"CREATE","publicationDate":"2023-02-30"}`)

	assert.Equal(t, "CREATE", got["action"])
	assert.Equal(t, false, got["success"])
	assert.Contains(t, got["message"], "validation error")
}

func TestDispatch_GetAll(t *testing.T) {
	d := newTestDispatcher()

	got := roundTrip(t, d, `{"action":"get_all"}`)
	assert.Equal(t, "Found 0 book(s)", got["message"])
	assert.Equal(t, []any{}, got["books"])

	roundTrip(t, d, `{"action":"CREATE","title":"Dune"}`)
	roundTrip(t, d, `{"action":"CREATE","title":"Emma"}`)

	got = roundTrip(t, d, `{"action":"GET_ALL"}`)
	assert.Equal(t, "GET_ALL", got["action"])
	assert.Equal(t, true, got["success"])
	assert.Equal(t, "Found 2 book(s)", got["message"])
	assert.Equal(t, 2.0, got["count"])

	list, ok := got["books"].([]any)
	require.True(t, ok)
	require.Len(t, list, 2)
	first := list[0].(map[string]any)
	assert.Equal(t, "BOOK", first["action"])
	assert.Equal(t, "Dune", first["title"])
}
