package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordParse(t *testing.T) {
	before := testutil.ToFloat64(LineItemsExtracted.WithLabelValues("v"))
	RecordParse("structured", []string{"v", "v", "p"})

	assert.Equal(t, before+2, testutil.ToFloat64(LineItemsExtracted.WithLabelValues("v")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(DocumentsParsed.WithLabelValues("structured")), 1.0)
}

func TestRecordWrite_SkipsZero(t *testing.T) {
	before := testutil.ToFloat64(RecordsWritten.WithLabelValues("parts", "insert"))
	RecordWrite("parts", "insert", 0)
	RecordWrite("parts", "insert", 3)
	assert.Equal(t, before+3, testutil.ToFloat64(RecordsWritten.WithLabelValues("parts", "insert")))
}

func TestHandler(t *testing.T) {
	RecordImport(StatusCompleted, 150*time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `parts_imports_total{status="completed"}`)
	assert.Contains(t, rec.Body.String(), "parts_import_duration_seconds_bucket")
}
