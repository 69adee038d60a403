package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edvin/shopadmin/internal/core"
	"github.com/edvin/shopadmin/internal/model"
)

func TestAuditList_Filters(t *testing.T) {
	db := new(handlerMockDB)
	h := NewAudit(core.NewAuditLogService(db))
	db.On("QueryRow", mock.Anything, "SELECT count(*) FROM audit_logs WHERE resource_type = $1 AND method = $2",
		[]any{"products", "DELETE"}).Return(countRow(1))
	db.On("Query", mock.Anything, sqlContaining("FROM audit_logs WHERE resource_type = $1 AND method = $2"),
		[]any{"products", "DELETE", 20, 0}).
		Return(newHandlerMockRows(func(dest ...any) error {
			admin, rt, rid := validID, "products", validID2
			*(dest[0].(*string)) = "a1"
			*(dest[1].(**string)) = &admin
			*(dest[2].(*string)) = "DELETE"
			*(dest[3].(*string)) = "/api/v1/products/" + validID2
			*(dest[4].(**string)) = &rt
			*(dest[5].(**string)) = &rid
			*(dest[6].(*int)) = 204
			*(dest[8].(*time.Time)) = time.Now()
			return nil
		}), nil)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/audit-logs?resource_type=products&method=DELETE", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body pageBody[model.AuditLog]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, 204, body.Items[0].StatusCode)
	assert.Equal(t, validID2, *body.Items[0].ResourceID)
	db.AssertExpectations(t)
}

func TestAuditList_InvalidDate(t *testing.T) {
	h := NewAudit(core.NewAuditLogService(new(handlerMockDB)))
	rec := httptest.NewRecorder()

	h.List(rec, httptest.NewRequest(http.MethodGet, "/audit-logs?from=yesterday", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
