package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	mw "github.com/edvin/shopadmin/internal/api/middleware"
	"github.com/edvin/shopadmin/internal/core"
)

// newRequest creates a new HTTP request with an optional JSON body.
func newRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", "application/json")
	return r
}

// newRequestRaw creates a new HTTP request with a raw string body.
func newRequestRaw(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// withChiURLParam adds a chi URL parameter to the request context.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withChiURLParams adds multiple chi URL parameters to the request context.
func withChiURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// newMultipartRequest builds a multipart/form-data request. An empty
// filename leaves out the image part.
func newMultipartRequest(method, target string, fields map[string]string, filename string, content []byte) *http.Request {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		writer.WriteField(k, v)
	}
	if filename != "" {
		part, _ := writer.CreateFormFile("image", filename)
		part.Write(content)
	}
	writer.Close()
	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", writer.FormDataContentType())
	return r
}

// decodeErrorResponse parses the JSON error response body into a map.
func decodeErrorResponse(rec *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	return body
}

// withAdmin injects the claims of a signed-in admin into the request context.
func withAdmin(r *http.Request) *http.Request {
	claims := &core.Claims{
		Email:            "admin@example.com",
		Role:             "admin",
		RegisteredClaims: jwt.RegisteredClaims{Subject: validID},
	}
	return r.WithContext(mw.WithClaims(r.Context(), claims))
}

const validID = "11111111-1111-4111-8111-111111111111"
const validID2 = "22222222-2222-4222-8222-222222222222"
