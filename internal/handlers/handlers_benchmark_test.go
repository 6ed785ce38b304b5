package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func BenchmarkReceiveShorten(b *testing.B) {
	env := newEnv(b)
	body := `{"url": "https://yandex.ru/benchmark"}`

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/shorten", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		env.do(req).Body.Close()
	}
}

func BenchmarkResponseURL(b *testing.B) {
	env := newEnv(b, withMappings(`{"abc123":"https://yandex.ru"}`))

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		env.do(httptest.NewRequest(http.MethodGet, "/abc123", nil)).Body.Close()
	}
}

func BenchmarkShortenerPage(b *testing.B) {
	env := newEnv(b)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		env.do(httptest.NewRequest(http.MethodGet, "/", nil)).Body.Close()
	}
}
