package main

import (
	"bytes"
	"event-browser-backend/cmd/event-browser/model"
	"event-browser-backend/cmd/event-browser/repository"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvHeader = "title,description,start_date,end_date,location,categories,price,capacity,online"

func uploadCSV(t testing.TB, handler http.Handler, content string) (*httptest.ResponseRecorder, model.ImportResult) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	csvField, err := writer.CreateFormFile("csvfile", "events.csv")
	require.NoError(t, err)
	_, err = csvField.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/import", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var result model.ImportResult
	if rec.Code == http.StatusOK {
		decodeResponseData(t, rec, &result)
	}

	return rec, result
}

func TestCSVProcessing_LargeFiles(t *testing.T) {
	handler, st := newTestApp(t, repository.NewMemoryRepo())

	var sb strings.Builder
	sb.WriteString(csvHeader + "\n")
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&sb, "Event %d,Description %d,2025-03-%02d,,Hall %d,Tech|Music,%d,,\n", i, i, i%28+1, i, i%50)
	}

	rec, result := uploadCSV(t, handler, sb.String())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, result.Created, 500)
	assert.Empty(t, result.Errors)
	assert.Len(t, st.Events(), 500)
}

func TestCSVProcessing_UnicodeCharacters(t *testing.T) {
	testCases := []struct {
		name  string
		title string
	}{
		{"Accents", "Café Crawl Fête"},
		{"CJK", "音楽の夜"},
		{"Emoji", "Game Night 🎲"},
		{"RTL", "ليلة الشعر"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler, st := newTestApp(t, repository.NewMemoryRepo())

			content := csvHeader + "\n" + tc.title + ",Open to all,2025-03-01,,Union,Social,,,\n"
			rec, result := uploadCSV(t, handler, content)
			require.Equal(t, http.StatusOK, rec.Code)
			require.Len(t, result.Created, 1)

			events := st.Events()
			require.Len(t, events, 1)
			assert.Equal(t, tc.title, events[0].Title)
			assert.True(t, utf8.ValidString(events[0].Title))
		})
	}
}

func TestCSVProcessing_ByteOrderMark(t *testing.T) {
	handler, st := newTestApp(t, repository.NewMemoryRepo())

	content := "\xef\xbb\xbf" + csvHeader + "\nJazz Night,Live trio,2025-03-01,,Union,Music,,,\n"
	rec, result := uploadCSV(t, handler, content)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, result.Created, 1)
	assert.Equal(t, "Jazz Night", st.Events()[0].Title)
}

func TestCSVProcessing_LineEndings(t *testing.T) {
	testCases := []struct {
		name    string
		newline string
	}{
		{"Unix line endings (LF)", "\n"},
		{"Windows line endings (CRLF)", "\r\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler, _ := newTestApp(t, repository.NewMemoryRepo())

			content := strings.Join([]string{
				csvHeader,
				"Jazz Night,Live trio,2025-03-01,,Union,Music,,,",
				"AI Talk,Talks,2025-03-02,,Library,Tech,,,",
			}, tc.newline)

			rec, result := uploadCSV(t, handler, content)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Len(t, result.Created, 2)
			assert.Empty(t, result.Errors)
		})
	}
}

func TestCSVProcessing_ComplexQuoting(t *testing.T) {
	handler, st := newTestApp(t, repository.NewMemoryRepo())

	content := csvHeader + "\n" +
		`"Poetry, Prose & ""Pie""","Line one` + "\n" + `line two",2025-03-01,,"Room 101, Library",Arts|Food,,,` + "\n"

	rec, result := uploadCSV(t, handler, content)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, result.Created, 1)

	e := st.Events()[0]
	assert.Equal(t, `Poetry, Prose & "Pie"`, e.Title)
	assert.Equal(t, "Line one\nline two", e.Description)
	assert.Equal(t, "Room 101, Library", e.Location)
	assert.Equal(t, []string{"Arts", "Food"}, e.Categories)
}

func TestCSVProcessing_ErrorHandling(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected int
	}{
		{"Unclosed quote", csvHeader + "\n\"Unclosed quote,desc,2025-03-01,,Union,Music,,,", http.StatusBadRequest},
		{"Header only", csvHeader + "\n", http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler, st := newTestApp(t, repository.NewMemoryRepo())

			rec, result := uploadCSV(t, handler, tc.content)
			assert.Equal(t, tc.expected, rec.Code)
			assert.Empty(t, result.Created)
			assert.Empty(t, st.Events())
		})
	}
}

func TestCSVProcessing_EmptyAndWhitespaceFields(t *testing.T) {
	handler, st := newTestApp(t, repository.NewMemoryRepo())

	content := csvHeader + "\n" +
		"  Padded title  ,  desc  , 2025-03-01 ,,  Union  , Music | | Art ,  ,  ,  \n" +
		"No categories,desc,2025-03-01,,Union,,,,\n"

	rec, result := uploadCSV(t, handler, content)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, result.Created, 1)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Message, "categories")

	e := st.Events()[0]
	assert.Equal(t, "Padded title", e.Title)
	assert.Equal(t, "2025-03-01", e.StartDate)
	assert.Equal(t, []string{"Music", "Art"}, e.Categories)
	assert.Nil(t, e.Price)
}

func BenchmarkCSVProcessing_Import(b *testing.B) {
	var sb strings.Builder
	sb.WriteString(csvHeader + "\n")
	for i := 0; i < 100; i++ {
		fmt.Fprintf(&sb, "Event %d,Description,2025-03-01,,Hall,Tech,,,\n", i)
	}
	content := sb.String()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		handler, _ := newTestApp(b, repository.NewMemoryRepo())
		b.StartTimer()

		rec, _ := uploadCSV(b, handler, content)
		if rec.Code != http.StatusOK {
			b.Fatalf("import failed: %d", rec.Code)
		}
	}
}
