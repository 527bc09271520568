package ui

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datalens/internal/config"
	"datalens/internal/testkit"
)

func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0"},
		Upload: config.UploadConfig{MaxUploadMB: 100},
	}
	app, err := NewApp(cfg, nil)
	require.NoError(t, err)

	srv := httptest.NewServer(app.Router())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return srv, &http.Client{Jar: jar}
}

// uploadBody builds the multipart form the landing page submits.
func uploadBody(t *testing.T, filename string, data []byte, hasHeader bool) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	if filename != "" {
		fw, err := mw.CreateFormFile("dataset", filename)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	if hasHeader {
		require.NoError(t, mw.WriteField("has_header", "on"))
	}
	require.NoError(t, mw.WriteField("delimiter", "comma"))
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestIndexPage(t *testing.T) {
	srv, client := newTestServer(t)

	resp, err := client.Get(srv.URL + "/")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Upload")
}

func TestUploadRedirectsToOverview(t *testing.T) {
	srv, client := newTestServer(t)

	buf, contentType := uploadBody(t, "mini.csv", []byte(testkit.MiniCSV), true)
	resp, err := client.Post(srv.URL+"/upload", contentType, buf)
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/overview", resp.Request.URL.Path)
	assert.Contains(t, body, "mini.csv")
	assert.Contains(t, body, "3") // row count
}

func TestUploadWithoutFileShowsGate(t *testing.T) {
	srv, client := newTestServer(t)

	buf, contentType := uploadBody(t, "", nil, true)
	resp, err := client.Post(srv.URL+"/upload", contentType, buf)
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Contains(t, body, "Choose a file to analyze first.")
}

func TestUploadUnsupportedFormat(t *testing.T) {
	srv, client := newTestServer(t)

	buf, contentType := uploadBody(t, "data.parquet", []byte("x"), true)
	resp, err := client.Post(srv.URL+"/upload", contentType, buf)
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Contains(t, body, "expected csv, xls or xlsx")
}

func TestAnalysesGateWithoutDataset(t *testing.T) {
	srv, client := newTestServer(t)

	for _, path := range []string{"/overview", "/missingness", "/profile", "/distribution"} {
		resp, err := client.Get(srv.URL + path)
		require.NoError(t, err)
		body := readBody(t, resp)
		assert.Contains(t, body, "No dataset loaded yet.", "path %s should gate", path)
	}
}

func TestMissingnessPageAndPlot(t *testing.T) {
	srv, client := newTestServer(t)

	buf, contentType := uploadBody(t, "mini.csv", []byte(testkit.MiniCSV), true)
	_, err := client.Post(srv.URL+"/upload", contentType, buf)
	require.NoError(t, err)

	resp, err := client.Get(srv.URL + "/missingness")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Missing")

	png, err := client.Get(srv.URL + "/missingness/plot.png")
	require.NoError(t, err)
	pngBody := readBody(t, png)
	assert.Equal(t, http.StatusOK, png.StatusCode)
	assert.Equal(t, "image/png", png.Header.Get("Content-Type"))
	assert.True(t, len(pngBody) > 0)
}

func TestMissingnessPlotSubstituteMessage(t *testing.T) {
	srv, client := newTestServer(t)

	buf, contentType := uploadBody(t, "full.csv", []byte("a,b\n1,x\n2,y\n"), true)
	_, err := client.Post(srv.URL+"/upload", contentType, buf)
	require.NoError(t, err)

	resp, err := client.Get(srv.URL + "/missingness/plot")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Contains(t, body, "No missing values found")
}

func TestDistributionPlotPNG(t *testing.T) {
	srv, client := newTestServer(t)

	buf, contentType := uploadBody(t, "mini.csv", []byte(testkit.MiniCSV), true)
	_, err := client.Post(srv.URL+"/upload", contentType, buf)
	require.NoError(t, err)

	resp, err := client.Get(srv.URL + "/distribution/plot.png?column=a")
	require.NoError(t, err)
	readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	missing, err := client.Get(srv.URL + "/distribution/plot.png?column=nope")
	require.NoError(t, err)
	readBody(t, missing)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestSheetSelectionFlow(t *testing.T) {
	srv, client := newTestServer(t)

	book, err := testkit.WorkbookBytes(map[string][][]interface{}{
		"people": {{"name", "age"}, {"ada", 36}, {"carl", 41}},
		"notes":  {{"text"}, {"hello"}},
	})
	require.NoError(t, err)

	buf, contentType := uploadBody(t, "book.xlsx", book, true)
	resp, err := client.Post(srv.URL+"/upload", contentType, buf)
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Contains(t, body, "people")
	assert.Contains(t, body, "notes")

	resp, err = client.PostForm(srv.URL+"/sheet", map[string][]string{"sheet_name": {"people"}})
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Equal(t, "/overview", resp.Request.URL.Path)
	assert.Contains(t, body, "age")
}

func TestResetClearsDataset(t *testing.T) {
	srv, client := newTestServer(t)

	buf, contentType := uploadBody(t, "mini.csv", []byte(testkit.MiniCSV), true)
	_, err := client.Post(srv.URL+"/upload", contentType, buf)
	require.NoError(t, err)

	_, err = client.PostForm(srv.URL+"/reset", nil)
	require.NoError(t, err)

	resp, err := client.Get(srv.URL + "/overview")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Contains(t, body, "No dataset loaded yet.")
}
