package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai_content_generator/agent"
	"ai_content_generator/schema"
	"ai_content_generator/storage"
	"ai_content_generator/workflow"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := storage.NewImageStore(t.TempDir())
	require.NoError(t, err)

	research, err := agent.NewResearchAgent(agent.MockLLM{})
	require.NoError(t, err)
	content, err := agent.NewContentAgent(agent.MockLLM{})
	require.NoError(t, err)
	image, err := agent.NewImageAgent(agent.MockLLM{}, agent.MockImage{}, store)
	require.NoError(t, err)

	graph, err := workflow.New(research, content, image, nil)
	require.NoError(t, err)

	srv, err := New(graph, "")
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func postGeneration(t *testing.T, ts *httptest.Server, topic, platform, tone string) (*http.Response, generationResp) {
	t.Helper()
	body, err := json.Marshal(generateReq{Topic: topic, Platform: platform, Tone: tone})
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/api/generations", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var gen generationResp
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&gen))
	}
	return resp, gen
}

func TestGenerateTwitter(t *testing.T) {
	ts := newTestServer(t)

	resp, gen := postGeneration(t, ts, "renewable energy", "twitter", "casual")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.NotEmpty(t, gen.ID)
	assert.Equal(t, string(workflow.PhaseEnd), gen.Phase)
	require.NotNil(t, gen.Research)
	assert.GreaterOrEqual(t, len(gen.Research.BulletPoints), schema.MinBulletPoints)
	require.NotNil(t, gen.Content)
	assert.LessOrEqual(t, utf8.RuneCountInString(gen.Content.Content), schema.TwitterMaxChars)
	assert.Empty(t, gen.ContentHTML)
	require.NotNil(t, gen.Image)
	assert.Equal(t, "/api/generations/"+gen.ID+"/image", gen.Image.URL)
}

func TestGenerateMediumRendersHTML(t *testing.T) {
	ts := newTestServer(t)

	resp, gen := postGeneration(t, ts, "ai ethics", "medium", "professional")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, gen.Content)
	assert.NotEmpty(t, gen.Content.Title)
	assert.Contains(t, gen.ContentHTML, "<p>")
}

func TestGenerateBadPlatform(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := postGeneration(t, ts, "ai", "myspace", "casual")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerateEmptyTopic(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := postGeneration(t, ts, "", "twitter", "casual")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetGenerationAndImage(t *testing.T) {
	ts := newTestServer(t)

	resp, gen := postGeneration(t, ts, "ai", "linkedin", "informative")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	getResp, err := http.Get(fmt.Sprintf("%s/api/generations/%s", ts.URL, gen.ID))
	require.NoError(t, err)
	defer getResp.Body.Close()
	assert.Equal(t, http.StatusOK, getResp.StatusCode)

	imgResp, err := http.Get(fmt.Sprintf("%s/api/generations/%s/image", ts.URL, gen.ID))
	require.NoError(t, err)
	defer imgResp.Body.Close()
	assert.Equal(t, http.StatusOK, imgResp.StatusCode)
	assert.Equal(t, "image/png", imgResp.Header.Get("Content-Type"))
}

func TestGetUnknownGeneration(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/generations/no-such-id")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMeta(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/meta")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var meta metaResp
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&meta))
	assert.Len(t, meta.Platforms, 3)
	assert.Len(t, meta.Tones, 5)
}

func TestPublishWithoutToken(t *testing.T) {
	ts := newTestServer(t)

	_, gen := postGeneration(t, ts, "ai", "twitter", "casual")

	resp, err := http.Post(fmt.Sprintf("%s/api/generations/%s/publish", ts.URL, gen.ID), "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestIndexServed(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}
