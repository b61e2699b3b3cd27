package alpha

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAlpha struct {
	page       string
	pods       map[string]string
	recalc     string
	robots     string
	pageStatus int

	pageHits atomic.Int32
	lastUA   atomic.Value
	lastMode atomic.Value
}

func (f *fakeAlpha) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/robots.txt":
		if f.robots == "" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, f.robots)
	case "/input/":
		f.pageHits.Add(1)
		f.lastUA.Store(r.Header.Get("User-Agent"))
		f.lastMode.Store(r.URL.Query().Get("asynchronous"))
		if f.pageStatus != 0 {
			w.WriteHeader(f.pageStatus)
			return
		}
		fmt.Fprint(w, f.page)
	case "/input/recalculate.jsp":
		fmt.Fprint(w, f.recalc)
	case "/input/pod.jsp":
		body, ok := f.pods[r.URL.Query().Get("id")]
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, body)
	default:
		http.NotFound(w, r)
	}
}

func newFakeAlpha(t *testing.T) *fakeAlpha {
	t.Helper()

	page, err := os.ReadFile("testdata/result.html")
	require.NoError(t, err)

	return &fakeAlpha{
		page:   string(page),
		recalc: `loadPod('pod.jsp?id=MSP2'); loadPod('pod.jsp?id=BROKEN');`,
		pods: map[string]string{
			"MSP1": `<div class="pod"><h2>Result:</h2><img alt="A | B\n1 | 2"></div>`,
			"MSP2": `<div class="pod"><h2>Notes:</h2><img alt="(approximate)\nsome text\n\nsecond"></div>`,
		},
	}
}

func startServer(t *testing.T, h http.Handler) string {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return srv.URL + "/input/"
}

func TestQuery_AllPods(t *testing.T) {
	t.Parallel()

	fake := newFakeAlpha(t)
	client := New(WithBaseURL(startServer(t, fake)), WithHeaders(map[string]string{"User-Agent": "walpha-test"}))

	result, err := client.Query(t.Context(), " ibm apl ")
	require.NoError(t, err)

	assert.Equal(t, "ibm apl", result.Query)
	assert.Equal(t, "walpha-test", fake.lastUA.Load())
	assert.Equal(t, "pod", fake.lastMode.Load())

	require.Len(t, result.Pods, 3)

	assert.Equal(t, "Input interpretation", result.Pods[0].Title)
	assert.Equal(t, "IBM | APL", result.Pods[0].Text)

	assert.Equal(t, "Result", result.Pods[1].Title)
	assert.Equal(t, `A | B\n1 | 2`, result.Pods[1].Raw)
	assert.Equal(t, strings.Join([]string{
		"┌───┬───┐",
		"│ A │ B │",
		"│ 1 │ 2 │",
		"└───┴───┘",
	}, "\n"), result.Pods[1].Text)

	assert.Equal(t, "Notes", result.Pods[2].Title)
	assert.Equal(t, "some text\nsecond", result.Pods[2].Text)
}

func TestQuery_FirstPageOnly(t *testing.T) {
	t.Parallel()

	fake := newFakeAlpha(t)
	client := New(WithBaseURL(startServer(t, fake)), WithAllPods(false))

	result, err := client.Query(t.Context(), "ibm apl")
	require.NoError(t, err)

	assert.Equal(t, "false", fake.lastMode.Load())
	require.Len(t, result.Pods, 1)
	assert.Equal(t, "Input interpretation", result.Pods[0].Title)
}

func TestQuery_RecalculateFailureIsIgnored(t *testing.T) {
	t.Parallel()

	fake := newFakeAlpha(t)
	fake.page = strings.Replace(fake.page, "recalculate.jsp?id=MSP9", "recalculate.jsp?id=MISSING", 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/input/recalculate.jsp", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	mux.Handle("/", fake)

	client := New(WithBaseURL(startServer(t, mux)))

	result, err := client.Query(t.Context(), "ibm apl")
	require.NoError(t, err)

	require.Len(t, result.Pods, 2)
	assert.Equal(t, "Result", result.Pods[1].Title)
}

func TestQuery_Cache(t *testing.T) {
	t.Parallel()

	fake := newFakeAlpha(t)
	client := New(WithBaseURL(startServer(t, fake)), WithAllPods(false), WithCache(time.Minute))

	first, err := client.Query(t.Context(), "ibm apl")
	require.NoError(t, err)
	second, err := client.Query(t.Context(), "ibm apl")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), fake.pageHits.Load())
}

func TestQuery_StatusError(t *testing.T) {
	t.Parallel()

	fake := newFakeAlpha(t)
	fake.pageStatus = http.StatusServiceUnavailable
	client := New(WithBaseURL(startServer(t, fake)))

	_, err := client.Query(t.Context(), "ibm apl")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
}

func TestQuery_EmptyQuery(t *testing.T) {
	t.Parallel()

	_, err := New().Query(t.Context(), "   ")
	require.ErrorIs(t, err, ErrEmptyQuery)
}

func TestQuery_RespectRobots(t *testing.T) {
	t.Parallel()

	fake := newFakeAlpha(t)
	fake.robots = "User-agent: *\nDisallow: /input/\n"
	client := New(WithBaseURL(startServer(t, fake)), WithRespectRobots(true))

	_, err := client.Query(t.Context(), "ibm apl")
	require.ErrorIs(t, err, ErrRobotsDisallowed)
	assert.Equal(t, int32(0), fake.pageHits.Load())
}

func TestQuery_RobotsMissingAllows(t *testing.T) {
	t.Parallel()

	fake := newFakeAlpha(t)
	client := New(WithBaseURL(startServer(t, fake)), WithRespectRobots(true), WithAllPods(false))

	result, err := client.Query(t.Context(), "ibm apl")
	require.NoError(t, err)
	assert.Len(t, result.Pods, 1)
}

func TestReferences_Deduplicates(t *testing.T) {
	t.Parallel()

	refs := references(`'pod.jsp?id=a' 'POD.JSP?id=b' 'pod.jsp?id=a'`)

	assert.Equal(t, []string{"pod.jsp?id=a", "POD.JSP?id=b"}, refs)
}
