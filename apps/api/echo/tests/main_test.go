package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	echoapi "github.com/bouncebacklearning/backend/apps/api/echo"
	"github.com/bouncebacklearning/backend/assets"
	"github.com/bouncebacklearning/backend/core"
	"github.com/bouncebacklearning/backend/core/admin"
	"github.com/bouncebacklearning/backend/core/feedback"
	"github.com/bouncebacklearning/backend/core/paper"
	"github.com/bouncebacklearning/backend/core/video"
	emailsvc "github.com/bouncebacklearning/backend/services/email"
	logsvc "github.com/bouncebacklearning/backend/services/logger"
	inmemdb "github.com/bouncebacklearning/backend/storage/database/inmem"
	"github.com/bouncebacklearning/backend/storage/files/localstore"
	testutil "github.com/bouncebacklearning/backend/tests"
)

var (
	logger core.Logger

	errUnauthorized = httpErr{Error: "admin authentication required"}
	errNotFound     = httpErr{Error: "not found"}
)

func TestMain(m *testing.M) {
	conf := testutil.NewConfig(os.TempDir())
	logger = logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	core.ParseEmailTemplates(assets.FS, logger)

	os.Exit(m.Run())
}

// testEnv is a server over a fresh store.
type testEnv struct {
	app       *echoapi.Server
	papers    paper.Repository
	videos    video.Repository
	feedback  feedback.Repository
	files     *localstore.Store
	mailer    *emailsvc.ConsoleServiceMock
	uploadDir string
}

func setup(t *testing.T, opts ...func(*core.Config)) *testEnv {
	t.Helper()
	conf := testutil.NewConfig(t.TempDir())
	for _, opt := range opts {
		opt(conf)
	}
	validate, translator := testutil.NewValidator()

	db := inmemdb.Open()
	env := &testEnv{
		papers:    inmemdb.NewPaperRepository(db),
		videos:    inmemdb.NewVideoRepository(db),
		feedback:  inmemdb.NewFeedbackRepository(db),
		mailer:    emailsvc.NewConsoleServiceMock(conf, logger),
		uploadDir: conf.Upload.Dir,
	}

	files, err := localstore.New(conf.Upload.Dir)
	if err != nil {
		t.Fatalf("localstore.New() failed: %v", err)
	}
	env.files = files

	paperSvc := paper.NewService(env.papers)
	videoSvc := video.NewService(env.videos)
	feedbackSvc := feedback.NewService(env.feedback, env.mailer, conf.FeedbackNotifyEmail)
	adminSvc := admin.NewService(
		inmemdb.NewSessionRepository(db),
		admin.NewStaticAuthenticator(conf.Admin.Username, conf.Admin.Password),
		admin.Sources{Papers: paperSvc, Videos: videoSvc, Feedback: feedbackSvc},
	)

	env.app = echoapi.NewServer(echoapi.ServerDeps{
		Conf:        conf,
		Logger:      logger,
		PaperSvc:    paperSvc,
		VideoSvc:    videoSvc,
		FeedbackSvc: feedbackSvc,
		AdminSvc:    adminSvc,
		Files:       files,
		Validate:    validate,
		Translator:  translator,
	})
	return env
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	cookies  []*http.Cookie
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path string, cookies []*http.Cookie, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, nil, data...)
}

// login signs in as the default admin and returns the session cookies.
func login(t *testing.T, app http.Handler) []*http.Cookie {
	t.Helper()
	req, rec := newRequest(http.MethodPost, "/api/admin/login", []byte(`{"username":"admin","password":"admin123"}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login() failed: %d %s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("login() returned no session cookie")
	}
	return cookies
}

type upload struct {
	fields   map[string]string
	filename string
	content  []byte
}

func newUploadRequest(t *testing.T, up upload, cookies []*http.Cookie) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range up.fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("WriteField() failed: %v", err)
		}
	}
	if up.filename != "" {
		fw, err := w.CreateFormFile("file", up.filename)
		if err != nil {
			t.Fatalf("CreateFormFile() failed: %v", err)
		}
		_, _ = fw.Write(up.content)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("multipart.Close() failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/upload-paper", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req, httptest.NewRecorder()
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app http.Handler, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.cookies, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestHome(t *testing.T) {
	env := setup(t)
	req, rec := newRequest(http.MethodGet, "/")
	env.app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "BounceBack Learning")
}
