package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/bouncebacklearning/backend/apps/api/echo"
	testutil "github.com/bouncebacklearning/backend/tests"
)

func Test_feedbackApi_create(t *testing.T) {
	env := setup(t)

	runHTTPTests(t, env.app, []httpTest{
		{
			name:     "invalid",
			method:   http.MethodPost,
			path:     "/api/submit-feedback",
			body:     []byte(`{"name":"  ","email":"not-an-email","message":"hi"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"name":  "this field is required",
				"email": "email must be a valid email address",
			}),
		},
		{
			name:     "missing message",
			method:   http.MethodPost,
			path:     "/api/submit-feedback",
			body:     []byte(`{"name":"Asha","email":"asha@example.com"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"message": "this field is required"}),
		},
	})
	assert.Empty(t, env.mailer.SentMessages())

	body := []byte(`{"name":"Asha","email":" Asha@Example.com ","subject":"Papers","message":"More class 12 papers please","newsletter":true}`)
	req, rec := newRequest(http.MethodPost, "/api/submit-feedback", body)
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp echoapi.FeedbackResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Feedback submitted successfully", resp.Message)
	assert.Equal(t, 1, resp.Feedback.ID)
	assert.Equal(t, "asha@example.com", resp.Feedback.Email)
	assert.True(t, resp.Feedback.Newsletter)

	sent := env.mailer.SentMessages()
	require.Len(t, sent, 1)
	msg := sent[0]
	require.Len(t, msg.To, 1)
	assert.Equal(t, "staff@test.local", msg.To[0].Address)
	assert.Equal(t, "New feedback from Asha: Papers", msg.Subject)
	assert.Contains(t, msg.TextContent, "More class 12 papers please")
	assert.Contains(t, msg.TextContent, "Newsletter: yes")
	assert.Contains(t, msg.HTMLContent, "Asha")
}

func Test_feedbackApi_query(t *testing.T) {
	env := setup(t)
	cookies := login(t, env.app)
	now := time.Now().UTC()
	first := testutil.CreateFeedback(t, env.feedback, "Asha", "asha@example.com", "first", now.Add(-time.Minute))
	second := testutil.CreateFeedback(t, env.feedback, "Ben", "ben@example.com", "second", now)

	runHTTPTests(t, env.app, []httpTest{
		{
			name:     "unauthenticated",
			method:   http.MethodGet,
			path:     "/api/feedback",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errUnauthorized),
		},
		{
			name:     "newest first",
			method:   http.MethodGet,
			path:     "/api/feedback",
			cookies:  cookies,
			wantCode: http.StatusOK,
			wantData: marchallList(t, second, first),
		},
	})
}

func Test_feedbackApi_destroy(t *testing.T) {
	env := setup(t)
	cookies := login(t, env.app)
	testutil.CreateFeedback(t, env.feedback, "Asha", "asha@example.com", "hello")

	runHTTPTests(t, env.app, []httpTest{
		{
			name:     "unauthenticated",
			method:   http.MethodDelete,
			path:     "/api/feedback/1",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errUnauthorized),
		},
		{
			name:     "deleted",
			method:   http.MethodDelete,
			path:     "/api/feedback/1",
			cookies:  cookies,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, map[string]string{"message": "Feedback deleted successfully"}),
		},
		{
			name:     "already deleted",
			method:   http.MethodDelete,
			path:     "/api/feedback/1",
			cookies:  cookies,
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "feedback not found"}),
		},
		{
			name:     "empty list",
			method:   http.MethodGet,
			path:     "/api/feedback",
			cookies:  cookies,
			wantCode: http.StatusOK,
			wantData: marchallList(t),
		},
	})
}
