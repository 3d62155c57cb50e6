package result

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/examly-api/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, f *fixture) http.Handler {
	t.Helper()
	auth.Init("result-handler-test-secret")

	r := chi.NewRouter()
	r.Use(auth.AuthMiddleware)
	r.Mount("/results", Routes(NewHandler(f.svc)))
	return r
}

func bearer(t *testing.T, id string, role auth.Role) string {
	t.Helper()
	token, err := auth.GenerateJWT(id, string(role), time.Minute)
	require.NoError(t, err)
	return "Bearer " + token
}

func do(router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestResultRoutes(t *testing.T) {
	f := newFixture(t)
	router := newTestRouter(t, f)

	alice := bearer(t, aliceID.String(), auth.RoleStudent)
	admin := bearer(t, adminID.String(), auth.RoleAdmin)
	body := `{"exam_id":"` + f.exam.ID.String() + `","answers":[0,1,2,null]}`

	t.Run("Unauthenticated", func(t *testing.T) {
		rec := do(router, http.MethodPost, "/results/submit", "", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("AdminCannotSubmit", func(t *testing.T) {
		rec := do(router, http.MethodPost, "/results/submit", admin, body)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		rec := do(router, http.MethodPost, "/results/submit", alice, `{"answers":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"message":"invalid request body"}`, rec.Body.String())
	})

	var created ResultResponse
	t.Run("Submit", func(t *testing.T) {
		rec := do(router, http.MethodPost, "/results/submit", alice, body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

		assert.Equal(t, 3, created.CorrectAnswers)
		assert.Equal(t, 60.0, created.Score)
		require.Len(t, created.Answers, 5)
		assert.Equal(t, Unanswered, created.Answers[3].SelectedOptionIndex)
		assert.Equal(t, Unanswered, created.Answers[4].SelectedOptionIndex)
	})

	t.Run("Resubmit", func(t *testing.T) {
		rec := do(router, http.MethodPost, "/results/submit", alice, body)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.JSONEq(t, `{"message":"you have already submitted this exam"}`, rec.Body.String())
	})

	t.Run("MyResults", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/results/my-results", alice, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var mine []ResultResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
		require.Len(t, mine, 1)
		assert.Equal(t, created.ID, mine[0].ID)
	})

	t.Run("StudentCannotListAll", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/results/all", alice, "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("AdminListsAll", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/results/all", admin, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("AdminListsByExam", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/results/exam/"+f.exam.ID.String(), admin, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var byExam []ResultResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &byExam))
		assert.Len(t, byExam, 1)
	})

	t.Run("ReadOwnByID", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/results/"+created.ID.String(), alice, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("ReadOthersByID", func(t *testing.T) {
		bob := bearer(t, bobID.String(), auth.RoleStudent)
		rec := do(router, http.MethodGet, "/results/"+created.ID.String(), bob, "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("UnknownID", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/results/"+adminID.String(), admin, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
