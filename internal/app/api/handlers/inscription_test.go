package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/olharfest/inscricao-backend/internal/app/service/inscription"
	"github.com/olharfest/inscricao-backend/internal/models"
	"github.com/olharfest/inscricao-backend/pkg/auth"
	"github.com/olharfest/inscricao-backend/pkg/response"
)

type stubRegistry struct {
	createID  string
	createErr error
	getInsc   *models.Inscription
	getErr    error
}

func (s *stubRegistry) Create(_ context.Context, _ *auth.Identity, _ *inscription.CreateRequest) (string, error) {
	return s.createID, s.createErr
}

func (s *stubRegistry) Get(_ context.Context, _ string) (*models.Inscription, error) {
	return s.getInsc, s.getErr
}

func newInscriptionRouter(reg inscription.Registry) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterInscriptionRoutes(r, reg)
	return r
}

type envelope struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    json.RawMessage          `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestApiCreateInscription_OK(t *testing.T) {
	r := newInscriptionRouter(&stubRegistry{createID: "insc-1"})

	body := `{"userEmail":"a@x.com","userName":"Ana","tipo":"fotografo","experiencia":"x","portfolio":"https://p.example.com","telefone":"+55"}`
	req := httptest.NewRequest(http.MethodPost, "/inscriptions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	require.Equal(t, response.APIResponseCodeOK, env.Code)
	require.JSONEq(t, `{"success":true,"inscriptionId":"insc-1"}`, string(env.Data))
}

func TestApiCreateInscription_ErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want response.APIResponseCode
	}{
		{name: "unauthenticated", err: inscription.ErrUnauthenticated, want: response.APIResponseCodeUnauthenticated},
		{name: "invalid", err: inscription.ErrInvalidArgument, want: response.APIResponseCodeBadRequest},
		{name: "duplicate", err: inscription.ErrAlreadyExists, want: response.APIResponseCodeAlreadyExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newInscriptionRouter(&stubRegistry{createErr: tt.err})

			req := httptest.NewRequest(http.MethodPost, "/inscriptions", strings.NewReader(`{}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, tt.want, decodeEnvelope(t, w).Code)
		})
	}
}

func TestApiGetInscription(t *testing.T) {
	r := newInscriptionRouter(&stubRegistry{getInsc: &models.Inscription{ID: "insc-1", UserEmail: "a@x.com"}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/inscriptions/insc-1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	require.Equal(t, response.APIResponseCodeOK, env.Code)
	require.Contains(t, string(env.Data), `"a@x.com"`)
}

func TestApiGetInscription_NotFound(t *testing.T) {
	r := newInscriptionRouter(&stubRegistry{getErr: inscription.ErrNotFound})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/inscriptions/missing", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, response.APIResponseCodeNotFound, decodeEnvelope(t, w).Code)
}
