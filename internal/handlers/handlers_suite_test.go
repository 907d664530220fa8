package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"time"

	portssvc "github.com/SscSPs/ledger_books_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_books_app/internal/handlers"
	"github.com/SscSPs/ledger_books_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// apiSuite wires the real routes and auth middleware to mock services.
type apiSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	mockJournalService *MockJournalService
	mockCompanyService *MockCompanyService
	mockMetricsService *MockMetricsService
	jwtSecret          string
	userID             string
	companyID          string
}

func (s *apiSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.jwtSecret = "test-secret-key-that-is-long-enough"
	s.userID = uuid.NewString()
	s.companyID = uuid.NewString()

	s.mockAccountService = new(MockAccountService)
	s.mockJournalService = new(MockJournalService)
	s.mockCompanyService = new(MockCompanyService)
	s.mockMetricsService = new(MockMetricsService)

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, &config.Config{JWTSecret: s.jwtSecret, IsProduction: true}, &portssvc.ServiceContainer{
		Account: s.mockAccountService,
		Journal: s.mockJournalService,
		Company: s.mockCompanyService,
		Metrics: s.mockMetricsService,
	})
}

func (s *apiSuite) TearDownTest() {
	s.mockAccountService.AssertExpectations(s.T())
	s.mockJournalService.AssertExpectations(s.T())
	s.mockCompanyService.AssertExpectations(s.T())
	s.mockMetricsService.AssertExpectations(s.T())
}

// generateTestToken creates a signed JWT for userID.
func (s *apiSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "ledger-books-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		s.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

// do sends an authenticated request. body may be nil, a string or a value to marshal.
func (s *apiSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+s.generateTestToken(s.userID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *apiSuite) companyPath(suffix string) string {
	return "/api/v1/companies/" + s.companyID + suffix
}

// errorBody is the shape of every error response.
type errorBody struct {
	Error  string `json:"error"`
	Fields []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"fields"`
}

func (s *apiSuite) decodeError(w *httptest.ResponseRecorder) errorBody {
	var body errorBody
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (b errorBody) fieldNames() []string {
	names := make([]string, len(b.Fields))
	for i, f := range b.Fields {
		names[i] = f.Field
	}
	return names
}
