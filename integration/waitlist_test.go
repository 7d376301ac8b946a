package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/launchlist/waitlist-api/config"
	"github.com/launchlist/waitlist-api/config/router"
	"github.com/launchlist/waitlist-api/domain"
	"github.com/launchlist/waitlist-api/internal/log"
	"github.com/launchlist/waitlist-api/internal/models"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type WaitlistAPITestSuite struct {
	suite.Suite
	db        *gorm.DB
	server    *httptest.Server
	baseURL   string
	logger    *log.Logger
	appConfig *config.ApplicationConfig
}

func (suite *WaitlistAPITestSuite) SetupSuite() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(models.ModelRegistry...)
	suite.Require().NoError(err)

	suite.logger = log.NewLoggerWithJSONOutput()

	suite.appConfig = &config.ApplicationConfig{
		DB:     suite.db,
		Logger: suite.logger,
	}

	suite.appConfig.RouterService = router.CreateRouterService(suite.logger, nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    30 * time.Second,
	})

	domain.SetupCoreDomain(suite.appConfig)

	suite.server = httptest.NewServer(suite.appConfig.RouterService.GetEngine())
	suite.baseURL = suite.server.URL
}

func (suite *WaitlistAPITestSuite) TearDownSuite() {
	if suite.server != nil {
		suite.server.Close()
	}
	if suite.db != nil {
		sqlDB, _ := suite.db.DB()
		sqlDB.Close()
	}
}

func (suite *WaitlistAPITestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM waitlist_registrations")
}

func (suite *WaitlistAPITestSuite) postSignup(body map[string]string) (*http.Response, map[string]interface{}) {
	jsonBody, err := json.Marshal(body)
	suite.Require().NoError(err)

	resp, err := http.Post(suite.baseURL+"/api/waitlist", "application/json", bytes.NewBuffer(jsonBody))
	suite.Require().NoError(err)
	defer resp.Body.Close()

	var response map[string]interface{}
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&response))

	return resp, response
}

func (suite *WaitlistAPITestSuite) getCount() int64 {
	resp, err := http.Get(suite.baseURL + "/api/waitlist/count")
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Require().Equal(http.StatusOK, resp.StatusCode)

	var response map[string]interface{}
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&response))

	count, ok := response["count"].(float64)
	suite.Require().True(ok, "count response must carry a numeric count: %v", response)

	return int64(count)
}

func (suite *WaitlistAPITestSuite) TestHealthCheck() {
	resp, err := http.Get(suite.baseURL + "/health")
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)

	var response map[string]interface{}
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&response))

	suite.Contains(response["message"], "Health check completed")

	status := response["status"].(map[string]interface{})
	suite.Contains(status, "database")
	suite.Contains(status, "uptime")

	suite.Equal(float64(1), status["database"])
}

func (suite *WaitlistAPITestSuite) TestRegister() {
	resp, response := suite.postSignup(map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
	})

	suite.Equal(http.StatusCreated, resp.StatusCode)
	suite.Contains(response["message"], "registered for the waitlist")

	registration := response["registration"].(map[string]interface{})
	suite.Equal("ada@example.com", registration["email"])
	suite.Equal("Ada", registration["firstName"])
	suite.Equal("Lovelace", registration["lastName"])
	suite.NotEmpty(registration["id"])
	suite.NotContains(registration, "createdAt")
}

func (suite *WaitlistAPITestSuite) TestRegisterIncrementsCount() {
	suite.Equal(int64(0), suite.getCount())

	resp, _ := suite.postSignup(map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
	})
	suite.Equal(http.StatusCreated, resp.StatusCode)

	suite.Equal(int64(1), suite.getCount())
}

func (suite *WaitlistAPITestSuite) TestRegisterValidationError() {
	resp, response := suite.postSignup(map[string]string{
		"firstName": "",
		"lastName":  "Doe",
		"email":     "invalid-email",
	})

	suite.Equal(http.StatusBadRequest, resp.StatusCode)
	suite.Contains(response["message"], "Invalid request payload")

	fieldErrors := response["errors"].([]interface{})
	suite.True(len(fieldErrors) > 0)

	foundEmailError := false
	foundFirstNameError := false
	for _, item := range fieldErrors {
		fieldError := item.(map[string]interface{})
		field := fieldError["field"].(string)
		message := fieldError["message"].(string)

		if field == "email" {
			foundEmailError = true
			suite.Contains(message, "Invalid email format")
		}
		if field == "firstName" {
			foundFirstNameError = true
			suite.Contains(message, "required")
		}
	}

	suite.True(foundEmailError, "Should have email validation error")
	suite.True(foundFirstNameError, "Should have firstName validation error")

	suite.Equal(int64(0), suite.getCount())
}

func (suite *WaitlistAPITestSuite) TestRegisterWhitespaceOnlyFields() {
	resp, response := suite.postSignup(map[string]string{
		"firstName": "   ",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
	})

	suite.Equal(http.StatusBadRequest, resp.StatusCode)
	suite.Contains(response["message"], "Invalid request payload")

	fieldErrors, ok := response["errors"].([]interface{})
	suite.Require().True(ok, "400 body must carry an errors array: %v", response)
	suite.Require().Len(fieldErrors, 1)

	fieldError := fieldErrors[0].(map[string]interface{})
	suite.Equal("firstName", fieldError["field"])
	suite.Contains(fieldError["message"], "required")

	suite.Equal(int64(0), suite.getCount())
}

func (suite *WaitlistAPITestSuite) TestDuplicateEmailConflict() {
	resp, _ := suite.postSignup(map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
	})
	suite.Equal(http.StatusCreated, resp.StatusCode)

	// Different names, same email: still a conflict.
	resp, response := suite.postSignup(map[string]string{
		"firstName": "Grace",
		"lastName":  "Hopper",
		"email":     "ada@example.com",
	})

	suite.Equal(http.StatusConflict, resp.StatusCode)
	suite.Equal("This email is already registered for the waitlist", response["message"])
	suite.NotContains(response, "registration")

	suite.Equal(int64(1), suite.getCount())
}

func (suite *WaitlistAPITestSuite) TestDuplicateEmailCaseInsensitive() {
	resp, _ := suite.postSignup(map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
	})
	suite.Equal(http.StatusCreated, resp.StatusCode)

	resp, response := suite.postSignup(map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ADA@Example.com",
	})

	suite.Equal(http.StatusConflict, resp.StatusCode)
	suite.Equal("This email is already registered for the waitlist", response["message"])
}

func (suite *WaitlistAPITestSuite) TestCountOnEmptyStoreIsZero() {
	suite.Equal(int64(0), suite.getCount())
}

func (suite *WaitlistAPITestSuite) TestMalformedBody() {
	resp, err := http.Post(suite.baseURL+"/api/waitlist", "application/json", bytes.NewBufferString("{not json"))
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestWaitlistAPISuite(t *testing.T) {
	// Skip integration tests unless explicitly requested
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration tests. Set RUN_INTEGRATION_TESTS=true to run them")
	}

	suite.Run(t, new(WaitlistAPITestSuite))
}
