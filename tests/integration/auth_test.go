//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthTestSuite struct {
	suite.Suite
	client    *http.Client
	userEmail string
	userToken string
}

func (suite *AuthTestSuite) SetupSuite() {
	suite.client = &http.Client{Timeout: 30 * time.Second}
	suite.userEmail = fmt.Sprintf("test-%d-%d@example.com", time.Now().Unix(), time.Now().UnixNano())

	// Create user for login tests
	suite.createTestUser()
	suite.loginTestUser()
}

func (suite *AuthTestSuite) createTestUser() {
	signupData := map[string]string{
		"name":     "Integration Tester",
		"email":    suite.userEmail,
		"password": "testpassword123",
	}
	jsonData, _ := json.Marshal(signupData)
	resp, err := suite.client.Post(
		APIBaseURL+"/signup",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	require.NoError(suite.T(), err)
	defer resp.Body.Close()
	require.Equal(suite.T(), http.StatusCreated, resp.StatusCode)
}

func (suite *AuthTestSuite) loginTestUser() {
	loginData := map[string]string{
		"email":    suite.userEmail,
		"password": "testpassword123",
	}
	jsonData, _ := json.Marshal(loginData)
	resp, err := suite.client.Post(
		APIBaseURL+"/login",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	require.NoError(suite.T(), err)
	defer resp.Body.Close()
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	env, err := decodeEnvelope(resp)
	require.NoError(suite.T(), err)
	require.True(suite.T(), env.Success)

	var loginResp struct {
		Token string `json:"token"`
	}
	require.NoError(suite.T(), json.Unmarshal(env.Data, &loginResp))
	suite.userToken = loginResp.Token
}

func (suite *AuthTestSuite) TestUserSignup() {
	// Create a different user for this test since main user is created in setup
	testEmail := fmt.Sprintf("signup-test-%d-%d@example.com", time.Now().Unix(), time.Now().UnixNano())

	signupData := map[string]string{
		"name":     "Signup Tester",
		"email":    testEmail,
		"password": "testpassword123",
	}

	jsonData, _ := json.Marshal(signupData)
	resp, err := suite.client.Post(
		APIBaseURL+"/signup",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	require.NoError(suite.T(), err)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusCreated, resp.StatusCode)

	env, err := decodeEnvelope(resp)
	require.NoError(suite.T(), err)
	require.True(suite.T(), env.Success)

	var user map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(env.Data, &user))

	assert.Equal(suite.T(), testEmail, user["email"])
	assert.Equal(suite.T(), "user", user["role"])
	assert.NotEmpty(suite.T(), user["id"])
	assert.NotEmpty(suite.T(), user["created_at"])
}

func (suite *AuthTestSuite) TestSignup_DuplicateEmail() {
	signupData := map[string]string{
		"name":     "Duplicate",
		"email":    suite.userEmail,
		"password": "testpassword123",
	}
	jsonData, _ := json.Marshal(signupData)
	resp, err := suite.client.Post(
		APIBaseURL+"/signup",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	require.NoError(suite.T(), err)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusConflict, resp.StatusCode)

	env, err := decodeEnvelope(resp)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), env.Success)
	assert.Equal(suite.T(), "CONFLICT", env.Error.Code)
}

func (suite *AuthTestSuite) TestLogin_SetsAuthCookie() {
	loginData := map[string]string{
		"email":    suite.userEmail,
		"password": "testpassword123",
	}
	jsonData, _ := json.Marshal(loginData)
	resp, err := suite.client.Post(
		APIBaseURL+"/login",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	require.NoError(suite.T(), err)
	defer resp.Body.Close()
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	var authCookie *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "auth_token" {
			authCookie = cookie
		}
	}
	require.NotNil(suite.T(), authCookie, "login must set the auth cookie")
	assert.NotEmpty(suite.T(), authCookie.Value)
	assert.True(suite.T(), authCookie.HttpOnly)
}

func (suite *AuthTestSuite) TestLogin_InvalidCredentials() {
	loginData := map[string]string{
		"email":    suite.userEmail,
		"password": "wrongpassword",
	}
	jsonData, _ := json.Marshal(loginData)
	resp, err := suite.client.Post(
		APIBaseURL+"/login",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	require.NoError(suite.T(), err)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusUnauthorized, resp.StatusCode)
}

func (suite *AuthTestSuite) TestGetMe_WithBearerToken() {
	req, _ := http.NewRequest("GET", APIBaseURL+"/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+suite.userToken)

	resp, err := suite.client.Do(req)
	require.NoError(suite.T(), err)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	env, err := decodeEnvelope(resp)
	require.NoError(suite.T(), err)
	require.True(suite.T(), env.Success)

	var user map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(env.Data, &user))
	assert.Equal(suite.T(), suite.userEmail, user["email"])
}

func (suite *AuthTestSuite) TestGetMe_WithAuthCookie() {
	req, _ := http.NewRequest("GET", APIBaseURL+"/users/me", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: suite.userToken})

	resp, err := suite.client.Do(req)
	require.NoError(suite.T(), err)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
}

func (suite *AuthTestSuite) TestGetMe_Unauthenticated() {
	resp, err := suite.client.Get(APIBaseURL + "/users/me")
	require.NoError(suite.T(), err)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusUnauthorized, resp.StatusCode)
}

func (suite *AuthTestSuite) TestLogout_ClearsCookie() {
	resp, err := suite.client.Post(APIBaseURL+"/logout", "application/json", nil)
	require.NoError(suite.T(), err)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "auth_token" {
			assert.Empty(suite.T(), cookie.Value)
			assert.True(suite.T(), cookie.MaxAge < 0)
		}
	}
}
