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

type MovieTestSuite struct {
	suite.Suite
	client     *http.Client
	ownerToken string
	otherToken string
}

func (suite *MovieTestSuite) SetupSuite() {
	suite.client = &http.Client{Timeout: 30 * time.Second}
	suite.ownerToken = signUpAndLogin(suite.T(), suite.client, "movie-owner")
	suite.otherToken = signUpAndLogin(suite.T(), suite.client, "movie-other")
}

// signUpAndLogin registers a fresh user and returns its token
func signUpAndLogin(t require.TestingT, client *http.Client, prefix string) string {
	email := fmt.Sprintf("%s-%d-%d@example.com", prefix, time.Now().Unix(), time.Now().UnixNano())

	signupData := map[string]string{
		"name":     prefix,
		"email":    email,
		"password": "testpassword123",
	}
	jsonData, _ := json.Marshal(signupData)
	resp, err := client.Post(APIBaseURL+"/signup", "application/json", bytes.NewBuffer(jsonData))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	loginData := map[string]string{
		"email":    email,
		"password": "testpassword123",
	}
	jsonData, _ = json.Marshal(loginData)
	resp, err = client.Post(APIBaseURL+"/login", "application/json", bytes.NewBuffer(jsonData))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env, err := decodeEnvelope(resp)
	require.NoError(t, err)

	var loginResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &loginResp))
	return loginResp.Token
}

// doJSON sends an authenticated JSON request and returns the response
func doJSON(t require.TestingT, client *http.Client, method, url, token string, payload interface{}) *http.Response {
	var body *bytes.Buffer
	if payload != nil {
		jsonData, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonData)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func (suite *MovieTestSuite) createMovie(token, title string) map[string]interface{} {
	resp := doJSON(suite.T(), suite.client, "POST", APIBaseURL+"/movies", token, map[string]string{
		"title":        title,
		"release_date": "1999-03-31",
		"synopsis":     "Integration test fixture",
	})
	defer resp.Body.Close()
	require.Equal(suite.T(), http.StatusCreated, resp.StatusCode)

	env, err := decodeEnvelope(resp)
	require.NoError(suite.T(), err)
	require.True(suite.T(), env.Success)

	var movie map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(env.Data, &movie))
	return movie
}

func uniqueTitle(prefix string) string {
	return fmt.Sprintf("%s %d", prefix, time.Now().UnixNano())
}

func (suite *MovieTestSuite) TestCreateMovie() {
	title := uniqueTitle("The Matrix")
	movie := suite.createMovie(suite.ownerToken, title)

	assert.Equal(suite.T(), title, movie["title"])
	assert.Equal(suite.T(), "1999-03-31", movie["release_date"])
	assert.NotEmpty(suite.T(), movie["id"])
	assert.Zero(suite.T(), movie["review_count"])
	assert.Zero(suite.T(), movie["average_rating"])
}

func (suite *MovieTestSuite) TestCreateMovie_RequiresAuth() {
	resp := doJSON(suite.T(), suite.client, "POST", APIBaseURL+"/movies", "", map[string]string{
		"title":        uniqueTitle("No Auth"),
		"release_date": "2000-01-01",
	})
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusUnauthorized, resp.StatusCode)
}

func (suite *MovieTestSuite) TestCreateMovie_DuplicateTitle() {
	title := uniqueTitle("Duplicated")
	suite.createMovie(suite.ownerToken, title)

	resp := doJSON(suite.T(), suite.client, "POST", APIBaseURL+"/movies", suite.ownerToken, map[string]string{
		"title":        title,
		"release_date": "2000-01-01",
	})
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusConflict, resp.StatusCode)

	env, err := decodeEnvelope(resp)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "CONFLICT", env.Error.Code)
}

func (suite *MovieTestSuite) TestListMovies_WithFilters() {
	title := uniqueTitle("Filterable Epic")
	suite.createMovie(suite.ownerToken, title)

	resp := doJSON(suite.T(), suite.client, "GET",
		APIBaseURL+"/movies?q=filterable&sort=uploaded_desc&page=1&page_size=10",
		suite.ownerToken, nil)
	defer resp.Body.Close()

	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	env, err := decodeEnvelope(resp)
	require.NoError(suite.T(), err)
	require.True(suite.T(), env.Success)

	var list struct {
		Movies []map[string]interface{} `json:"movies"`
		Total  int64                    `json:"total"`
		Page   int                      `json:"page"`
		Limit  int                      `json:"limit"`
	}
	require.NoError(suite.T(), json.Unmarshal(env.Data, &list))

	assert.Equal(suite.T(), 1, list.Page)
	assert.Equal(suite.T(), 10, list.Limit)
	assert.GreaterOrEqual(suite.T(), list.Total, int64(1))

	found := false
	for _, m := range list.Movies {
		if m["title"] == title {
			found = true
		}
	}
	assert.True(suite.T(), found, "case-insensitive substring filter should match the fixture")
}

// listTitles runs a listing as the owner user and returns the page's titles
func (suite *MovieTestSuite) listTitles(query string) []string {
	resp := doJSON(suite.T(), suite.client, "GET", APIBaseURL+"/movies?"+query, suite.ownerToken, nil)
	defer resp.Body.Close()
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	env, err := decodeEnvelope(resp)
	require.NoError(suite.T(), err)

	var list struct {
		Movies []map[string]interface{} `json:"movies"`
	}
	require.NoError(suite.T(), json.Unmarshal(env.Data, &list))

	titles := make([]string, 0, len(list.Movies))
	for _, m := range list.Movies {
		titles = append(titles, m["title"].(string))
	}
	return titles
}

// min_stars is an inclusive floor on average_rating: a movie sitting exactly
// on the threshold is kept, one just below it is dropped.
func (suite *MovieTestSuite) TestListMovies_MinStarsBoundary() {
	marker := fmt.Sprintf("starfloor%d", time.Now().UnixNano())
	high := suite.createMovie(suite.ownerToken, marker+" High")
	low := suite.createMovie(suite.ownerToken, marker+" Low")

	for movieID, value := range map[string]int{
		high["id"].(string): 5,
		low["id"].(string):  4,
	} {
		resp := doJSON(suite.T(), suite.client, "PUT", APIBaseURL+"/movies/"+movieID+"/rating", suite.ownerToken, map[string]int{
			"value": value,
		})
		require.Equal(suite.T(), http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	titles := suite.listTitles("q=" + marker + "&min_stars=5")
	assert.Contains(suite.T(), titles, marker+" High", "a 5.0 average sits on the min_stars=5 floor and stays in")
	assert.NotContains(suite.T(), titles, marker+" Low")

	titles = suite.listTitles("q=" + marker + "&min_stars=4")
	assert.Contains(suite.T(), titles, marker+" High")
	assert.Contains(suite.T(), titles, marker+" Low")
}

// scope=mine keeps only movies the caller has reviewed; scope=not_mine is
// its exact complement.
func (suite *MovieTestSuite) TestListMovies_ReviewScopeMembership() {
	marker := fmt.Sprintf("scopemark%d", time.Now().UnixNano())
	reviewed := suite.createMovie(suite.ownerToken, marker+" Reviewed")
	suite.createMovie(suite.ownerToken, marker+" Untouched")

	resp := doJSON(suite.T(), suite.client, "POST", APIBaseURL+"/movies/"+reviewed["id"].(string)+"/reviews", suite.ownerToken, map[string]string{
		"content": "fixture review for scope filtering",
	})
	require.Equal(suite.T(), http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	mine := suite.listTitles("q=" + marker + "&scope=mine")
	assert.Contains(suite.T(), mine, marker+" Reviewed")
	assert.NotContains(suite.T(), mine, marker+" Untouched")

	notMine := suite.listTitles("q=" + marker + "&scope=not_mine")
	assert.Contains(suite.T(), notMine, marker+" Untouched")
	assert.NotContains(suite.T(), notMine, marker+" Reviewed")
}

func (suite *MovieTestSuite) TestListMovies_InvalidSortRejected() {
	resp := doJSON(suite.T(), suite.client, "GET", APIBaseURL+"/movies?sort=bogus", suite.ownerToken, nil)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)
}

func (suite *MovieTestSuite) TestSuggestTitles() {
	title := uniqueTitle("Suggestable")
	suite.createMovie(suite.ownerToken, title)

	resp := doJSON(suite.T(), suite.client, "GET", APIBaseURL+"/movies/suggest?q=suggestable", suite.ownerToken, nil)
	defer resp.Body.Close()

	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	env, err := decodeEnvelope(resp)
	require.NoError(suite.T(), err)

	var suggestions []map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(env.Data, &suggestions))
	assert.LessOrEqual(suite.T(), len(suggestions), 5)
	assert.NotEmpty(suite.T(), suggestions)
}

func (suite *MovieTestSuite) TestUpdateMovie_OwnerOnly() {
	movie := suite.createMovie(suite.ownerToken, uniqueTitle("Owned"))
	movieID := movie["id"].(string)

	// Non-owner is forbidden
	resp := doJSON(suite.T(), suite.client, "PUT", APIBaseURL+"/movies/"+movieID, suite.otherToken, map[string]string{
		"synopsis": "hijacked",
	})
	resp.Body.Close()
	assert.Equal(suite.T(), http.StatusForbidden, resp.StatusCode)

	// Owner succeeds
	resp = doJSON(suite.T(), suite.client, "PUT", APIBaseURL+"/movies/"+movieID, suite.ownerToken, map[string]string{
		"synopsis": "updated synopsis",
	})
	defer resp.Body.Close()
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	env, err := decodeEnvelope(resp)
	require.NoError(suite.T(), err)

	var updated map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(env.Data, &updated))
	assert.Equal(suite.T(), "updated synopsis", updated["synopsis"])
}

func (suite *MovieTestSuite) TestDeleteMovie_OwnerOnly() {
	movie := suite.createMovie(suite.ownerToken, uniqueTitle("Deletable"))
	movieID := movie["id"].(string)

	resp := doJSON(suite.T(), suite.client, "DELETE", APIBaseURL+"/movies/"+movieID, suite.otherToken, nil)
	resp.Body.Close()
	assert.Equal(suite.T(), http.StatusForbidden, resp.StatusCode)

	resp = doJSON(suite.T(), suite.client, "DELETE", APIBaseURL+"/movies/"+movieID, suite.ownerToken, nil)
	resp.Body.Close()
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	// Gone afterwards
	resp = doJSON(suite.T(), suite.client, "GET", APIBaseURL+"/movies/"+movieID, suite.ownerToken, nil)
	resp.Body.Close()
	assert.Equal(suite.T(), http.StatusNotFound, resp.StatusCode)
}
