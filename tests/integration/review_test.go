//go:build integration
// +build integration

package integration

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ReviewTestSuite struct {
	suite.Suite
	client      *http.Client
	authorToken string
	otherToken  string
	movieID     string
}

func (suite *ReviewTestSuite) SetupSuite() {
	suite.client = &http.Client{Timeout: 30 * time.Second}
	suite.authorToken = signUpAndLogin(suite.T(), suite.client, "review-author")
	suite.otherToken = signUpAndLogin(suite.T(), suite.client, "review-other")
	suite.movieID = suite.createFixtureMovie()
}

func (suite *ReviewTestSuite) createFixtureMovie() string {
	resp := doJSON(suite.T(), suite.client, "POST", APIBaseURL+"/movies", suite.authorToken, map[string]string{
		"title":        uniqueTitle("Reviewable"),
		"release_date": "2010-07-16",
	})
	defer resp.Body.Close()
	require.Equal(suite.T(), http.StatusCreated, resp.StatusCode)

	env, err := decodeEnvelope(resp)
	require.NoError(suite.T(), err)

	var movie map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(env.Data, &movie))
	return movie["id"].(string)
}

func (suite *ReviewTestSuite) movieReviewCount() float64 {
	resp := doJSON(suite.T(), suite.client, "GET", APIBaseURL+"/movies/"+suite.movieID, suite.authorToken, nil)
	defer resp.Body.Close()
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	env, err := decodeEnvelope(resp)
	require.NoError(suite.T(), err)

	var movie map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(env.Data, &movie))
	return movie["review_count"].(float64)
}

func (suite *ReviewTestSuite) TestReviewLifecycle() {
	before := suite.movieReviewCount()

	// Create
	resp := doJSON(suite.T(), suite.client, "POST", APIBaseURL+"/movies/"+suite.movieID+"/reviews", suite.authorToken, map[string]string{
		"content": "A thoughtful take on dreams within dreams.",
	})
	require.Equal(suite.T(), http.StatusCreated, resp.StatusCode)

	env, err := decodeEnvelope(resp)
	resp.Body.Close()
	require.NoError(suite.T(), err)

	var review map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(env.Data, &review))
	reviewID := review["id"].(string)
	require.NotEmpty(suite.T(), reviewID)

	// The denormalized count moved with the insert
	assert.Equal(suite.T(), before+1, suite.movieReviewCount())

	// Update content
	resp = doJSON(suite.T(), suite.client, "PUT", APIBaseURL+"/reviews/"+reviewID, suite.authorToken, map[string]string{
		"content": "Revised after a second viewing.",
	})
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	env, err = decodeEnvelope(resp)
	resp.Body.Close()
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), json.Unmarshal(env.Data, &review))
	assert.Equal(suite.T(), "Revised after a second viewing.", review["content"])

	// Count unaffected by updates
	assert.Equal(suite.T(), before+1, suite.movieReviewCount())

	// Someone else cannot delete it - and learns nothing from the 404
	resp = doJSON(suite.T(), suite.client, "DELETE", APIBaseURL+"/reviews/"+reviewID, suite.otherToken, nil)
	assert.Equal(suite.T(), http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// The author deletes it and the count steps back down
	resp = doJSON(suite.T(), suite.client, "DELETE", APIBaseURL+"/reviews/"+reviewID, suite.authorToken, nil)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	assert.Equal(suite.T(), before, suite.movieReviewCount())

	// A second delete of the same review is a plain not found
	resp = doJSON(suite.T(), suite.client, "DELETE", APIBaseURL+"/reviews/"+reviewID, suite.authorToken, nil)
	assert.Equal(suite.T(), http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func (suite *ReviewTestSuite) TestCreateReview_EmptyContent() {
	resp := doJSON(suite.T(), suite.client, "POST", APIBaseURL+"/movies/"+suite.movieID+"/reviews", suite.authorToken, map[string]string{
		"content": "",
	})
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)
}

func (suite *ReviewTestSuite) TestCreateReview_UnknownMovie() {
	resp := doJSON(suite.T(), suite.client, "POST", APIBaseURL+"/movies/00000000-0000-0000-0000-000000000000/reviews", suite.authorToken, map[string]string{
		"content": "ghost review",
	})
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusNotFound, resp.StatusCode)
}

func (suite *ReviewTestSuite) TestListMovieReviews() {
	resp := doJSON(suite.T(), suite.client, "POST", APIBaseURL+"/movies/"+suite.movieID+"/reviews", suite.otherToken, map[string]string{
		"content": "listed review",
	})
	require.Equal(suite.T(), http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(suite.T(), suite.client, "GET", APIBaseURL+"/movies/"+suite.movieID+"/reviews?page=1&page_size=10", suite.authorToken, nil)
	defer resp.Body.Close()
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	env, err := decodeEnvelope(resp)
	require.NoError(suite.T(), err)
	require.True(suite.T(), env.Success)

	var list struct {
		Reviews []map[string]interface{} `json:"reviews"`
		Total   int64                    `json:"total"`
	}
	require.NoError(suite.T(), json.Unmarshal(env.Data, &list))
	assert.GreaterOrEqual(suite.T(), list.Total, int64(1))
	assert.NotEmpty(suite.T(), list.Reviews)
}
