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

type RatingTestSuite struct {
	suite.Suite
	client  *http.Client
	tokenA  string
	tokenB  string
	movieID string
}

func (suite *RatingTestSuite) SetupSuite() {
	suite.client = &http.Client{Timeout: 30 * time.Second}
	suite.tokenA = signUpAndLogin(suite.T(), suite.client, "rater-a")
	suite.tokenB = signUpAndLogin(suite.T(), suite.client, "rater-b")
	suite.movieID = suite.createFixtureMovie()
}

func (suite *RatingTestSuite) createFixtureMovie() string {
	resp := doJSON(suite.T(), suite.client, "POST", APIBaseURL+"/movies", suite.tokenA, map[string]string{
		"title":        uniqueTitle("Rateable"),
		"release_date": "1994-09-23",
	})
	defer resp.Body.Close()
	require.Equal(suite.T(), http.StatusCreated, resp.StatusCode)

	env, err := decodeEnvelope(resp)
	require.NoError(suite.T(), err)

	var movie map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(env.Data, &movie))
	return movie["id"].(string)
}

func (suite *RatingTestSuite) rate(token string, value int) float64 {
	resp := doJSON(suite.T(), suite.client, "PUT", APIBaseURL+"/movies/"+suite.movieID+"/rating", token, map[string]int{
		"value": value,
	})
	defer resp.Body.Close()
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	env, err := decodeEnvelope(resp)
	require.NoError(suite.T(), err)
	require.True(suite.T(), env.Success)

	var result struct {
		AverageRating float64 `json:"average_rating"`
	}
	require.NoError(suite.T(), json.Unmarshal(env.Data, &result))
	return result.AverageRating
}

func (suite *RatingTestSuite) TestRatingAggregation() {
	// Two raters: the mean reflects both
	average := suite.rate(suite.tokenA, 4)
	assert.InDelta(suite.T(), 4.0, average, 0.0001)

	average = suite.rate(suite.tokenB, 2)
	assert.InDelta(suite.T(), 3.0, average, 0.0001) // (4+2)/2

	// Re-rating overwrites instead of stacking a second vote
	average = suite.rate(suite.tokenA, 5)
	assert.InDelta(suite.T(), 3.5, average, 0.0001) // (5+2)/2

	// The caller can read their own rating back
	resp := doJSON(suite.T(), suite.client, "GET", APIBaseURL+"/movies/"+suite.movieID+"/rating", suite.tokenA, nil)
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	env, err := decodeEnvelope(resp)
	resp.Body.Close()
	require.NoError(suite.T(), err)

	var rating struct {
		Value int `json:"value"`
	}
	require.NoError(suite.T(), json.Unmarshal(env.Data, &rating))
	assert.Equal(suite.T(), 5, rating.Value)

	// Removing a rating re-aggregates without it
	resp = doJSON(suite.T(), suite.client, "DELETE", APIBaseURL+"/movies/"+suite.movieID+"/rating", suite.tokenA, nil)
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	env, err = decodeEnvelope(resp)
	resp.Body.Close()
	require.NoError(suite.T(), err)

	var deleted struct {
		AverageRating float64 `json:"average_rating"`
	}
	require.NoError(suite.T(), json.Unmarshal(env.Data, &deleted))
	assert.InDelta(suite.T(), 2.0, deleted.AverageRating, 0.0001)
}

func (suite *RatingTestSuite) TestRateMovie_InvalidValue() {
	for _, value := range []int{0, 6} {
		resp := doJSON(suite.T(), suite.client, "PUT", APIBaseURL+"/movies/"+suite.movieID+"/rating", suite.tokenA, map[string]int{
			"value": value,
		})
		assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	}
}

func (suite *RatingTestSuite) TestRateMovie_UnknownMovie() {
	resp := doJSON(suite.T(), suite.client, "PUT", APIBaseURL+"/movies/00000000-0000-0000-0000-000000000000/rating", suite.tokenA, map[string]int{
		"value": 3,
	})
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusNotFound, resp.StatusCode)
}

func (suite *RatingTestSuite) TestGetRating_NoneYet() {
	resp := doJSON(suite.T(), suite.client, "GET", APIBaseURL+"/movies/"+suite.movieID+"/rating", suite.tokenB, nil)
	defer resp.Body.Close()

	// tokenB's rating may exist from the aggregation test; accept either
	assert.Contains(suite.T(), []int{http.StatusOK, http.StatusNotFound}, resp.StatusCode)
}

func (suite *RatingTestSuite) TestRateMovie_RequiresAuth() {
	resp := doJSON(suite.T(), suite.client, "PUT", APIBaseURL+"/movies/"+suite.movieID+"/rating", "", map[string]int{
		"value": 3,
	})
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusUnauthorized, resp.StatusCode)
}
