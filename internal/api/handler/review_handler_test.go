package handler

import (
	"Matchpoint/internal/api/dto"
	"Matchpoint/internal/service"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReviewService struct{}

func (s *stubReviewService) SubmitReview(_ context.Context, _ uint64, req *dto.ReviewSubmitDTO) (*dto.ReviewDTO, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, service.ErrRatingInvalid
	}
	return &dto.ReviewDTO{ID: 1, Rating: req.Rating}, nil
}

func (s *stubReviewService) ListReviews(_ context.Context, _ int8, _ uint64, _ string, _ int, _ bool) (*dto.ReviewListDTO, error) {
	return &dto.ReviewListDTO{}, nil
}

func postReview(t *testing.T, body string) *dto.Response {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	h := NewReviewHandler(&stubReviewService{})
	r.POST("/api/reviews", h.SubmitReview)

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var res dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return &res
}

// 超出范围的评分要返回专门的评分错误，而不是笼统的参数错误
func TestSubmitReview_OutOfRangeRatingErrorCode(t *testing.T) {
	res := postReview(t, `{"kind":1,"target_id":100,"rating":6}`)
	assert.Equal(t, service.ErrorMap[service.ErrRatingInvalid], res.Code)
	assert.Equal(t, service.ErrRatingInvalid.Error(), res.Message)
}

func TestSubmitReview_ValidRatingAccepted(t *testing.T) {
	res := postReview(t, `{"kind":1,"target_id":100,"rating":5}`)
	assert.Equal(t, 200, res.Code)
}
