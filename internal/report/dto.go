package report

import (
	"github.com/google/uuid"
	"github.com/saulo-duarte/pms-lambda/internal/goal"
)

type CycleSummaryResponse struct {
	CycleID       uuid.UUID           `json:"cycle_id"`
	TotalGoals    int                 `json:"total_goals"`
	GoalsByStatus map[goal.Status]int `json:"goals_by_status"`
	ReviewCount   int                 `json:"review_count"`
	AverageRating float64             `json:"average_rating"`
	RatingCounts  map[int]int         `json:"rating_counts"`
}

func toResponse(s *CycleSummary) *CycleSummaryResponse {
	return &CycleSummaryResponse{
		CycleID:       s.CycleID,
		TotalGoals:    s.TotalGoals,
		GoalsByStatus: s.GoalsByStatus,
		ReviewCount:   s.ReviewCount,
		AverageRating: s.AverageRating,
		RatingCounts:  s.RatingCounts,
	}
}
