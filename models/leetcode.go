package models

import "portfolio/api/activity"

type DifficultyTotals struct {
	Solved int `json:"solved"`
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

type DifficultyDenoms struct {
	All    int `json:"all"`
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

// LeetCodeStats is the /api/leetcode response body.
type LeetCodeStats struct {
	Username        string           `json:"username"`
	Totals          DifficultyTotals `json:"totals"`
	Denoms          DifficultyDenoms `json:"denoms"`
	YearSubmissions int              `json:"yearSubmissions"`
	ActiveDays      int              `json:"activeDays"`
	MaxStreak       int              `json:"maxStreak"`
	Series          []activity.Point `json:"series"`
	Bars            []int            `json:"bars"`
	MaxDaily        int              `json:"maxDaily"`
	MaxDailyDate    *string          `json:"maxDailyDate"`
	CalendarYear    []activity.Point `json:"calendarYear,omitempty"`
}

// ViewStats is the /api/stats/blog-views response body.
type ViewStats struct {
	BlogID  string           `json:"blogId,omitempty"`
	Days    int              `json:"days"`
	Summary activity.Summary `json:"summary"`
	Series  []activity.Point `json:"series"`
}
