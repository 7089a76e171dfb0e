package models

// UserResponse is the public view of an account.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AnalyticsResponse mirrors the dashboard's three charts.
type AnalyticsResponse struct {
	DailyCounts []DayBucket    `json:"dailyCounts"`
	TopTriggers []TriggerCount `json:"topTriggers"`
	Emotions    []EmotionCount `json:"emotions"`
}

// DayBucket is one calendar day (UTC) that had at least one event.
type DayBucket struct {
	Date        string  `json:"date"` // 2006-01-02
	Count       int     `json:"count"`
	AvgSeverity float64 `json:"avgSeverity"`
}

// TriggerCount is how often one raw trigger text occurred.
type TriggerCount struct {
	Trigger string `json:"trigger"`
	Count   int    `json:"count"`
}

// EmotionCount is how often one classifier label occurred. Events the
// classifier never labeled are not counted.
type EmotionCount struct {
	Emotion string `json:"emotion"`
	Count   int    `json:"count"`
}
