package dto

type StatsOutput struct {
	TotalScore            int `json:"totalScore"`
	CurrentStreak         int `json:"currentStreak"`
	LongestStreak         int `json:"longestStreak"`
	PositiveDayPercentage int `json:"positiveDayPercentage"`
}

type SliceOutput struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

type SummaryOutput struct {
	Today        string        `json:"today"`
	Stats        StatsOutput   `json:"stats"`
	Distribution []SliceOutput `json:"distribution"`
}
