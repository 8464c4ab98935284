package entity

type RecommendationRequest struct {
	Description string `json:"description"`
	Headline    string `json:"headline,omitempty"`
	Location    string `json:"location,omitempty"`
}

type RecommendedItem struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Quantity int    `json:"quantity,omitempty"`
	Priority string `json:"priority,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// ReliefAnalysis is the structured answer the model is asked to produce.
type ReliefAnalysis struct {
	Summary                string            `json:"summary"`
	DisasterType           string            `json:"disasterType,omitempty"`
	UrgencyLevel           string            `json:"urgencyLevel,omitempty"`
	EstimatedBeneficiaries int               `json:"estimatedBeneficiaries,omitempty"`
	RecommendedItems       []RecommendedItem `json:"recommendedItems"`
	Note                   string            `json:"note,omitempty"`
}
