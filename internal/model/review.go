package model

type Review struct {
	VolcanoID int64
	UserID    int64
	Rating    int
	Comment   *string
}

type ReviewView struct {
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

type RatingSummary struct {
	AverageRating string `json:"averageRating"`
}
