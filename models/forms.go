package models

// WorkerForm is the multipart body of POST /api/worker-form.
// WorkerTypes arrives as a JSON object of type → selected.
type WorkerForm struct {
	FullName    string  `form:"fullName" binding:"required"`
	PhoneNumber string  `form:"phoneNumber" binding:"required"`
	WorkerTypes string  `form:"workerTypes" binding:"required"`
	Address     string  `form:"address"`
	City        string  `form:"city" binding:"required"`
	State       string  `form:"state"`
	Country     string  `form:"country"`
	Email       string  `form:"email" binding:"required"`
	Age         int     `form:"age"`
	Gender      string  `form:"gender"`
	CostPerHour float64 `form:"costPerHour" binding:"required"`
}

// TicketForm is the multipart body of the concert and festival ticket forms.
type TicketForm struct {
	PerformerName      string  `form:"performerName"`
	FestivalName       string  `form:"festivalName"`
	EventName          string  `form:"eventName"`
	EventDate          string  `form:"eventDate"`
	StartDate          string  `form:"startDate"`
	EndDate            string  `form:"endDate"`
	EventTime          string  `form:"eventTime"`
	StartTime          string  `form:"startTime"`
	EndTime            string  `form:"endTime"`
	Venue              string  `form:"venue" binding:"required"`
	SeatNumber         string  `form:"seatNumber"`
	TicketType         string  `form:"ticketType"`
	TicketHolderName   string  `form:"ticketHolderName"`
	TicketPrice        float64 `form:"ticketPrice" binding:"required"`
	AdditionalFees     float64 `form:"additionalFees"`
	AvailableTickets   int     `form:"availableTickets" binding:"required"`
	AdmissionPolicies  string  `form:"admissionPolicies"`
	ResaleRestrictions string  `form:"resaleRestrictions"`
	RefundPolicies     string  `form:"refundPolicies"`
}

// ReviewForm is the multipart body of POST /api/reviews.
type ReviewForm struct {
	WorkerName          string `form:"worker_name" binding:"required"`
	Name                string `form:"name" binding:"required"`
	Email               string `form:"email" binding:"required"`
	WrittenReview       string `form:"written_review" binding:"required"`
	OverallSatisfaction int    `form:"overall_satisfaction"`
	QualityOfWork       int    `form:"quality_of_work"`
	Timeliness          int    `form:"timeliness"`
	Accuracy            int    `form:"accuracy"`
	CommunicationSkills int    `form:"communication_skills"`
	ProductName         string `form:"product_name"`
	ConsentToPublish    bool   `form:"consent_to_publish"`
	IsAnonymous         bool   `form:"is_anonymous"`
}
