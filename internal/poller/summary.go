package poller

// Outcome is what happened to one game during a pass.
type Outcome string

const (
	OutcomeSkipped   Outcome = "skipped"
	OutcomeDelivered Outcome = "delivered"
	OutcomeQueued    Outcome = "queued"
	OutcomeNoPost    Outcome = "no_post"
	OutcomeLowValue  Outcome = "low_value"
	OutcomeRetry     Outcome = "retry"
	OutcomeFailed    Outcome = "failed"
)

// Summary tallies one pass.
type Summary struct {
	RunID     string `json:"runId"`
	Date      string `json:"date"`
	GamesSeen int    `json:"gamesSeen"`
	Processed int    `json:"processed"`
	Delivered int    `json:"delivered"`
	Queued    int    `json:"queued"`
	NoPost    int    `json:"noPost"`
	LowValue  int    `json:"lowValue"`
	Retry     int    `json:"retry"`
	Failed    int    `json:"failed"`
}

func (s *Summary) add(o Outcome) {
	switch o {
	case OutcomeSkipped:
		return
	case OutcomeDelivered:
		s.Delivered++
	case OutcomeQueued:
		s.Queued++
	case OutcomeNoPost:
		s.NoPost++
	case OutcomeLowValue:
		s.LowValue++
	case OutcomeRetry:
		s.Retry++
	case OutcomeFailed:
		s.Failed++
	}
	s.Processed++
}
