package statsapi

type scheduleResponse struct {
	Dates []scheduleDate `json:"dates"`
}

type scheduleDate struct {
	Date  string         `json:"date"`
	Games []scheduleGame `json:"games"`
}

type scheduleGame struct {
	GamePk    int           `json:"gamePk"`
	Status    statusPayload `json:"status"`
	Teams     scheduleTeams `json:"teams"`
	Linescore *linescore    `json:"linescore"`
}

type statusPayload struct {
	AbstractGameState string `json:"abstractGameState"`
	DetailedState     string `json:"detailedState"`
}

type scheduleTeams struct {
	Away scheduleSide `json:"away"`
	Home scheduleSide `json:"home"`
}

type scheduleSide struct {
	Team  teamPayload `json:"team"`
	Score *int        `json:"score"`
}

type teamPayload struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

type linescore struct {
	CurrentInning        int            `json:"currentInning"`
	CurrentInningOrdinal string         `json:"currentInningOrdinal"`
	InningState          string         `json:"inningState"`
	Teams                linescoreTeams `json:"teams"`
}

type linescoreTeams struct {
	Home linescoreSide `json:"home"`
	Away linescoreSide `json:"away"`
}

type linescoreSide struct {
	Runs *int `json:"runs"`
}

type liveFeedResponse struct {
	GamePk   int          `json:"gamePk"`
	GameData liveGameData `json:"gameData"`
	LiveData liveData     `json:"liveData"`
}

type liveGameData struct {
	Status statusPayload `json:"status"`
	Teams  struct {
		Away teamPayload `json:"away"`
		Home teamPayload `json:"home"`
	} `json:"teams"`
}

type liveData struct {
	Linescore linescore `json:"linescore"`
}
