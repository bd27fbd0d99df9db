package domain

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// SeriesView отдаёт серию вместе с разобранными кодами и справочниками.
type SeriesView struct {
	*Series
	SurveyCode      string       `json:"survey_code"`
	SeasonalCode    string       `json:"seasonal_code"`
	PeriodicityCode string       `json:"periodicity_code"`
	AreaCode        string       `json:"area_code"`
	ItemCode        string       `json:"item_code"`
	Area            *Area        `json:"area,omitempty"`
	Item            *Item        `json:"item,omitempty"`
	Periodicity     *Periodicity `json:"periodicity,omitempty"`
}

func NewSeriesView(s *Series) *SeriesView {
	return &SeriesView{
		Series:          s,
		SurveyCode:      s.SurveyCode(),
		SeasonalCode:    s.SeasonalCode(),
		PeriodicityCode: s.PeriodicityCode(),
		AreaCode:        s.AreaCode(),
		ItemCode:        s.ItemCode(),
	}
}
