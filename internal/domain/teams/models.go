package teams

// Team is the backend team shape for one season.
type Team struct {
	ID             int64  `json:"id"`
	SportID        int64  `json:"sport_id"`
	SeasonID       int64  `json:"season_id"`
	ESPNID         string `json:"espn_id"`
	Abbreviation   string `json:"abbreviation"`
	City           string `json:"city"`
	Name           string `json:"name"`
	Conference     string `json:"conference"`
	Division       string `json:"division"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color,omitempty"`
	LogoURL        string `json:"logo_url,omitempty"`
}

// DisplayName joins city and nickname.
func (t Team) DisplayName() string {
	if t.City == "" {
		return t.Name
	}
	if t.Name == "" {
		return t.City
	}
	return t.City + " " + t.Name
}
