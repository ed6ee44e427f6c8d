package sites

import "hackathon-radar/pkg/domain"

type devpostResponse struct {
	Hackathons []struct {
		ID        flexString `json:"id"`
		Title     string     `json:"title"`
		URL       string     `json:"url"`
		Location  string     `json:"location"`
		Online    flexBool   `json:"online"`
		StartDate string     `json:"start_date"`
		EndDate   string     `json:"end_date"`
		Org       string     `json:"organization_name"`
	} `json:"hackathons"`
}

// DecodeDevpost decodes https://devpost.com/api/hackathons.
func DecodeDevpost(body []byte, _ map[string]string) ([]domain.Candidate, error) {
	var resp devpostResponse
	if err := decode(body, &resp, "devpost"); err != nil {
		return nil, err
	}
	out := make([]domain.Candidate, 0, len(resp.Hackathons))
	for _, h := range resp.Hackathons {
		out = append(out, domain.Candidate{
			ID:        prefixed("devpost", h.ID),
			Name:      h.Title,
			College:   h.Org,
			Location:  h.Location,
			Mode:      modeFromFlag(h.Online),
			StartDate: h.StartDate,
			EndDate:   h.EndDate,
			SourceURL: h.URL,
		})
	}
	return out, nil
}
