package sites

import "hackathon-radar/pkg/domain"

type hackathonComResponse struct {
	Data []struct {
		ID        flexString `json:"id"`
		Name      string     `json:"name"`
		URL       string     `json:"url"`
		City      string     `json:"city"`
		Online    flexBool   `json:"online"`
		StartDate string     `json:"start_date"`
		EndDate   string     `json:"end_date"`
	} `json:"data"`
}

// DecodeHackathonCom decodes https://www.hackathon.com/api/hackathons.
func DecodeHackathonCom(body []byte, _ map[string]string) ([]domain.Candidate, error) {
	var resp hackathonComResponse
	if err := decode(body, &resp, "hackathon.com"); err != nil {
		return nil, err
	}
	out := make([]domain.Candidate, 0, len(resp.Data))
	for _, h := range resp.Data {
		out = append(out, domain.Candidate{
			ID:        prefixed("hackathoncom", h.ID),
			Name:      h.Name,
			Location:  h.City,
			Mode:      modeFromFlag(h.Online),
			StartDate: h.StartDate,
			EndDate:   h.EndDate,
			SourceURL: h.URL,
		})
	}
	return out, nil
}
