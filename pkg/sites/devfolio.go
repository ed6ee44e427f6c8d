package sites

import "hackathon-radar/pkg/domain"

type devfolioResponse struct {
	Hackathons []struct {
		Slug     string   `json:"slug"`
		Name     string   `json:"name"`
		Location string   `json:"location"`
		IsOnline flexBool `json:"is_online"`
		StartsAt string   `json:"starts_at"`
		EndsAt   string   `json:"ends_at"`
	} `json:"hackathons"`
}

// DecodeDevfolio decodes https://api.devfolio.co/api/hackathons. The slug is
// the native id.
func DecodeDevfolio(body []byte, _ map[string]string) ([]domain.Candidate, error) {
	var resp devfolioResponse
	if err := decode(body, &resp, "devfolio"); err != nil {
		return nil, err
	}
	out := make([]domain.Candidate, 0, len(resp.Hackathons))
	for _, h := range resp.Hackathons {
		c := domain.Candidate{
			ID:        prefixed("devfolio", flexString(h.Slug)),
			Name:      h.Name,
			Location:  h.Location,
			Mode:      modeFromFlag(h.IsOnline),
			StartDate: h.StartsAt,
			EndDate:   h.EndsAt,
		}
		if h.Slug != "" {
			c.SourceURL = "https://devfolio.co/hackathons/" + h.Slug
		}
		out = append(out, c)
	}
	return out, nil
}
