package sites

import "hackathon-radar/pkg/domain"

type taikaiResponse struct {
	Data []struct {
		ID        flexString `json:"id"`
		Name      string     `json:"name"`
		Slug      string     `json:"slug"`
		Location  string     `json:"location"`
		Remote    flexBool   `json:"remote"`
		StartDate string     `json:"start_date"`
		EndDate   string     `json:"end_date"`
	} `json:"data"`
}

func DecodeTaikai(body []byte, _ map[string]string) ([]domain.Candidate, error) {
	var resp taikaiResponse
	if err := decode(body, &resp, "taikai"); err != nil {
		return nil, err
	}
	out := make([]domain.Candidate, 0, len(resp.Data))
	for _, h := range resp.Data {
		c := domain.Candidate{
			ID:        prefixed("taikai", h.ID),
			Name:      h.Name,
			Location:  h.Location,
			Mode:      modeFromFlag(h.Remote),
			StartDate: h.StartDate,
			EndDate:   h.EndDate,
		}
		if h.Slug != "" {
			c.SourceURL = "https://taikai.network/" + h.Slug
		}
		out = append(out, c)
	}
	return out, nil
}
