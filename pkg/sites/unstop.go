package sites

import "hackathon-radar/pkg/domain"

type unstopResponse struct {
	Data *struct {
		Data []struct {
			ID        flexString `json:"id"`
			Title     string     `json:"title"`
			Slug      string     `json:"slug"`
			Region    string     `json:"region"`
			Mode      string     `json:"mode"`
			StartDate string     `json:"start_date"`
			EndDate   string     `json:"end_date"`
			Org       *struct {
				Name string `json:"name"`
			} `json:"organisation"`
		} `json:"data"`
	} `json:"data"`
}

// DecodeUnstop decodes https://unstop.com/api/public/opportunity/search-result.
// Listings live under data.data.
func DecodeUnstop(body []byte, _ map[string]string) ([]domain.Candidate, error) {
	var resp unstopResponse
	if err := decode(body, &resp, "unstop"); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return []domain.Candidate{}, nil
	}
	out := make([]domain.Candidate, 0, len(resp.Data.Data))
	for _, h := range resp.Data.Data {
		c := domain.Candidate{
			ID:        prefixed("unstop", h.ID),
			Name:      h.Title,
			Location:  h.Region,
			Mode:      h.Mode,
			StartDate: h.StartDate,
			EndDate:   h.EndDate,
		}
		if h.Slug != "" {
			c.SourceURL = "https://unstop.com/" + h.Slug
		}
		if h.Org != nil {
			c.College = h.Org.Name
		}
		out = append(out, c)
	}
	return out, nil
}
